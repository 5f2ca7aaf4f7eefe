package model

import "time"

// Tag is owned by exactly one user. Names are not globally unique;
// two users may each own a tag with the same name.
type Tag struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	UserID    int       `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
