package store

import (
	"context"
	"fmt"

	"recipebox/internal/database"
	"recipebox/internal/model"
)

// ListTagsByOwner returns the owner's tags ordered by name descending.
// The owner ID is a mandatory argument: there is no way to query tags
// without scoping them to a user.
func ListTagsByOwner(ctx context.Context, db database.DB, ownerID int) ([]model.Tag, error) {
	rows, err := db.Query(ctx,
		`SELECT id, name, user_id, created_at
		 FROM tags WHERE user_id = $1
		 ORDER BY name DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListTagsByOwner: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.UserID, &tag.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListTagsByOwner: %w", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListTagsByOwner: %w", err)
	}
	return tags, nil
}

func CreateTag(ctx context.Context, db database.DB, tag *model.Tag) (*model.Tag, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO tags (name, user_id)
		 VALUES ($1, $2)
		 RETURNING id, created_at`,
		tag.Name,
		tag.UserID,
	)
	if err := row.Scan(&tag.ID, &tag.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateTag: %w", err)
	}
	return tag, nil
}
