package service

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"recipebox/internal/model"
)

var ErrEmailRequired = errors.New("email is required")

// NormalizeEmail lowercases the domain portion only; the local part is
// stored exactly as given.
func NormalizeEmail(email string) (string, error) {
	if email == "" {
		return "", ErrEmailRequired
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", fmt.Errorf("invalid email %q: %w", email, err)
	}
	at := strings.LastIndex(email, "@")
	return email[:at+1] + strings.ToLower(email[at+1:]), nil
}

// NewUser builds an active user with a normalized email and a hashed
// password. The plaintext never leaves this function.
func NewUser(email, password, name string) (*model.User, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &model.User{
		Name:         name,
		Email:        normalized,
		PasswordHash: hash,
		IsActive:     true,
	}, nil
}

// NewSuperuser is NewUser with the staff and superuser flags set.
func NewSuperuser(email, password string) (*model.User, error) {
	u, err := NewUser(email, password, "")
	if err != nil {
		return nil, err
	}
	u.IsStaff = true
	u.IsSuperuser = true
	return u, nil
}
