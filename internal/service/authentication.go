package service

import (
	"context"
	"errors"

	"recipebox/internal/model"
)

// ErrInvalidCredentials is returned for every authentication failure:
// wrong password, unknown account, or an inactive one. Callers must not
// be able to tell which check failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthenticateUser verifies a plaintext password against a stored user.
func AuthenticateUser(ctx context.Context, user model.User, password string) error {
	if !user.IsActive {
		return ErrInvalidCredentials
	}
	if err := ComparePassword(user.PasswordHash, password); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
