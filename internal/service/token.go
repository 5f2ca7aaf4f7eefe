package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"recipebox/internal/cache"
	"recipebox/internal/model"
)

// ErrInvalidToken covers absent, malformed, and unknown tokens alike.
var ErrInvalidToken = errors.New("invalid token")

var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
)

// TokenIdentity is what a resolved token proves about the caller.
type TokenIdentity struct {
	UserID      int  `json:"user_id"`
	IsStaff     bool `json:"is_staff"`
	IsSuperuser bool `json:"is_superuser"`
}

func tokenKey(token string) string { return "authtoken:" + token }

func userTokenKey(userID int) string { return fmt.Sprintf("authtoken:user:%d", userID) }

// IssueToken stores a fresh opaque token for the user and returns it.
// Each user has a single active token: any previously issued token is
// deleted first. Tokens do not expire, they are only replaced.
func IssueToken(ctx context.Context, cch cache.Cache, user model.User) (string, error) {
	buf := make([]byte, 20)
	if _, err := randRead(buf); err != nil {
		return "", fmt.Errorf("IssueToken: %w", err)
	}
	token := hex.EncodeToString(buf)

	if old, err := cch.Get(ctx, userTokenKey(user.ID)).Result(); err == nil && old != "" {
		if err := cch.Del(ctx, tokenKey(old)).Err(); err != nil {
			return "", fmt.Errorf("IssueToken: %w", err)
		}
	}

	payload, err := jsonMarshal(TokenIdentity{
		UserID:      user.ID,
		IsStaff:     user.IsStaff,
		IsSuperuser: user.IsSuperuser,
	})
	if err != nil {
		return "", fmt.Errorf("IssueToken: %w", err)
	}
	if err := cch.Set(ctx, tokenKey(token), payload, 0).Err(); err != nil {
		return "", fmt.Errorf("IssueToken: %w", err)
	}
	if err := cch.Set(ctx, userTokenKey(user.ID), token, 0).Err(); err != nil {
		return "", fmt.Errorf("IssueToken: %w", err)
	}
	return token, nil
}

// ResolveToken maps an opaque token back to the identity it was issued
// for. Every failure is ErrInvalidToken.
func ResolveToken(ctx context.Context, cch cache.Cache, token string) (*TokenIdentity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	raw, err := cch.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		return nil, ErrInvalidToken
	}
	identity := &TokenIdentity{}
	if err := jsonUnmarshal([]byte(raw), identity); err != nil {
		return nil, ErrInvalidToken
	}
	return identity, nil
}
