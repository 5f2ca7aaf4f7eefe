package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"recipebox/internal/cache"
	"recipebox/internal/database"
	"recipebox/internal/model"
	"recipebox/internal/service"
	"recipebox/internal/store"
	"recipebox/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newTokenCtx(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restore() {
	normalizeEmail = service.NormalizeEmail
	authenticateUser = service.AuthenticateUser
	issueToken = service.IssueToken
	getUserByEmail = store.GetUserByEmail
	updateUserLastLogin = store.UpdateUserLastLogin
}

// noopPool runs tasks inline.
type noopPool struct{}

func (noopPool) Submit(t worker.Task) {
	if t != nil {
		t()
	}
}
func (noopPool) Stop() {}

func TestTokenHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newTokenCtx(e, "{")
		require.NoError(t, TokenHandler(nil, nil, noopPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("failures share one shape", func(t *testing.T) {
		t.Cleanup(restore)
		hash, err := service.HashPassword("right")
		require.NoError(t, err)
		active := &model.User{ID: 1, Email: "a@test.com", PasswordHash: hash, IsActive: true}

		bodies := map[string]func(){
			// missing password fails validation
			`{"email":"a@test.com"}`: func() {
				e.Validator = &stubValidator{err: errors.New("required")}
			},
			// unknown account
			`{"email":"ghost@test.com","password":"right"}`: func() {
				e.Validator = &stubValidator{}
				getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
					return nil, errors.New("no rows")
				}
			},
			// wrong password
			`{"email":"a@test.com","password":"wrong"}`: func() {
				e.Validator = &stubValidator{}
				getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
					return active, nil
				}
			},
			// empty password
			`{"email":"a@test.com","password":""}`: func() {
				e.Validator = &stubValidator{}
				getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
					return active, nil
				}
			},
			// malformed email
			`{"email":"nonsense","password":"right"}`: func() {
				e.Validator = &stubValidator{}
			},
		}

		var responses []string
		for body, arrange := range bodies {
			restore()
			arrange()
			ctx, rec := newTokenCtx(e, body)
			require.NoError(t, TokenHandler(nil, nil, noopPool{})(ctx))
			require.Equal(t, http.StatusBadRequest, rec.Code, body)
			require.NotContains(t, rec.Body.String(), "token\":", body)
			responses = append(responses, strings.TrimSpace(rec.Body.String()))
		}
		for _, r := range responses {
			require.Equal(t, responses[0], r)
		}
	})

	t.Run("inactive account rejected", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		hash, err := service.HashPassword("right")
		require.NoError(t, err)
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 2, PasswordHash: hash, IsActive: false}, nil
		}
		ctx, rec := newTokenCtx(e, `{"email":"a@test.com","password":"right"}`)
		require.NoError(t, TokenHandler(nil, nil, noopPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), credentialsRejected)
	})

	t.Run("issue error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 1, IsActive: true}, nil
		}
		authenticateUser = func(context.Context, model.User, string) error { return nil }
		issueToken = func(context.Context, cache.Cache, model.User) (string, error) {
			return "", errors.New("cache down")
		}
		ctx, rec := newTokenCtx(e, `{"email":"a@test.com","password":"right"}`)
		require.NoError(t, TokenHandler(nil, nil, noopPool{})(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success issues token and records last login", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
			require.Equal(t, "a@test.com", email)
			return &model.User{ID: 9, IsActive: true}, nil
		}
		authenticateUser = func(context.Context, model.User, string) error { return nil }
		issueToken = func(_ context.Context, _ cache.Cache, u model.User) (string, error) {
			require.Equal(t, 9, u.ID)
			return "opaque-token-value", nil
		}

		var mu sync.Mutex
		var loggedID int
		updateUserLastLogin = func(_ context.Context, _ database.DB, id int) error {
			mu.Lock()
			loggedID = id
			mu.Unlock()
			return nil
		}

		wp := worker.NewPool(1)
		ctx, rec := newTokenCtx(e, `{"email":"a@TEST.com","password":"right"}`)
		require.NoError(t, TokenHandler(nil, nil, wp)(ctx))
		wp.Stop()

		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "opaque-token-value")
		mu.Lock()
		require.Equal(t, 9, loggedID)
		mu.Unlock()
	})

	t.Run("last login failure does not affect response", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		getUserByEmail = func(context.Context, database.DB, string) (*model.User, error) {
			return &model.User{ID: 9, IsActive: true}, nil
		}
		authenticateUser = func(context.Context, model.User, string) error { return nil }
		issueToken = func(context.Context, cache.Cache, model.User) (string, error) { return "tok", nil }
		updateUserLastLogin = func(context.Context, database.DB, int) error { return errors.New("down") }

		ctx, rec := newTokenCtx(e, `{"email":"a@test.com","password":"right"}`)
		require.NoError(t, TokenHandler(nil, nil, noopPool{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})

}
