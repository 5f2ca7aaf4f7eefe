package tags

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"recipebox/internal/database"
	"recipebox/internal/middleware"
	"recipebox/internal/model"
	"recipebox/internal/service"
	"recipebox/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newTagCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/tags", strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withIdentity(c echo.Context, userID int) {
	c.Set(middleware.ContextUserKey, &service.TokenIdentity{UserID: userID})
}

func restore() {
	listTagsByOwner = store.ListTagsByOwner
	createTag = store.CreateTag
}

func TestListTagsHandler(t *testing.T) {
	e := echo.New()

	t.Run("missing identity", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newTagCtx(e, http.MethodGet, "")
		require.NoError(t, ListTagsHandler(nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		listTagsByOwner = func(context.Context, database.DB, int) ([]model.Tag, error) {
			return nil, errors.New("down")
		}
		ctx, rec := newTagCtx(e, http.MethodGet, "")
		withIdentity(ctx, 1)
		require.NoError(t, ListTagsHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("only the caller's tags, name descending", func(t *testing.T) {
		t.Cleanup(restore)
		listTagsByOwner = func(_ context.Context, _ database.DB, ownerID int) ([]model.Tag, error) {
			require.Equal(t, 4, ownerID)
			return []model.Tag{
				{ID: 2, Name: "Vegan", UserID: 4},
				{ID: 1, Name: "Dessert", UserID: 4},
			}, nil
		}
		ctx, rec := newTagCtx(e, http.MethodGet, "")
		withIdentity(ctx, 4)
		require.NoError(t, ListTagsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `[{"id":2,"name":"Vegan"},{"id":1,"name":"Dessert"}]`, rec.Body.String())
	})

	t.Run("empty list is an array", func(t *testing.T) {
		t.Cleanup(restore)
		listTagsByOwner = func(context.Context, database.DB, int) ([]model.Tag, error) {
			return []model.Tag{}, nil
		}
		ctx, rec := newTagCtx(e, http.MethodGet, "")
		withIdentity(ctx, 4)
		require.NoError(t, ListTagsHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
	})
}

func TestCreateTagHandler(t *testing.T) {
	e := echo.New()

	t.Run("missing identity", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newTagCtx(e, http.MethodPost, `{"name":"Vegan"}`)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newTagCtx(e, http.MethodPost, "{")
		withIdentity(ctx, 1)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("name is required")}
		ctx, rec := newTagCtx(e, http.MethodPost, `{"name":""}`)
		withIdentity(ctx, 1)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createTag = func(context.Context, database.DB, *model.Tag) (*model.Tag, error) {
			return nil, errors.New("down")
		}
		ctx, rec := newTagCtx(e, http.MethodPost, `{"name":"Vegan"}`)
		withIdentity(ctx, 1)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("owner is always the caller", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var created *model.Tag
		createTag = func(_ context.Context, _ database.DB, tag *model.Tag) (*model.Tag, error) {
			created = tag
			tag.ID = 11
			return tag, nil
		}
		// a user_id in the payload must be ignored
		ctx, rec := newTagCtx(e, http.MethodPost, `{"name":"Vegan","user_id":999}`)
		withIdentity(ctx, 6)
		require.NoError(t, CreateTagHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, 6, created.UserID)
		require.JSONEq(t, `{"id":11,"name":"Vegan"}`, rec.Body.String())
	})
}
