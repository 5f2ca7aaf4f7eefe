package tags

import (
	"net/http"

	"recipebox/internal/api"
	"recipebox/internal/database"
	"recipebox/internal/middleware"
	"recipebox/internal/model"
	"recipebox/internal/service"
	"recipebox/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listTagsByOwner = store.ListTagsByOwner
	createTag       = store.CreateTag
)

// @Summary     List own tags
// @Description Returns the caller's tags ordered by name descending
// @Tags        tags
// @Produce     json
// @Success     200 {array} api.TagResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tags [get]
func ListTagsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := c.Get(middleware.ContextUserKey).(*service.TokenIdentity)
		if !ok || identity.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		tags, err := listTagsByOwner(c.Request().Context(), db, identity.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		resp := make([]api.TagResponse, 0, len(tags))
		for _, tag := range tags {
			resp = append(resp, api.TagResponse{ID: tag.ID, Name: tag.Name})
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Create a tag
// @Description Creates a tag owned by the caller; any owner supplied in the payload is ignored
// @Tags        tags
// @Accept      json
// @Produce     json
// @Param       request body api.CreateTagRequest true "tag fields"
// @Success     201 {object} api.TagResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /tags [post]
func CreateTagHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := c.Get(middleware.ContextUserKey).(*service.TokenIdentity)
		if !ok || identity.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		var req api.CreateTagRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		// owner is always the authenticated caller
		tag, err := createTag(c.Request().Context(), db, &model.Tag{
			Name:   req.Name,
			UserID: identity.UserID,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.TagResponse{ID: tag.ID, Name: tag.Name})
	}
}
