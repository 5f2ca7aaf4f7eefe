package auth

import (
	"context"
	"log"
	"net/http"

	"recipebox/internal/api"
	"recipebox/internal/cache"
	"recipebox/internal/database"
	"recipebox/internal/service"
	"recipebox/internal/store"
	"recipebox/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	normalizeEmail      = service.NormalizeEmail
	authenticateUser    = service.AuthenticateUser
	issueToken          = service.IssueToken
	getUserByEmail      = store.GetUserByEmail
	updateUserLastLogin = store.UpdateUserLastLogin
)

// credentialsRejected is the one message every failed authentication
// returns. Whether the email was unknown, the password wrong, or a
// field missing must not be distinguishable from the response.
const credentialsRejected = "unable to authenticate with provided credentials"

// @Summary     Obtain an auth token
// @Description Exchanges email and password for an opaque bearer token; re-issuing replaces the previous token
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.TokenRequest true "credentials"
// @Success     200 {object} api.TokenResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/token [post]
func TokenHandler(db database.DB, cch cache.Cache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.TokenRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: credentialsRejected})
		}

		email, err := normalizeEmail(req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: credentialsRejected})
		}

		user, err := getUserByEmail(c.Request().Context(), db, email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: credentialsRejected})
		}
		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: credentialsRejected})
		}

		token, err := issueToken(c.Request().Context(), cch, *user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		// record last_login off the request path
		userID := user.ID
		wp.Submit(func() {
			if err := updateUserLastLogin(context.Background(), db, userID); err != nil {
				log.Printf("update last_login for user %d: %v", userID, err)
			}
		})

		return c.JSON(http.StatusOK, api.TokenResponse{Token: token})
	}
}
