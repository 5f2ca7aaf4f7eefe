package users

import (
	"errors"
	"net/http"

	"recipebox/internal/api"
	"recipebox/internal/database"
	"recipebox/internal/middleware"
	"recipebox/internal/service"
	"recipebox/internal/store"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/labstack/echo/v4"
)

var (
	newUser            = service.NewUser
	normalizeEmail     = service.NormalizeEmail
	hashPassword       = service.HashPassword
	createUser         = store.CreateUser
	getUserByID        = store.GetUserByID
	updateUser         = store.UpdateUser
	updateUserPassword = store.UpdateUserPassword
)

const uniqueViolation = "23505"

func isDuplicateEmail(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// @Summary     Create a new user account
// @Description Registers an account; the email domain is lowercased before storage
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.CreateUserRequest true "account fields"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/create [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := newUser(req.Email, req.Password, req.Name)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		created, err := createUser(c.Request().Context(), db, user)
		if err != nil {
			if isDuplicateEmail(err) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "user with this email already exists"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, api.UserResponse{
			Email: created.Email,
			Name:  created.Name,
		})
	}
}

// @Summary     Get current user profile
// @Description Returns the profile of the token's owner
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := c.Get(middleware.ContextUserKey).(*service.TokenIdentity)
		if !ok || identity.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}
		user, err := getUserByID(c.Request().Context(), db, identity.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, api.UserResponse{
			Email: user.Email,
			Name:  user.Name,
		})
	}
}

// @Summary     Update current user profile
// @Description Partial update of name, email, or password; only the token's owner record is reachable
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       request body api.UpdateMeRequest true "fields to change"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [patch]
func UpdateMeHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.UpdateMeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		identity, ok := c.Get(middleware.ContextUserKey).(*service.TokenIdentity)
		if !ok || identity.UserID == 0 {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing token"})
		}

		user, err := getUserByID(c.Request().Context(), db, identity.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		if req.Name != nil {
			user.Name = *req.Name
		}
		if req.Email != nil {
			normalized, err := normalizeEmail(*req.Email)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
			}
			user.Email = normalized
		}

		if req.Name != nil || req.Email != nil {
			if err := updateUser(c.Request().Context(), db, user); err != nil {
				if isDuplicateEmail(err) {
					return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "user with this email already exists"})
				}
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		if req.Password != nil {
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
			}
			if err := updateUserPassword(c.Request().Context(), db, user.ID, hash); err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		return c.JSON(http.StatusOK, api.UserResponse{
			Email: user.Email,
			Name:  user.Name,
		})
	}
}
