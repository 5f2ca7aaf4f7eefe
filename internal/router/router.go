package router

import (
	"github.com/labstack/echo/v4"

	"recipebox/internal/cache"
	"recipebox/internal/database"
	"recipebox/internal/handler"
	"recipebox/internal/handler/auth"
	"recipebox/internal/handler/tags"
	"recipebox/internal/handler/users"
	"recipebox/internal/middleware"
	"recipebox/internal/worker"
)

// Setup registers all routes and their middleware.
func Setup(e *echo.Echo, db database.DB, cch cache.Cache, wp worker.Pool) {
	api := e.Group("/api")

	requireAuth := middleware.RequireAuth(cch)

	api.GET("/ping", handler.PingHandler(db, cch), requireAuth)

	// public: registration and token exchange
	api.POST("/users/create", users.CreateUserHandler(db))
	api.POST("/users/token", auth.TokenHandler(db, cch, wp))

	// profile of the token's owner only
	apiMe := api.Group("/users/me", requireAuth)
	apiMe.GET("", users.GetMeHandler(db))
	apiMe.PATCH("", users.UpdateMeHandler(db))

	// owner-scoped tags
	apiTags := api.Group("/tags", requireAuth)
	apiTags.GET("", tags.ListTagsHandler(db))
	apiTags.POST("", tags.CreateTagHandler(db))
}
