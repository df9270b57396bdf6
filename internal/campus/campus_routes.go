package campus

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	campuses := r.Group("/multicampus/campuses")
	campuses.Use(middleware.AuthMiddleware())
	{
		campuses.GET("", middleware.RBACAuthorize(enforcer, "campus", "read"), handler.GetAll)
		campuses.GET("/:id", middleware.RBACAuthorize(enforcer, "campus", "read"), handler.GetByID)
		campuses.POST("", middleware.RBACAuthorize(enforcer, "campus", "create"), handler.Create)
		campuses.PUT("/:id", middleware.RBACAuthorize(enforcer, "campus", "update"), handler.Update)
		campuses.DELETE("/:id", middleware.RBACAuthorize(enforcer, "campus", "delete"), handler.Delete)
	}
}
