package student

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	students := r.Group("/academics/students")
	students.Use(middleware.AuthMiddleware())
	{
		students.GET("", middleware.RBACAuthorize(enforcer, "student", "read"), handler.GetAll)
		students.GET("/:id", middleware.RBACAuthorize(enforcer, "student", "read"), handler.GetByID)
		students.POST("", middleware.RBACAuthorize(enforcer, "student", "create"), handler.Create)
		students.PUT("/:id", middleware.RBACAuthorize(enforcer, "student", "update"), handler.Update)
		students.DELETE("/:id", middleware.RBACAuthorize(enforcer, "student", "delete"), handler.Delete)
	}
}
