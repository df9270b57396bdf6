package employee

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/hr/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RBACAuthorize(enforcer, "employee", "read"), handler.GetAll)
		employees.GET("/:id", middleware.RBACAuthorize(enforcer, "employee", "read"), handler.GetByID)
		employees.POST("", middleware.RBACAuthorize(enforcer, "employee", "create"), handler.Create)
		employees.PUT("/:id", middleware.RBACAuthorize(enforcer, "employee", "update"), handler.Update)
		employees.DELETE("/:id", middleware.RBACAuthorize(enforcer, "employee", "delete"), handler.Delete)
	}
}
