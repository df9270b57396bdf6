package admission

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	applications := r.Group("/admission/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.GET("", middleware.RBACAuthorize(enforcer, "admission", "read"), handler.GetAll)
		applications.GET("/:id", middleware.RBACAuthorize(enforcer, "admission", "read"), handler.GetByID)
		applications.POST("", middleware.RBACAuthorize(enforcer, "admission", "create"), handler.Create)
		applications.PUT("/:id", middleware.RBACAuthorize(enforcer, "admission", "update"), handler.Update)
		applications.DELETE("/:id", middleware.RBACAuthorize(enforcer, "admission", "delete"), handler.Delete)
	}

	merit := r.Group("/admission/merit-list")
	merit.Use(middleware.AuthMiddleware())
	{
		merit.POST("/generate", middleware.RBACAuthorize(enforcer, "admission", "approve"), handler.GenerateMeritList)
	}
}
