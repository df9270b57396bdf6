package leave

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	leaves := r.Group("/hr/leaves")
	leaves.Use(middleware.AuthMiddleware())
	{
		leaves.GET("", middleware.RBACAuthorize(enforcer, "leave", "read"), handler.GetAll)
		leaves.GET("/:id", middleware.RBACAuthorize(enforcer, "leave", "read"), handler.GetByID)
		leaves.POST("", middleware.RBACAuthorize(enforcer, "leave", "create"), handler.Create)
		leaves.POST("/:id/approve", middleware.RBACAuthorize(enforcer, "leave", "approve"), handler.Approve)
		leaves.POST("/:id/reject", middleware.RBACAuthorize(enforcer, "leave", "approve"), handler.Reject)
		leaves.POST("/:id/cancel", middleware.RBACAuthorize(enforcer, "leave", "cancel"), handler.Cancel)
		leaves.DELETE("/:id", middleware.RBACAuthorize(enforcer, "leave", "delete"), handler.Delete)
	}
}
