package transfer

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	transfers := r.Group("/multicampus/transfers")
	transfers.Use(middleware.AuthMiddleware())
	{
		transfers.GET("", middleware.RBACAuthorize(enforcer, "transfer", "read"), handler.GetAll)
		transfers.GET("/:id", middleware.RBACAuthorize(enforcer, "transfer", "read"), handler.GetByID)
		transfers.POST("", middleware.RBACAuthorize(enforcer, "transfer", "create"), handler.Create)
		transfers.POST("/:id/approve", middleware.RBACAuthorize(enforcer, "transfer", "approve"), handler.Approve)
		transfers.POST("/:id/reject", middleware.RBACAuthorize(enforcer, "transfer", "approve"), handler.Reject)
	}
}
