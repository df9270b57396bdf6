package certification

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, enforcer *casbin.Enforcer) {
	requests := r.Group("/certification/requests")
	requests.Use(middleware.AuthMiddleware())
	{
		requests.GET("", middleware.RBACAuthorize(enforcer, "certification", "read"), handler.GetAllRequests)
		requests.GET("/:id", middleware.RBACAuthorize(enforcer, "certification", "read"), handler.GetRequestByID)
		requests.POST("", middleware.RBACAuthorize(enforcer, "certification", "create"), handler.CreateRequest)
		requests.POST("/:id/pay-fee", middleware.RBACAuthorize(enforcer, "certification", "update"), handler.MarkFeePaid)
		requests.POST("/:id/approve", middleware.RBACAuthorize(enforcer, "certification", "approve"), handler.Approve)
		requests.POST("/:id/reject", middleware.RBACAuthorize(enforcer, "certification", "approve"), handler.Reject)
	}

	// Public endpoint: no auth, aggressive per-IP rate limit
	r.POST("/certification/verify", middleware.RateLimitByIP(rate.Limit(5), 10), handler.Verify)
}
