package finance

import (
	"go-uerp/internal/middleware"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	enforcer *casbin.Enforcer,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	fees := r.Group("/finance/fees")
	fees.Use(middleware.AuthMiddleware())
	{
		fees.GET("", middleware.RBACAuthorize(enforcer, "finance", "read"), handler.GetAllFees)
		fees.GET("/:id", middleware.RBACAuthorize(enforcer, "finance", "read"), handler.GetFeeByID)
		fees.POST("", middleware.RBACAuthorize(enforcer, "finance", "create"), handler.CreateFee)
		fees.DELETE("/:id", middleware.RBACAuthorize(enforcer, "finance", "delete"), handler.DeleteFee)
		fees.GET("/:id/payments", middleware.RBACAuthorize(enforcer, "finance", "read"), handler.GetPaymentsByFee)
		if redisClient != nil {
			fees.POST(
				"/:id/payments",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(enforcer, "finance", "create"),
				handler.RecordPayment,
			)
		} else {
			fees.POST("/:id/payments", middleware.RBACAuthorize(enforcer, "finance", "create"), handler.RecordPayment)
		}
	}
}
