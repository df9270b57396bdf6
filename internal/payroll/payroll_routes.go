package payroll

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

	salaries := r.Group("/payroll/salaries")
	salaries.Use(middleware.AuthMiddleware())
	{
		salaries.GET("", middleware.RBACAuthorize(enforcer, "payroll", "read"), handler.GetAll)
		salaries.GET("/:id", middleware.RBACAuthorize(enforcer, "payroll", "read"), handler.GetByID)
		if redisClient != nil {
			salaries.POST(
				"",
				middleware.Idempotency(redisClient),
				middleware.RBACAuthorize(enforcer, "payroll", "create"),
				handler.Create,
			)
		} else {
			salaries.POST("", middleware.RBACAuthorize(enforcer, "payroll", "create"), handler.Create)
		}
		salaries.POST("/:id/process", middleware.RBACAuthorize(enforcer, "payroll", "process"), handler.Process)
		salaries.POST("/:id/approve", middleware.RBACAuthorize(enforcer, "payroll", "approve"), handler.Approve)
		salaries.POST("/:id/pay", middleware.RBACAuthorize(enforcer, "payroll", "pay"), handler.MarkPaid)
		salaries.DELETE("/:id", middleware.RBACAuthorize(enforcer, "payroll", "delete"), handler.Delete)
	}
}
