package app

import (
	"database/sql"

	"go-uerp/internal/admission"
	"go-uerp/internal/auth"
	"go-uerp/internal/campus"
	"go-uerp/internal/certification"
	"go-uerp/internal/employee"
	"go-uerp/internal/finance"
	"go-uerp/internal/leave"
	"go-uerp/internal/messaging/kafka"
	"go-uerp/internal/payroll"
	"go-uerp/internal/rbac"
	"go-uerp/internal/shared/counter"
	"go-uerp/internal/student"
	"go-uerp/internal/transfer"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	admissionRepo := admission.NewRepository(gormDB)
	authRepo := auth.NewRepository(gormDB)
	campusRepo := campus.NewRepository(gormDB)
	certificationRepo := certification.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	financeRepo := finance.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)
	studentRepo := student.NewRepository(gormDB)
	transferRepo := transfer.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := rbac.NewEnforcer()
	if err != nil {
		return err
	}

	// --- Services ---
	admissionService := admission.NewService(db, admissionRepo)
	authService := auth.NewService(authRepo)
	campusService := campus.NewService(campusRepo)
	certificationService := certification.NewService(db, certificationRepo, counterRepo, outboxRepo, rdb)
	employeeService := employee.NewService(employeeRepo, counterRepo)
	financeService := finance.NewService(db, financeRepo)
	leaveService := leave.NewService(db, leaveRepo, outboxRepo)
	payrollService := payroll.NewService(db, payrollRepo)
	studentService := student.NewService(studentRepo, counterRepo)
	transferService := transfer.NewService(db, transferRepo)

	// --- Handlers ---
	admissionHandler := admission.NewHandler(admissionService)
	authHandler := auth.NewHandler(authService)
	campusHandler := campus.NewHandler(campusService)
	certificationHandler := certification.NewHandler(certificationService)
	employeeHandler := employee.NewHandler(employeeService)
	financeHandler := finance.NewHandler(financeService)
	leaveHandler := leave.NewHandler(leaveService)
	payrollHandler := payroll.NewHandler(payrollService)
	studentHandler := student.NewHandler(studentService)
	transferHandler := transfer.NewHandler(transferService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		admission.RegisterRoutes(api, admissionHandler, enforcer)
		auth.RegisterRoutes(api, authHandler)
		campus.RegisterRoutes(api, campusHandler, enforcer)
		certification.RegisterRoutes(api, certificationHandler, enforcer)
		employee.RegisterRoutes(api, employeeHandler, enforcer)
		finance.RegisterRoutes(api, financeHandler, enforcer, rdb)
		leave.RegisterRoutes(api, leaveHandler, enforcer)
		payroll.RegisterRoutes(api, payrollHandler, enforcer, rdb)
		student.RegisterRoutes(api, studentHandler, enforcer)
		transfer.RegisterRoutes(api, transferHandler, enforcer)
	}

	return nil
}
