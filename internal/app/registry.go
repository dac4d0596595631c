package app

import (
	"go-leaveledger/internal/employee"
	"go-leaveledger/internal/holiday"
	"go-leaveledger/internal/leavebalance"
	"go-leaveledger/internal/leavecycle"
	"go-leaveledger/internal/leavepolicy"
	"go-leaveledger/internal/leaverequest"
	"go-leaveledger/internal/leavetransaction"
	"go-leaveledger/internal/leavetype"
	"go-leaveledger/internal/leaveyear"
	"go-leaveledger/internal/messaging/kafka"
	"go-leaveledger/internal/shared/database"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	txm := database.NewTxManager(gormDB)

	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	holidayRepo := holiday.NewRepository(gormDB)
	leaveTypeRepo := leavetype.NewRepository(gormDB)
	leaveYearRepo := leaveyear.NewRepository(gormDB)
	leavePolicyRepo := leavepolicy.NewRepository(gormDB)
	leaveCycleRepo := leavecycle.NewRepository(gormDB)
	leaveBalanceRepo := leavebalance.NewRepository(gormDB)
	transactionRepo := leavetransaction.NewRepository(gormDB)
	leaveRequestRepo := leaverequest.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo)
	leaveTypeService := leavetype.NewService(leaveTypeRepo)
	leaveYearService := leaveyear.NewService(leaveYearRepo)
	leavePolicyService := leavepolicy.NewService(leavePolicyRepo)
	leaveCycleService := leavecycle.NewService(txm, leaveCycleRepo, leavePolicyRepo, employeeRepo)
	leaveBalanceService := leavebalance.NewService(
		txm,
		leaveBalanceRepo,
		transactionRepo,
		leavePolicyRepo,
		leaveYearRepo,
		employeeRepo,
		leaveCycleRepo,
	)
	leaveRequestService := leaverequest.NewService(
		txm,
		leaveRequestRepo,
		leaveBalanceRepo,
		transactionRepo,
		leavePolicyRepo,
		leaveYearRepo,
		employeeRepo,
		holidayRepo,
		outboxRepo,
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	holidayHandler := holiday.NewHandler(holidayRepo)
	leaveTypeHandler := leavetype.NewHandler(leaveTypeService)
	leaveYearHandler := leaveyear.NewHandler(leaveYearService)
	leavePolicyHandler := leavepolicy.NewHandler(leavePolicyService)
	leaveCycleHandler := leavecycle.NewHandler(leaveCycleService)
	leaveBalanceHandler := leavebalance.NewHandler(leaveBalanceService)
	leaveRequestHandler := leaverequest.NewHandler(leaveRequestService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler)
		holiday.RegisterRoutes(api, holidayHandler)
		leavetype.RegisterRoutes(api, leaveTypeHandler)
		leaveyear.RegisterRoutes(api, leaveYearHandler)
		leavepolicy.RegisterRoutes(api, leavePolicyHandler)
		leavecycle.RegisterRoutes(api, leaveCycleHandler, rdb)
		leavebalance.RegisterRoutes(api, leaveBalanceHandler, rdb)
		leaverequest.RegisterRoutes(api, leaveRequestHandler)
	}

	return nil
}
