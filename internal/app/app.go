package app

import (
	"log"
	"os"

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
	"go-leaveledger/internal/middleware"
	"go-leaveledger/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

func BuildApp(router *gin.Engine) error {
	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	log.Println("✅ Database connection established")

	if err := autoMigrate(gormDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	log.Println("✅ Redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.Actor())
	router.Use(middleware.RateLimitByIP(rate.Limit(10), 30))

	return registerModules(router, gormDB, redisClient)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&holiday.Holiday{},
		&leavetype.LeaveType{},
		&leaveyear.Configuration{},
		&leavepolicy.LeavePolicy{},
		&leavecycle.LeaveCycle{},
		&leavebalance.LeaveBalance{},
		&leavetransaction.LeaveTransaction{},
		&leaverequest.LeaveRequest{},
		&kafka.OutboxRecord{},
	)
}
