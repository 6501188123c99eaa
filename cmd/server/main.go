package main

import (
	"context"
	"log"
	"os"
	"time"

	"storefront-service/internal/controllers/http"
	"storefront-service/internal/infra"
	mmysql "storefront-service/internal/infra/mysql"
	"storefront-service/internal/infra/rabbitmq"
	"storefront-service/internal/infra/ratelimit"
	mysqlrepo "storefront-service/internal/repository/mysql"
	"storefront-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

const (
	ordersPerWindow = 5
	rateWindow      = 60 * time.Second
	configCacheTTL  = 5 * time.Minute
	eventsExchange  = "order.exchange"
	notifyQueue     = "order.notifications"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, using environment as-is")
	}

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetMaxIdleConns(20)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	orderRepo := mysqlrepo.NewOrderRepository(db)
	blockedRepo := mysqlrepo.NewBlockedCustomerRepository(db)
	configRepo := mysqlrepo.NewConfigRepository(db)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     100,
		MinIdleConns: 10,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	publisher, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), eventsExchange)
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	limiter := ratelimit.NewRedisLimiter(redisClient, "ratelimit:orders", ordersPerWindow, rateWindow)
	configCache := services.NewSiteConfigCache(configRepo, configCacheTTL)

	orderService := services.NewOrderService(orderRepo, blockedRepo, configCache, limiter, publisher)
	statusService := services.NewStatusService(orderRepo, publisher)

	smsClient := infra.NewSMSClient(os.Getenv("SMS_GATEWAY_URL"), os.Getenv("SMS_GATEWAY_KEY"), 5*time.Second)
	notifier := services.NewNotificationService(smsClient)

	consumer, err := rabbitmq.NewConsumer(os.Getenv("RABBITMQ_URL"), eventsExchange, notifyQueue, []string{"order.*"})
	if err != nil {
		log.Fatalf("failed to init consumer: %v", err)
	}
	defer consumer.Close()

	ctx := context.Background()
	go func() {
		if err := consumer.Start(ctx, notifier.HandleEvent); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	handler := http.NewHandler(orderService, statusService, configRepo, configCache, blockedRepo, redisClient, os.Getenv("ADMIN_TOKEN"))

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting storefront service on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
