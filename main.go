package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/devvitrinefrutal-del/vitrine-api/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/catalog"
	"github.com/devvitrinefrutal-del/vitrine-api/checkout"
	"github.com/devvitrinefrutal-del/vitrine-api/config"
	orderControllers "github.com/devvitrinefrutal-del/vitrine-api/controllers/order"
	"github.com/devvitrinefrutal-del/vitrine-api/fulfillment"
	"github.com/devvitrinefrutal-del/vitrine-api/gateway"
	"github.com/devvitrinefrutal-del/vitrine-api/middleware"
	"github.com/devvitrinefrutal-del/vitrine-api/notify"
	"github.com/devvitrinefrutal-del/vitrine-api/routes"
	"github.com/devvitrinefrutal-del/vitrine-api/session"
)

func main() {
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(&cfg.Log)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	db, err := gorm.Open(postgres.Open(cfg.Postgres.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to Postgres", zap.Error(err))
	}

	gw := gateway.New(db)
	if err := gw.Migrate(); err != nil {
		logger.Fatal("AutoMigrate failed", zap.Error(err))
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Warn("Redis connection failed", zap.Error(err))
	}

	cache := catalog.NewCache(gw)
	if err := cache.Refresh(ctx); err != nil {
		logger.Warn("Initial catalog load failed", zap.Error(err))
	}

	snapshots := cart.NewRedisSnapshotStore(redisClient, cfg.Session.CartTTL)
	sessions := session.NewManager(gw, redisClient, logger,
		cfg.Session.JWTSecret, cfg.Session.TokenTTL, cfg.Session.RememberTTL)
	verifier := session.NewHMACVerifier(cfg.Session.JWTSecret)
	notifier := notify.NewLogNotifier(logger)
	pipeline := checkout.NewPipeline(gw, cache, notifier, logger)
	board := fulfillment.NewBoard(gw)
	hub := orderControllers.NewHub()

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY", "X-Guest-ID"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.SetupRoutes(r, routes.Deps{
		Gateway:   gw,
		Cache:     cache,
		Snapshots: snapshots,
		Pipeline:  pipeline,
		Board:     board,
		Sessions:  sessions,
		Verifier:  verifier,
		Hub:       hub,
		AdminKey:  cfg.Server.AdminAPIKey,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("Server starting", zap.String("address", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.LogConfig) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = cfg.Encoding
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}
