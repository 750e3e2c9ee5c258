package main

import (
	"github.com/PozdnyakovE/foodgram/config"
	"github.com/PozdnyakovE/foodgram/db"
	"github.com/PozdnyakovE/foodgram/logger"
	"github.com/PozdnyakovE/foodgram/route"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	logger.InitializeLogger()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warn("no .env file found, using system env vars")
	}

	cfg, err := config.ReadConfig(config.GetEnv("CONFIG_PATH", "config/development.yaml"))
	if err != nil {
		logger.Fatal("failed to read config", zap.Error(err))
	}

	if err := db.InitDB(cfg); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	var rdb *redis.Client
	if cfg.RedisConfig.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisConfig.Addr,
			Password: cfg.RedisConfig.Password,
			DB:       cfg.RedisConfig.DB,
		})
		defer rdb.Close()
	}

	r := gin.Default()
	route.SetupRoutes(r, cfg, db.GetDBInstance(), rdb)

	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}
