package platform

import (
	"fmt"
	"log"

	"github.com/go-redis/redis/v8"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection initializes a GORM postgres connection. A failure is
// returned rather than fatal so the caller can fall back to the in-memory
// store.
func NewDBConnection(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying SQL DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection test: %w", err)
	}

	log.Println("Database connected successfully")
	return db, nil
}

// NewRedisClient initializes a Redis client, or nil when no REDIS_URL is
// configured. Event publishing degrades gracefully without it.
func NewRedisClient(cfg Config) *redis.Client {
	if cfg.RedisURL == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisURL,
	})
	log.Println("Redis client initialized")
	return rdb
}
