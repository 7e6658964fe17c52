package main

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/market/app/services"
	"github.com/shashiranjanraj/market/config"
	"github.com/shashiranjanraj/market/internal/kernel"
	"github.com/shashiranjanraj/market/pkg/auth"
	"github.com/shashiranjanraj/market/pkg/cache"
	"github.com/shashiranjanraj/market/pkg/database"
	"github.com/shashiranjanraj/market/pkg/logger"
)

// bootDB loads config and opens the database connection.
func bootDB() (*gorm.DB, error) {
	if err := config.Load(); err != nil {
		return nil, err
	}
	if err := database.Connect(); err != nil {
		return nil, err
	}
	return database.DB, nil
}

// bootCache connects to redis. The returned store is usable even when
// redis is down; reads then always miss.
func bootCache(ctx context.Context) *cache.Store {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	store, err := cache.Connect(pingCtx, config.RedisAddr(), config.RedisPassword(), "market:")
	if err != nil {
		logger.Warn("redis unavailable, product cache disabled", "addr", config.RedisAddr(), "error", err)
	}
	return store
}

func tokenService() *auth.TokenService {
	return auth.NewTokenService([]byte(config.JWTSecret()), config.JWTTimeout())
}

// bootServices wires every service. store may be nil.
func bootServices(db *gorm.DB, store *cache.Store) *services.Container {
	var pc services.ProductCache
	if store != nil {
		pc = store
	}
	return services.NewContainer(db, pc, config.CacheTTL(), tokenService())
}

func kernelOptions() kernel.Options {
	return kernel.Options{
		CORSOrigins:    config.CORSOrigins(),
		AuthRateLimit:  config.AuthRateLimit(),
		AuthRateWindow: time.Minute,
	}
}
