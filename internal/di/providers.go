// Package di assembles the service from configuration.
package di

import (
	"log"
	"net/http"

	"gomentor/internal/cache"
	"gomentor/internal/common"
	"gomentor/internal/config"
	"gomentor/internal/dbmysql"

	"gorm.io/gorm"
)

type Application struct {
	Config *config.Config
	DB     *gorm.DB
	Router http.Handler
}

func ProvideConfig() *config.Config {
	return config.LoadConfig()
}

// ProvideDatabase connects and migrates; the cleanup closes the pool.
func ProvideDatabase(cfg *config.Config) (*gorm.DB, func(), error) {
	db, err := dbmysql.NewDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

// ProvideCache returns a nil Cache when Redis is disabled.
func ProvideCache(cfg *config.Config) (cache.Cache, func(), error) {
	if !cfg.Redis.Enabled {
		log.Println("Redis disabled, unread counts are computed on every request")
		return nil, func() {}, nil
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return nil, nil, err
	}
	log.Println("✅ Connected to Redis")

	return redisCache, func() { redisCache.Close() }, nil
}

func ProvideUnreadCounter(c cache.Cache, cfg *config.Config) *cache.UnreadCounter {
	return cache.NewUnreadCounter(c, cfg.UnreadTTL())
}

func ProvideTokenManager(cfg *config.Config) *common.TokenManager {
	if cfg.Auth.JWTSecret == "change-me" && cfg.Server.Environment == "production" {
		log.Println("WARNING: JWT_SECRET is the default value")
	}
	return common.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL(), cfg.Auth.Issuer)
}
