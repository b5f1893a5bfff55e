package main

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ericogr/chimera-battle/internal/config"
	"github.com/ericogr/chimera-battle/internal/constants"
	"github.com/ericogr/chimera-battle/internal/logging"
	"github.com/ericogr/chimera-battle/internal/storage"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	if path == "" {
		logging.Info("no CHIMERA_CONFIG set; using the stock catalog", nil)
		return config.Default()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid chimera configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

// createRepositoryOrExit opens the sqlite store and, when REDIS_ADDR is
// set and reachable, puts the snapshot cache in front of it.
func createRepositoryOrExit(env config.Env) storage.Repository {
	db, err := storage.OpenAndMigrate(env.DatabasePath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	repo := storage.NewSQLiteRepository(db)
	if env.RedisAddr == "" {
		return repo
	}

	rdb := redis.NewClient(&redis.Options{Addr: env.RedisAddr, Password: env.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logging.Warn("redis unavailable; running without snapshot cache", logging.Fields{
			constants.LogFieldAddr: env.RedisAddr,
			"error":                err.Error(),
		})
		_ = rdb.Close()
		return repo
	}
	logging.Info("snapshot cache enabled", logging.Fields{
		constants.LogFieldAddr: env.RedisAddr,
		"ttl":                  env.SnapshotLife.String(),
	})
	return storage.NewCachedRepository(repo, rdb, env.SnapshotLife)
}
