package app

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/myshortcuts/internal/config"
	"github.com/MrSnakeDoc/myshortcuts/internal/logger"
	"github.com/MrSnakeDoc/myshortcuts/internal/redis"
	"github.com/MrSnakeDoc/myshortcuts/internal/store"
	redisstore "github.com/MrSnakeDoc/myshortcuts/internal/store/redis"
	"github.com/MrSnakeDoc/myshortcuts/internal/store/sqlite"
)

// OpenStore opens the bookmark tree selected by MYSHORTCUTS_STORE.
// The caller owns the returned tree and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config, log logger.Logger) (store.Tree, error) {
	switch cfg.Store {
	case config.StoreRedis:
		client, err := redis.Connect(ctx, redis.OptionsFromConfig(cfg), log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		log.Info("redis store ready", logger.String("addr", cfg.RedisAddr))
		return redisstore.NewStore(client), nil

	default:
		s, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		log.Info("sqlite store ready", logger.String("path", s.Path()))
		return s, nil
	}
}
