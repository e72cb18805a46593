// Package store provides the key-value backends the widget can persist its
// recent searches in.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/0nxb/my-weather-app/internal/memstore"
)

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
)

type Options struct {
	Backend       string
	Path          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

// Open builds the backend named in opts.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return memstore.New(), nil
	case BackendFile:
		return NewFile(opts.Path)
	case BackendSQLite:
		db, err := OpenSQLite(opts.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", opts.Path, err)
		}
		return NewSQL(db)
	case BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("connect redis %s: %w", opts.RedisAddr, err)
		}
		slog.Info("connected to redis", "addr", opts.RedisAddr)
		return NewRedis(client, ""), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}
