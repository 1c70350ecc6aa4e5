package main

import (
	"fmt"

	"github.com/rentcalc/outsource-calculator/internal/config"
	"github.com/rentcalc/outsource-calculator/internal/history"
)

// newBackend builds the configured record backend. The returned func, when
// non-nil, releases its resources.
func newBackend(cfg config.StoreConfig) (history.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return history.NewMemoryBackend(nil), nil, nil
	case config.BackendFile:
		return history.NewFileBackend(cfg.Path), nil, nil
	case config.BackendRedis:
		client := history.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		backend := history.NewRedisBackend(client, cfg.Redis.Key)
		return backend, backend.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
