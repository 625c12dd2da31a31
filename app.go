package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/gamecatalog/web/assets"
	"github.com/gamecatalog/web/internal/cache"
	"github.com/gamecatalog/web/internal/catalog"
	"github.com/gamecatalog/web/internal/config"
	"github.com/gamecatalog/web/internal/dispatch"
	"github.com/gamecatalog/web/internal/view"
)

// app is the wired object graph shared by the commands.
type app struct {
	cache cache.Store
	pages *assets.Pages
	disp  *dispatch.Dispatcher
}

// buildApp wires cache, catalog client, views and dispatcher from cfg.
func buildApp(ctx context.Context, cfg *config.Config, l zerolog.Logger) (*app, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	store, err := openCache(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := []catalog.Option{
		catalog.WithBaseURL(cfg.BackendURL),
		catalog.WithHTTPClient(&http.Client{Timeout: cfg.BackendTimeout}),
		catalog.WithRateLimit(cfg.BackendRPS),
		catalog.WithLogger(l.With().Str("component", "catalog").Logger()),
	}
	if store != nil {
		opts = append(opts, catalog.WithCache(store, cfg.CacheTTL))
	}
	client := catalog.NewClient(opts...)

	views := view.New(client,
		view.WithLogger(l.With().Str("component", "view").Logger()),
		view.WithLocation(loc),
	)
	return &app{
		cache: store,
		pages: assets.NewPages(cfg.PagesDir),
		disp:  dispatch.New(views, l.With().Str("component", "dispatch").Logger()),
	}, nil
}

// Close releases the response cache.
func (a *app) Close() error {
	if a.cache == nil {
		return nil
	}
	return a.cache.Close()
}

// openCache returns the configured response cache, or nil when caching is off.
func openCache(ctx context.Context, cfg *config.Config) (cache.Store, error) {
	if cfg.CacheTTL <= 0 {
		return nil, nil
	}
	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, nil
	case config.CacheRedis:
		r, err := cache.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.CacheSQLite:
		s, err := cache.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case config.CacheMemory, "":
		return cache.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
}

// purgeLoop deletes expired sqlite cache rows every interval until ctx ends.
func purgeLoop(ctx context.Context, s *cache.SQLite, interval time.Duration, l zerolog.Logger) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.Purge(ctx)
			if err != nil {
				l.Warn().Err(err).Msg("purge cache")
				continue
			}
			if n > 0 {
				l.Debug().Int64("rows", n).Msg("purged expired cache entries")
			}
		}
	}
}
