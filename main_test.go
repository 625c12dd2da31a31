package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecatalog/web/internal/cache"
	"github.com/gamecatalog/web/internal/config"
)

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		BackendURL:     backendURL,
		BackendTimeout: time.Second,
		CacheBackend:   config.CacheMemory,
		CacheTTL:       time.Minute,
		TimeZone:       "America/Sao_Paulo",
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := testConfig("http://x")
	s, err := openCache(ctx, cfg)
	require.NoError(t, err)
	assert.NotNil(t, s)

	cfg.CacheBackend = config.CacheNone
	s, err = openCache(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, s)

	cfg.CacheBackend = config.CacheMemory
	cfg.CacheTTL = 0
	s, err = openCache(ctx, cfg)
	require.NoError(t, err)
	assert.Nil(t, s)

	cfg.CacheTTL = time.Minute
	cfg.CacheBackend = config.CacheSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "cache.db")
	s, err = openCache(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &cache.SQLite{}, s)
	require.NoError(t, s.Close())

	mr := miniredis.RunT(t)
	cfg.CacheBackend = config.CacheRedis
	cfg.RedisURL = "redis://" + mr.Addr() + "/0"
	s, err = openCache(ctx, cfg)
	require.NoError(t, err)
	assert.IsType(t, &cache.Redis{}, s)
	require.NoError(t, s.Close())

	cfg.CacheBackend = "memcached"
	_, err = openCache(ctx, cfg)
	assert.Error(t, err)
}

func TestRenderCommand(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/games", r.URL.Path)
		_, _ = w.Write([]byte(`[{"id":1,"name":"Celeste","first_release_date":1516838400}]`))
	}))
	t.Cleanup(api.Close)

	env := &runEnv{ctx: context.Background(), cfg: testConfig(api.URL), log: zerolog.Nop()}
	a, err := buildApp(env.ctx, env.cfg, env.log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	var out bytes.Buffer
	cmd := &RenderCmd{Page: "results.html", Query: "celeste"}
	require.NoError(t, cmd.render(env, a, &out))

	html := out.String()
	assert.Contains(t, html, `href="game-details.html?id=1"`)
	assert.Contains(t, html, "Lançamento: 24/01/2018")
	assert.Contains(t, html, `<span id="search-query-display">celeste</span>`)
}
