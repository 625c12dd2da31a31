package main

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/gamecatalog/web/internal/cache"
	"github.com/gamecatalog/web/internal/dispatch"
	"github.com/gamecatalog/web/internal/dom"
	"github.com/gamecatalog/web/internal/httpserver"
)

// ServeCmd runs the HTTP server.
type ServeCmd struct{}

// Run serves until the process is interrupted.
func (c *ServeCmd) Run(env *runEnv) error {
	a, err := buildApp(env.ctx, env.cfg, env.log)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if s, ok := a.cache.(*cache.SQLite); ok {
		go purgeLoop(env.ctx, s, env.cfg.CacheTTL, env.log)
	}

	srv := httpserver.New(a.pages, a.disp, httpserver.Options{
		Origins:        env.cfg.ClientOrigins,
		HandlerTimeout: env.cfg.HandlerTimeout,
		Logger:         env.log,
	})
	env.log.Info().
		Str("addr", env.cfg.Addr()).
		Str("backend", env.cfg.BackendURL).
		Str("cache", env.cfg.CacheBackend).
		Msg("starting gamecatalog web")
	return srv.Start(env.ctx, env.cfg.Addr())
}

// RenderCmd renders one page without starting the server.
type RenderCmd struct {
	Page   string `arg:"" enum:"index.html,results.html,game-details.html" default:"index.html" help:"Page shell to render"`
	Query  string `short:"q" help:"Search term for results.html"`
	ID     string `help:"Game id for game-details.html"`
	Output string `short:"o" help:"Write to this file instead of stdout"`
}

// Run renders the page and writes it out.
func (c *RenderCmd) Run(env *runEnv) error {
	a, err := buildApp(env.ctx, env.cfg, env.log)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var w io.Writer = os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		w = f
	}
	return c.render(env, a, w)
}

func (c *RenderCmd) render(env *runEnv, a *app, w io.Writer) error {
	raw, err := a.pages.Load(c.Page)
	if err != nil {
		return err
	}
	doc, err := dom.Parse(bytes.NewReader(raw))
	if err != nil {
		return err
	}

	params := url.Values{}
	if c.Query != "" {
		params.Set(dispatch.QueryParam, c.Query)
	}
	if c.ID != "" {
		params.Set(dispatch.IDParam, c.ID)
	}
	if _, page := a.disp.Run(env.ctx, doc, params); page == dispatch.PageNone {
		return fmt.Errorf("render %s: page already dispatched", c.Page)
	}
	return doc.Render(w)
}
