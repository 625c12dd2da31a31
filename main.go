package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gamecatalog/web/internal/config"
)

// CLI is the command line of the frontend server.
type CLI struct {
	config.Config `embed:""`

	Serve  ServeCmd  `cmd:"" default:"1" help:"Serve the catalog pages (default)"`
	Render RenderCmd `cmd:"" help:"Render one page to stdout or a file"`
}

func main() {
	_ = godotenv.Load()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("gamecatalog"),
		kong.Description("Server-rendered frontend for the game catalog API."),
		kong.UsageOnError(),
	)
	// kong has already run Config.Validate while parsing.
	setupLogging(cli.LogLevel, cli.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kctx.Run(&runEnv{ctx: ctx, cfg: &cli.Config, log: log.Logger}); err != nil {
		log.Fatal().Err(err).Str("command", kctx.Command()).Msg("command failed")
	}
}

// runEnv is bound into every command's Run method.
type runEnv struct {
	ctx context.Context
	cfg *config.Config
	log zerolog.Logger
}

func setupLogging(level, format string) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}
