package main

import (
	"context"
	"flag"
	"os"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/pressly/goose/v3"

	"github.com/stormiq/signals-api/internal/config"
	"github.com/stormiq/signals-api/internal/logger"
)

func main() {
	command := flag.String("command", "up", "migrate command (up|status|down)")
	dir := flag.String("dir", "migrations", "migrations directory")
	flag.Parse()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		zlog.Error().Err(err).Msg("load config")
		os.Exit(1)
	}

	db, err := config.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		zlog.Error().Err(err).Msg("open database")
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		zlog.Error().Err(err).Msg("configure goose")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch *command {
	case "up":
		zlog.Info().Str("dir", *dir).Msg("applying migrations")
		err = goose.UpContext(ctx, db, *dir)
	case "status":
		err = goose.Status(db, *dir)
	case "down":
		zlog.Info().Msg("rolling back latest migration")
		err = goose.DownContext(ctx, db, *dir)
	default:
		zlog.Error().Str("command", *command).Msg("unknown command")
		os.Exit(2)
	}

	if err != nil {
		zlog.Error().Err(err).Str("command", *command).Msg("migration failed")
		os.Exit(1)
	}

	zlog.Info().Str("command", *command).Msg("done")
}
