package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path-measure-service/internal/adapters/cache"
	"path-measure-service/internal/config"
	"path-measure-service/internal/platform/db"
	"path-measure-service/internal/platform/obs"
	"strings"
	"time"

	"go.uber.org/zap"
)

// dbtool prepares and maintains the Postgres geocode cache.
//
//	dbtool init
//	dbtool prune -older-than 720h
func main() {
	foundEnv := config.LoadDotEnv()

	log, err := obs.NewLogger(config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if !foundEnv {
		log.Info("No .env file found (using environment variables)")
	}

	if len(os.Args) < 2 {
		log.Fatal("usage: dbtool <init|prune> [flags]")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	conn, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal("open database", zap.Error(err))
	}
	defer conn.Close()

	switch os.Args[1] {
	case "init":
		log.Info("Initializing database schema...")
		if err := cache.InitSchema(ctx, conn); err != nil {
			log.Fatal("schema initialization failed", zap.Error(err))
		}
		log.Info("Schema ready.")

	case "prune":
		fs := flag.NewFlagSet("prune", flag.ExitOnError)
		olderThan := fs.Duration("older-than", 30*24*time.Hour, "delete entries not refreshed within this duration")
		_ = fs.Parse(os.Args[2:])

		n, err := cache.Prune(ctx, conn, *olderThan)
		if err != nil {
			log.Fatal("prune failed", zap.Error(err))
		}
		log.Info("Pruned geocode cache", zap.Int64("deleted", n), zap.Duration("older_than", *olderThan))

	default:
		log.Fatal("unknown command", zap.String("command", os.Args[1]))
	}
}
