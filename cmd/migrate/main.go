package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"talentboard/internal/config"
	"talentboard/internal/database/migration"
	dbpostgres "talentboard/internal/database/postgres"
	"talentboard/migrations"
)

func main() {
	dir := flag.String("dir", "", "read migrations from this directory instead of the embedded set")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall timeout")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Store.Backend != config.BackendPostgres {
		logger.Printf("[Migration] KV_BACKEND=%s needs no schema, nothing to do", cfg.Store.Backend)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		logger.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	r := migration.Runner{FS: migrations.FS, Logger: logger}
	if *dir != "" {
		r = migration.Runner{Dir: *dir, Logger: logger}
	}

	n, err := r.Run(ctx, db.SQLDB())
	if err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	logger.Printf("[Migration] complete applied=%d", n)
}
