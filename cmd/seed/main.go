package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"talentboard/internal/app"
	"talentboard/internal/config"
	"talentboard/internal/database/seeder"
)

func main() {
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for generated content")
	flag.Parse()

	logger := log.New(os.Stdout, "", log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.Store.Backend == config.BackendMemory {
		logger.Printf("[Seeder] warning: KV_BACKEND=memory, seeded data is lost when this process exits")
	}

	c, err := app.NewContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	env := &seeder.Env{
		Auth:     c.Auth,
		Projects: c.Projects,
		Posts:    c.Posts,
		Logger:   logger,
	}
	if err := (seeder.Runner{Seeders: seeder.Defaults(*seed)}).Run(ctx, env); err != nil {
		logger.Fatalf("seed failed: %v", err)
	}
	logger.Printf("[Seeder] complete employer_id=%s", env.Employer.UserID)
}
