package seeder

import (
	"context"
	"fmt"
	"log"
)

type Runner struct {
	Seeders []Seeder
}

func (r Runner) Run(ctx context.Context, env *Env) error {
	if env == nil {
		return fmt.Errorf("nil seed env")
	}
	if env.Logger == nil {
		env.Logger = log.Default()
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, env); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		env.Logger.Printf("[Seeder] done name=%s", s.Name())
	}
	return nil
}
