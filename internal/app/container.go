package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"talentboard/internal/config"
	"talentboard/internal/database"
	dbpostgres "talentboard/internal/database/postgres"
	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/infrastructure/kv"
	"talentboard/internal/infrastructure/metrics"
	"talentboard/internal/pkg/jwt"
	"talentboard/internal/repository"
	"talentboard/internal/usecase"
)

const connectTimeout = 10 * time.Second

// Container owns every long-lived dependency. Close releases them.
type Container struct {
	Config  config.Config
	Logger  *log.Logger
	Store   kv.Store
	DB      database.DB
	Metrics *metrics.Metrics

	Identity identity.Provider

	Auth     *usecase.Auth
	Profiles *usecase.Profiles
	Projects *usecase.Projects
	Posts    *usecase.Posts
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	c := &Container{Config: cfg, Logger: logger}
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New()
	}

	if err := c.openStore(ctx); err != nil {
		return nil, err
	}

	prov, err := newIdentity(cfg.Identity, c.Store, logger)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Identity = prov

	c.wire()
	return c, nil
}

// NewContainerWithStore wires the use cases over an already open store.
func NewContainerWithStore(cfg config.Config, store kv.Store, prov identity.Provider, logger *log.Logger) *Container {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger, Store: store, Identity: prov}
	if cfg.Metrics.Enabled {
		c.Metrics = metrics.New()
	}
	c.wire()
	return c
}

func (c *Container) openStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.Store.Backend {
	case config.BackendMemory, "":
		c.Store = kv.NewMemory()
	case config.BackendRedis:
		s, err := kv.NewRedis(ctx, cfg.Redis, cfg.Store.Namespace, c.Logger)
		if err != nil {
			return err
		}
		c.Store = s
	case config.BackendPostgres:
		db, err := dbpostgres.Connect(ctx, cfg.Database)
		if err != nil {
			return err
		}
		c.DB = db
		c.Store = kv.NewPostgres(db, c.Logger)
	default:
		return fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	c.Logger.Printf("[App] store ready backend=%s", cfg.Store.Backend)
	return nil
}

func newIdentity(cfg config.IdentityConfig, store kv.Store, logger *log.Logger) (identity.Provider, error) {
	switch cfg.Mode {
	case config.IdentityLocal, "":
		tokens := jwt.NewHMACService(cfg.JWTSecret, cfg.TokenTTL, "talentboard")
		return identity.NewLocal(store, tokens, logger), nil
	case config.IdentityGoTrue:
		return identity.NewGoTrue(identity.GoTrueConfig{
			BaseURL:        cfg.AuthURL,
			ServiceRoleKey: cfg.ServiceRoleKey,
			AnonKey:        cfg.AnonKey,
			JWTSecret:      cfg.JWTSecret,
		}, nil, logger), nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}

func (c *Container) wire() {
	profiles := repository.NewKVProfileRepository(c.Store)
	gate := usecase.NewGate(profiles)

	c.Auth = usecase.NewAuthUsecase(c.Identity, profiles, c.Metrics, c.Logger)
	c.Profiles = usecase.NewProfilesUsecase(profiles)
	c.Projects = usecase.NewProjectsUsecase(gate, repository.NewProjectRepository(c.Store), c.Metrics, c.Logger)
	c.Posts = usecase.NewPostsUsecase(gate, repository.NewPostRepository(c.Store), c.Metrics, c.Logger)
}

func (c *Container) Close() error {
	if c == nil || c.Store == nil {
		return nil
	}
	// The Postgres store closes the pool it wraps.
	return c.Store.Close()
}
