package seeder

import (
	"context"
	"log"

	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/usecase"
)

// Env is shared by the seeders of one run. Seeders go through the use
// cases, so seeded data obeys the same rules as API writes.
type Env struct {
	Auth     *usecase.Auth
	Projects *usecase.Projects
	Posts    *usecase.Posts
	Logger   *log.Logger

	// Employer is set by EmployerSeeder and used as the author of seeded
	// content.
	Employer identity.Identity
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, env *Env) error
}
