package usecase

import (
	"context"
	"log"
	"time"

	"talentboard/internal/domain/content"
	"talentboard/internal/domain/profile"
	"talentboard/internal/infrastructure/identity"
	"talentboard/internal/infrastructure/metrics"

	"github.com/google/uuid"
)

// Content serves one record kind: employer-gated creation and public reads.
type Content[T content.Record, I content.Input[T]] struct {
	kind    string
	gate    *Gate
	repo    content.Repository[T]
	metrics *metrics.Metrics
	logger  *log.Logger

	newID func() string
	now   func() time.Time
}

func NewContentUsecase[T content.Record, I content.Input[T]](
	kind string,
	gate *Gate,
	repo content.Repository[T],
	m *metrics.Metrics,
	logger *log.Logger,
) *Content[T, I] {
	if logger == nil {
		logger = log.Default()
	}
	return &Content[T, I]{
		kind:    kind,
		gate:    gate,
		repo:    repo,
		metrics: m,
		logger:  logger,
		newID:   uuid.NewString,
		now:     time.Now,
	}
}

type (
	Projects = Content[content.Project, content.ProjectInput]
	Posts    = Content[content.Post, content.PostInput]
)

func NewProjectsUsecase(gate *Gate, repo content.Repository[content.Project], m *metrics.Metrics, logger *log.Logger) *Projects {
	return NewContentUsecase[content.Project, content.ProjectInput](content.Projects.Kind, gate, repo, m, logger)
}

func NewPostsUsecase(gate *Gate, repo content.Repository[content.Post], m *metrics.Metrics, logger *log.Logger) *Posts {
	return NewContentUsecase[content.Post, content.PostInput](content.Posts.Kind, gate, repo, m, logger)
}

func (u *Content[T, I]) Create(ctx context.Context, who identity.Identity, in I) (T, error) {
	author, err := u.Authorize(ctx, who)
	if err != nil {
		var zero T
		return zero, err
	}
	return u.Publish(ctx, author, in)
}

// Authorize runs the employer gate on its own so callers can refuse a
// non-employer before reading the request body.
func (u *Content[T, I]) Authorize(ctx context.Context, who identity.Identity) (profile.UserProfile, error) {
	return u.gate.RequireEmployer(ctx, who)
}

// Publish stores a record authored by a profile that already passed
// Authorize.
func (u *Content[T, I]) Publish(ctx context.Context, author profile.UserProfile, in I) (T, error) {
	var zero T
	if err := in.Validate(); err != nil {
		return zero, err
	}

	rec := in.Build(u.newID(), author, u.now())
	if err := u.repo.Create(ctx, rec); err != nil {
		return zero, err
	}

	u.metrics.RecordCreated(u.kind)
	u.logger.Printf("[Content] created kind=%s id=%s author_id=%s", u.kind, rec.RecordID(), author.ID)
	return rec, nil
}

func (u *Content[T, I]) List(ctx context.Context) ([]T, error) {
	return u.repo.List(ctx)
}

func (u *Content[T, I]) Get(ctx context.Context, id string) (T, error) {
	return u.repo.Get(ctx, id)
}
