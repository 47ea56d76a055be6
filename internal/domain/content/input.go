package content

import (
	"fmt"
	"strings"
	"time"

	"talentboard/internal/domain/profile"
)

// Input is a client payload for one record kind: it validates itself and
// builds the stored record once an id, author and timestamp are known.
type Input[T Record] interface {
	Validate() error
	Build(id string, author profile.UserProfile, at time.Time) T
}

type ProjectInput struct {
	Title       string
	Description string
	Budget      string
	Deadline    string
	Skills      []string
}

func (in ProjectInput) Validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingField, strings.Join(missing, ", "))
	}
	return nil
}

func (in ProjectInput) Build(id string, author profile.UserProfile, at time.Time) Project {
	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		skills = append(skills, s)
	}

	return Project{
		ID:           id,
		Title:        in.Title,
		Description:  in.Description,
		Budget:       strings.TrimSpace(in.Budget),
		Deadline:     strings.TrimSpace(in.Deadline),
		Skills:       skills,
		EmployerID:   author.ID,
		EmployerName: author.Name,
		Status:       StatusOpen,
		CreatedAt:    at.UTC(),
	}
}

type PostInput struct {
	Content string
}

func (in PostInput) Validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return fmt.Errorf("%w: content", ErrMissingField)
	}
	return nil
}

func (in PostInput) Build(id string, author profile.UserProfile, at time.Time) Post {
	return Post{
		ID:         id,
		Content:    in.Content,
		AuthorID:   author.ID,
		AuthorName: author.Name,
		CreatedAt:  at.UTC(),
	}
}

var (
	_ Input[Project] = ProjectInput{}
	_ Input[Post]    = PostInput{}
)
