package seeder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"talentboard/internal/domain/content"

	"github.com/brianvoe/gofakeit/v6"
)

var skillPool = []string{
	"Go", "TypeScript", "React", "PostgreSQL", "Redis", "Docker",
	"Kubernetes", "AWS", "GCP", "Figma", "Product Design", "Copywriting",
}

var errNoEmployer = errors.New("no employer in seed env; run EmployerSeeder first")

type ProjectsSeeder struct {
	Count int
	Seed  int64
}

func (ProjectsSeeder) Name() string { return "projects" }

func (s ProjectsSeeder) Run(ctx context.Context, env *Env) error {
	if env.Employer.UserID == "" {
		return errNoEmployer
	}
	f := gofakeit.New(s.Seed)

	for i := 0; i < s.Count; i++ {
		in := content.ProjectInput{
			Title:       fmt.Sprintf("%s %s", f.JobDescriptor(), f.JobTitle()),
			Description: f.Paragraph(1, 3, 12, " "),
			Budget:      fmt.Sprintf("$%d", f.Number(5, 200)*100),
			Deadline:    f.DateRange(time.Now(), time.Now().AddDate(0, 6, 0)).Format("2006-01-02"),
			Skills:      pickSkills(f, 3),
		}
		if _, err := env.Projects.Create(ctx, env.Employer, in); err != nil {
			return err
		}
	}
	return nil
}

type PostsSeeder struct {
	Count int
	Seed  int64
}

func (PostsSeeder) Name() string { return "posts" }

func (s PostsSeeder) Run(ctx context.Context, env *Env) error {
	if env.Employer.UserID == "" {
		return errNoEmployer
	}
	f := gofakeit.New(s.Seed + 1)

	for i := 0; i < s.Count; i++ {
		in := content.PostInput{Content: f.Paragraph(1, 2, 15, " ")}
		if _, err := env.Posts.Create(ctx, env.Employer, in); err != nil {
			return err
		}
	}
	return nil
}

func pickSkills(f *gofakeit.Faker, n int) []string {
	seen := make(map[string]struct{}, n)
	out := make([]string, 0, n)
	for len(out) < n {
		s := f.RandomString(skillPool)
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
