package content

import (
	"errors"
	"testing"
	"time"

	"talentboard/internal/domain/profile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectInput_Validate(t *testing.T) {
	cases := []struct {
		name string
		in   ProjectInput
		ok   bool
	}{
		{name: "complete", in: ProjectInput{Title: "T", Description: "D"}, ok: true},
		{name: "missing title", in: ProjectInput{Description: "D"}},
		{name: "missing description", in: ProjectInput{Title: "T"}},
		{name: "whitespace only", in: ProjectInput{Title: "  ", Description: "\n"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, ErrMissingField))
		})
	}
}

func TestProjectInput_Build(t *testing.T) {
	author := profile.UserProfile{ID: "emp-1", Name: "Acme Hiring", Role: profile.RoleEmployer}
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	p := ProjectInput{
		Title:       "T",
		Description: "D",
		Budget:      " $5000 ",
		Skills:      []string{"Go", " ", "", "Postgres "},
	}.Build("p-1", author, at)

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "emp-1", p.EmployerID)
	assert.Equal(t, "Acme Hiring", p.EmployerName)
	assert.Equal(t, StatusOpen, p.Status)
	assert.Equal(t, "$5000", p.Budget)
	assert.Empty(t, p.Deadline)
	assert.Equal(t, []string{"Go", "Postgres"}, p.Skills)
	assert.Equal(t, time.UTC, p.CreatedAt.Location())
	assert.True(t, p.CreatedAt.Equal(at))
}

func TestProjectInput_BuildEmptySkills(t *testing.T) {
	p := ProjectInput{Title: "T", Description: "D"}.Build("p-1", profile.UserProfile{}, time.Now())
	require.NotNil(t, p.Skills)
	assert.Empty(t, p.Skills)
}

func TestPostInput(t *testing.T) {
	assert.True(t, errors.Is(PostInput{Content: " "}.Validate(), ErrMissingField))
	require.NoError(t, PostInput{Content: "Hiring!"}.Validate())

	author := profile.UserProfile{ID: "emp-1", Name: "Acme"}
	p := PostInput{Content: "Hiring!"}.Build("post-1", author, time.Now())
	assert.Equal(t, "post-1", p.RecordID())
	assert.Equal(t, "emp-1", p.AuthorID)
	assert.Equal(t, "Acme", p.AuthorName)
	assert.Equal(t, "Hiring!", p.Content)
}

func TestCollection_Key(t *testing.T) {
	assert.Equal(t, "project:abc", Projects.Key("abc"))
	assert.Equal(t, "posts:list", Posts.Index)
}
