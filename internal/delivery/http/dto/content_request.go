package dto

import (
	"bytes"
	"encoding/json"

	"talentboard/internal/domain/content"
)

// LooseString accepts a JSON string or number. Clients send budgets both
// ways and they are stored as text.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = LooseString(n.String())
	return nil
}

type CreateProjectRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Budget      LooseString `json:"budget"`
	Deadline    string      `json:"deadline"`
	Skills      []string    `json:"skills"`
}

func (r CreateProjectRequest) Input() content.ProjectInput {
	return content.ProjectInput{
		Title:       r.Title,
		Description: r.Description,
		Budget:      string(r.Budget),
		Deadline:    r.Deadline,
		Skills:      r.Skills,
	}
}

type CreatePostRequest struct {
	Content string `json:"content"`
}

func (r CreatePostRequest) Input() content.PostInput {
	return content.PostInput{Content: r.Content}
}
