package content

import "time"

const StatusOpen = "open"

// Record is anything stored in an append-ordered collection.
type Record interface {
	RecordID() string
}

// Collection names the key space of one record kind: records live under
// "{Kind}:{id}" and the newest-first id list under Index.
type Collection struct {
	Kind  string
	Index string
}

func (c Collection) Key(id string) string {
	return c.Kind + ":" + id
}

var (
	Projects = Collection{Kind: "project", Index: "projects:list"}
	Posts    = Collection{Kind: "post", Index: "posts:list"}
)

// Project.EmployerName is copied from the author's profile when the project
// is created and is not kept in sync afterwards.
type Project struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Budget       string    `json:"budget,omitempty"`
	Deadline     string    `json:"deadline,omitempty"`
	Skills       []string  `json:"skills"`
	EmployerID   string    `json:"employerId"`
	EmployerName string    `json:"employerName"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (p Project) RecordID() string { return p.ID }

type Post struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (p Post) RecordID() string { return p.ID }
