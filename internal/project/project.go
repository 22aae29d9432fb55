// Package project defines the task board's unit of work.
package project

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status represents which list a project lives in.
type Status string

const (
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

// Valid reports whether s is one of the two defined statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusFinished
}

// Opposite returns the other status. Used by the keyboard move path.
func (s Status) Opposite() Status {
	if s == StatusActive {
		return StatusFinished
	}
	return StatusActive
}

// Project is a unit of work with a title, description, and headcount.
// Identity is ID; all fields except ID are mutated only through the
// registry's operations.
type Project struct {
	ID          string    `json:"id"`
	TitleText   string    `json:"title"`
	Description string    `json:"description"`
	People      int       `json:"people"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// New constructs a project with a freshly generated unique id and
// status Active. Callers validate inputs before constructing.
func New(title, description string, people int) Project {
	return Project{
		ID:          uuid.NewString(),
		TitleText:   title,
		Description: description,
		People:      people,
		Status:      StatusActive,
		CreatedAt:   time.Now(),
	}
}

// Title implements list.Item interface.
func (p Project) Title() string {
	return p.TitleText
}

// PeopleLabel returns the headcount suffix shown on cards.
func (p Project) PeopleLabel() string {
	if p.People == 1 {
		return "1 person"
	}
	return fmt.Sprintf("%d people", p.People)
}

// FilterValue implements list.Item for the bubbles list component.
func (p Project) FilterValue() string {
	return p.TitleText
}
