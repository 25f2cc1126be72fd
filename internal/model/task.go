package model

import "time"

// Task represents a single item in the planner.
type Task struct {
	// ID is a per-user monotonically increasing identifier, assigned at
	// load time and on creation, never serialized. Menus stay positional;
	// callbacks carry the id so a stale button resolves to "not found"
	// instead of hitting a neighbouring task.
	ID          int        `json:"-"`
	Title       string     `json:"title"`
	CreatedAt   time.Time  `json:"created"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Time        *string    `json:"time"`
	Category    *string    `json:"category"`
}

// CategoryName returns the category or empty string when the task has none.
func (t Task) CategoryName() string {
	if t.Category == nil {
		return ""
	}
	return *t.Category
}
