package domain

import (
	"strings"
	"time"
)

// Field limits enforced at creation/edit time. Stored data that predates a
// limit change is accepted as-is.
const (
	TitleMaxLen       = 50
	DescriptionMaxLen = 200
)

// Task represents a single to-do item.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt"`
	IsCompleted bool       `json:"isCompleted"`
}

// MarkCompleted sets the completion flag and stamps CompletedAt.
func (t *Task) MarkCompleted(now time.Time) {
	t.IsCompleted = true
	t.CompletedAt = &now
}

// MarkPending clears the completion flag and CompletedAt together, keeping
// the invariant that CompletedAt is present iff IsCompleted.
func (t *Task) MarkPending() {
	t.IsCompleted = false
	t.CompletedAt = nil
}

// ValidateTaskFields checks title and description against the field limits
// and returns the trimmed title. The first failing field wins.
func ValidateTaskFields(title, description string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", NewValidationError("title", "title is required")
	}
	if len([]rune(trimmed)) > TitleMaxLen {
		return "", NewValidationError("title", "title must be 50 characters or less")
	}
	if len([]rune(description)) > DescriptionMaxLen {
		return "", NewValidationError("description", "description must be 200 characters or less")
	}
	return trimmed, nil
}

// Filter selects a subset of tasks for display.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Matches reports whether the task passes the filter. Unknown filters
// behave like FilterAll.
func (f Filter) Matches(t Task) bool {
	switch f {
	case FilterPending:
		return !t.IsCompleted
	case FilterCompleted:
		return t.IsCompleted
	default:
		return true
	}
}

// Counts aggregates the task list by completion status.
type Counts struct {
	All       int `json:"all"`
	Pending   int `json:"pending"`
	Completed int `json:"completed"`
}
