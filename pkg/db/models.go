package db

import "time"

// Status represents the state of a todo.
type Status string

// These constants are the statuses supported by the app.
const (
	StatusNotStarted    Status = "NOT_STARTED"
	StatusInProgress    Status = "IN_PROGRESS"
	StatusNotApplicable Status = "NOT_APPLICABLE"
	StatusWaiting       Status = "WAITING"
	StatusCompleted     Status = "COMPLETED"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusNotApplicable, StatusWaiting, StatusCompleted}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}

	return false
}

// Todo contains an individual todo entry and its associated tags from the todo_tag table.
type Todo struct {
	ID      string
	Content string
	Status  Status
	// DueDate has date precision only; nil means the todo has no due date.
	DueDate   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Tags      []*Tag
}

// TagNames returns the names of the todo's tags in tag-set order.
func (t *Todo) TagNames() []string {
	names := make([]string, 0, len(t.Tags))
	for _, tag := range t.Tags {
		names = append(names, tag.Name)
	}

	return names
}

// Tag is a uniquely-named label, many-to-many with todos.
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
