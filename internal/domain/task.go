package domain

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Task is the sole persisted entity: an opaque identifier and the text that
// was submitted for it. Text is stored exactly as given; empty text is valid.
type Task struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

// NewTask creates a Task with a freshly generated identifier.
// The identifier is assigned here, before the task reaches any store.
func NewTask(text string) *Task {
	return &Task{
		ID:   uuid.New(),
		Text: text,
	}
}

// ParseTaskID parses an identifier received from a client.
// Returns an error wrapping ErrInvalidID when raw is not a well-formed id.
func ParseTaskID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}
