package models

import "time"

// Kind values for a todo. Notes share the todos table with tasks; the
// completed column exists for them but the UI never flips it.
const (
	KindTask = "task"
	KindNote = "note"
)

// MaxTitleLength is the column bound on title, counted in runes after trimming.
const MaxTitleLength = 255

// Todo is the sole persisted entity: a task or note record.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeKind maps anything that is not a note to KindTask, mirroring the
// column default.
func NormalizeKind(kind string) string {
	if kind == KindNote {
		return KindNote
	}
	return KindTask
}
