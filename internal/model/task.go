package model

// Task is the public task shape returned by the API.
type Task struct {
	ID string `json:"id"`

	// Title is the human-readable summary of the task.
	Title string `json:"title"`

	// Detail is the optional body text. A nil pointer means the field was
	// never set; it is omitted from responses in that case.
	Detail *string `json:"detail,omitempty"`

	// IsComplete defaults to false at creation and is toggled only through
	// the dedicated completion endpoints.
	IsComplete bool `json:"is_complete"`

	// CreatedAt is an RFC 3339 timestamp assigned at creation, immutable.
	CreatedAt string `json:"created_at"`
}

// TaskState extends Task with the owning user. UserID is assigned from the
// authenticated caller at creation and never changes; it is stripped from
// every response.
type TaskState struct {
	Task
	UserID string `json:"userId"`
}

// Clone returns a deep copy of the task state.
func (t TaskState) Clone() TaskState {
	out := t
	if t.Detail != nil {
		detail := *t.Detail
		out.Detail = &detail
	}
	return out
}
