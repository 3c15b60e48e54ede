package feature

import (
	"time"

	"github.com/nhle/todo-mock-api/internal/apperr"
	"github.com/nhle/todo-mock-api/internal/model"
)

// PartialTask carries the mutable fields of a task update. A nil field was
// absent from the request and keeps its stored value; there is no way to
// clear a detail once set.
type PartialTask struct {
	Title  *string
	Detail *string
}

// findTask returns the index of the task with the given id owned by user,
// or -1. Ownership is part of the lookup: another user's task is
// indistinguishable from a missing one.
func findTask(state *model.GlobalState, user model.UserState, id string) int {
	for i, t := range state.Tasks {
		if t.ID == id && t.UserID == user.ID {
			return i
		}
	}
	return -1
}

// AddTask creates a task owned by user. The id is a digest of the owner
// and the creation instant; is_complete starts false.
func AddTask(state *model.GlobalState, user model.UserState, title string, detail *string) (*model.GlobalState, model.Task) {
	now := time.Now().UTC()
	createdAt := now.Format(time.RFC3339)

	task := model.TaskState{
		Task: model.Task{
			// The digest input keeps nanosecond precision so back-to-back
			// creates by the same user never collide; created_at itself
			// stays second-precision on the wire.
			ID:         model.DeriveID(user.ID, now.Format(time.RFC3339Nano)),
			Title:      title,
			Detail:     detail,
			IsComplete: false,
			CreatedAt:  createdAt,
		},
		UserID: user.ID,
	}

	next := state.Clone()
	next.Tasks = append(next.Tasks, task)
	return next, task.Task
}

// GetTasks returns the caller's tasks in creation order, projected to the
// public shape. Always returns a non-nil slice so the response serializes
// as a JSON array.
func GetTasks(state *model.GlobalState, user model.UserState) []model.Task {
	tasks := []model.Task{}
	for _, t := range state.Tasks {
		if t.UserID == user.ID {
			tasks = append(tasks, t.Task)
		}
	}
	return tasks
}

// GetTask returns the caller's task with the given id.
func GetTask(state *model.GlobalState, user model.UserState, id string) (model.Task, error) {
	i := findTask(state, user, id)
	if i < 0 {
		return model.Task{}, apperr.Newf(apperr.CodeTaskNotFound, "task %q not found", id)
	}
	return state.Tasks[i].Task, nil
}

// UpdateTask overwrites the fields present in the partial and leaves the
// rest untouched.
func UpdateTask(state *model.GlobalState, user model.UserState, id string, partial PartialTask) (*model.GlobalState, model.Task, error) {
	i := findTask(state, user, id)
	if i < 0 {
		return nil, model.Task{}, apperr.Newf(apperr.CodeTaskNotFound, "task %q not found", id)
	}

	next := state.Clone()
	if partial.Title != nil {
		next.Tasks[i].Title = *partial.Title
	}
	if partial.Detail != nil {
		next.Tasks[i].Detail = partial.Detail
	}
	return next, next.Tasks[i].Task, nil
}

// UpdateTaskCompletion sets is_complete unconditionally. The completion
// endpoints differ only in the boolean they pass.
func UpdateTaskCompletion(state *model.GlobalState, user model.UserState, id string, isComplete bool) (*model.GlobalState, model.Task, error) {
	i := findTask(state, user, id)
	if i < 0 {
		return nil, model.Task{}, apperr.Newf(apperr.CodeTaskNotFound, "task %q not found", id)
	}

	next := state.Clone()
	next.Tasks[i].IsComplete = isComplete
	return next, next.Tasks[i].Task, nil
}

// DeleteTask removes the caller's task with the given id.
func DeleteTask(state *model.GlobalState, user model.UserState, id string) (*model.GlobalState, error) {
	i := findTask(state, user, id)
	if i < 0 {
		return nil, apperr.Newf(apperr.CodeTaskNotFound, "task %q not found", id)
	}

	next := state.Clone()
	next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
	return next, nil
}
