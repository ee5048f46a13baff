package tasks

import "context"

// Repository persists tasks. Update and Delete report
// common.ErrorNotFound both for an unknown ID and for a task owned by a
// different user, so existence of foreign tasks is never confirmed.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*Task, error)
	Create(ctx context.Context, task *Task) (*Task, error)
	Update(ctx context.Context, userID, id string, title *string, completed *bool) (*Task, error)
	Delete(ctx context.Context, userID, id string) error
}
