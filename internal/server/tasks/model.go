// Package tasks implements the per-user task list. Every repository and
// service call takes the owner's user ID as a mandatory parameter, so an
// unscoped query cannot be expressed at all.
package tasks

import "time"

type Task struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
