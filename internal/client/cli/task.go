package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ikratov/taskkeeper/internal/common"
)

// List prints the user's tasks, newest first (server ordering).
func (a *App) List(ctx context.Context) error {
	tasks, err := a.api.ListTasks(ctx)
	if err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	for _, t := range tasks {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		fmt.Printf("[%s] %s  %s\n", mark, t.ID, t.Title)
	}
	return nil
}

// Add creates a task with the given title words.
func (a *App) Add(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		fmt.Println("Usage: add <title>")
		return nil
	}

	task, err := a.api.CreateTask(ctx, title)
	if err != nil {
		return err
	}

	fmt.Printf("Added %s\n", task.ID)
	return nil
}

// Done marks a task as completed.
func (a *App) Done(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: done <id>")
		return nil
	}

	if _, err := a.api.CompleteTask(ctx, args[0]); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No such task.")
			return nil
		}
		return err
	}

	fmt.Println("Done!")
	return nil
}

// Delete removes a task.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Println("Usage: rm <id>")
		return nil
	}

	if err := a.api.DeleteTask(ctx, args[0]); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Println("No such task.")
			return nil
		}
		return err
	}

	fmt.Println("Deleted.")
	return nil
}
