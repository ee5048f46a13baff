package tasks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ikratov/taskkeeper/internal/common"
)

// Service applies input validation on top of the repository. The userID
// argument on every method is the identity resolved by the HTTP middleware;
// there is no way to call into storage without it.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]*Task, error) {
	tasks, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing tasks: %v", common.ErrorInternal, err)
	}
	return tasks, nil
}

func (s *Service) Create(ctx context.Context, userID, title string, completed bool) (*Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, common.ErrValidation
	}

	task := &Task{ID: uuid.NewString(), UserID: userID, Title: title, Completed: completed}
	task, err := s.repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("%w: creating task: %v", common.ErrorInternal, err)
	}
	return task, nil
}

func (s *Service) Update(ctx context.Context, userID, id string, title *string, completed *bool) (*Task, error) {
	// A syntactically invalid id cannot match any task; reject it before
	// it reaches the uuid column.
	if uuid.Validate(id) != nil {
		return nil, common.ErrorNotFound
	}

	if title != nil {
		trimmed := strings.TrimSpace(*title)
		if trimmed == "" {
			return nil, common.ErrValidation
		}
		title = &trimmed
	}

	task, err := s.repo.Update(ctx, userID, id, title, completed)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: updating task: %v", common.ErrorInternal, err)
	}
	return task, nil
}

func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if uuid.Validate(id) != nil {
		return common.ErrorNotFound
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: deleting task: %v", common.ErrorInternal, err)
	}
	return nil
}
