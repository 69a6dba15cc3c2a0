package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktrack/internal/common"
	"github.com/dmitrijs2005/tasktrack/internal/server/models"
	"github.com/dmitrijs2005/tasktrack/internal/server/repositories/repomanager"
)

// TaskService performs owner-scoped task CRUD. The ownerID argument of every
// method must come from a verified session token, never from client input;
// repositories additionally scope each statement by user_id, so a task is
// unreachable outside its owner's account.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewTaskService constructs a TaskService bound to the given pool and
// repository manager.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager) *TaskService {
	return &TaskService{db: db, repomanager: m}
}

// List returns all tasks owned by ownerID in store order.
func (s *TaskService) List(ctx context.Context, ownerID string) ([]*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	result, err := repo.ListByUser(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}
	return result, nil
}

// Create inserts a new task with completed=false and returns the created
// record including the assigned identifier.
func (s *TaskService) Create(ctx context.Context, ownerID string, title string, description string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	task := &models.Task{UserID: ownerID, Title: title, Description: description}
	created, err := repo.Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return created, nil
}

// Toggle flips the completion flag of (taskID, ownerID) atomically and
// returns the new value. Absent and foreign tasks both yield
// common.ErrorNotFound.
func (s *TaskService) Toggle(ctx context.Context, ownerID string, taskID string) (bool, error) {
	repo := s.repomanager.Tasks(s.db)
	completed, err := repo.ToggleCompleted(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("error toggling task: %w", err)
	}
	return completed, nil
}

// Delete removes (taskID, ownerID) and returns the deleted record. Absent
// and foreign tasks both yield common.ErrorNotFound.
func (s *TaskService) Delete(ctx context.Context, ownerID string, taskID string) (*models.Task, error) {
	repo := s.repomanager.Tasks(s.db)
	deleted, err := repo.Delete(ctx, ownerID, taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error deleting task: %w", err)
	}
	return deleted, nil
}
