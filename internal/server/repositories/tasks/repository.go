package tasks

import (
	"context"

	"github.com/dmitrijs2005/tasktrack/internal/server/models"
)

type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Task, error)
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	ToggleCompleted(ctx context.Context, userID string, taskID string) (bool, error)
	Delete(ctx context.Context, userID string, taskID string) (*models.Task, error)
}
