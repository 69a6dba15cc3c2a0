// Package tasks provides a PostgreSQL-backed repository for task rows.
// Every statement is scoped by user_id, so a task is never visible or
// mutable outside its owner's account.
package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tasktrack/internal/common"
	"github.com/dmitrijs2005/tasktrack/internal/dbx"
	"github.com/dmitrijs2005/tasktrack/internal/server/models"
)

// PostgresRepository implements task storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// ListByUser returns all tasks owned by userID in store order.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Task, error) {
	query :=
		`SELECT id, user_id, title, description, completed, created_at FROM tasks
		 WHERE user_id = $1
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Task
	for rows.Next() {
		var item models.Task
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.Title, &item.Description, &item.Completed, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Create inserts a task with completed=false and returns it with the
// assigned id and creation time.
func (r *PostgresRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (user_id, title, description)
		 VALUES ($1, $2, $3)
		 RETURNING id, completed, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		task.UserID, task.Title, task.Description).Scan(&task.ID, &task.Completed, &task.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

// ToggleCompleted flips the completion flag of the task identified by
// (taskID, userID) in a single statement and returns the new value.
// The atomic UPDATE ... RETURNING means two concurrent toggles always
// apply two flips instead of racing over a stale read. Zero matched rows
// (absent or foreign task) yield common.ErrorNotFound.
func (r *PostgresRepository) ToggleCompleted(ctx context.Context, userID string, taskID string) (bool, error) {
	query :=
		`UPDATE tasks SET completed = NOT completed
		 WHERE id = $1 AND user_id = $2
		 RETURNING completed
		 `

	var completed bool
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(&completed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, common.ErrorNotFound
		}
		return false, fmt.Errorf("db error: %w", err)
	}

	return completed, nil
}

// Delete removes the task identified by (taskID, userID) and returns the
// deleted row. Zero matched rows yield common.ErrorNotFound, which covers
// absent and foreign tasks alike.
func (r *PostgresRepository) Delete(ctx context.Context, userID string, taskID string) (*models.Task, error) {
	query :=
		`DELETE FROM tasks
		 WHERE id = $1 AND user_id = $2
		 RETURNING id, user_id, title, description, completed, created_at
		 `

	task := &models.Task{}
	err := r.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID, &task.UserID, &task.Title, &task.Description, &task.Completed, &task.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}
