// Package feedback stores feedback records. Lists are ordered newest first;
// a limit <= 0 means no limit.
package feedback

import (
	"context"
	"time"

	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
)

type Repository interface {
	// CreateForTeam inserts fb only if fb.EmployeeID exists and its manager
	// reference is fb.ManagerID, otherwise it returns common.ErrorNotFound.
	CreateForTeam(ctx context.Context, fb *models.Feedback) (*models.Feedback, error)
	GetByID(ctx context.Context, id string) (*models.Feedback, error)
	ListByEmployee(ctx context.Context, employeeID string, limit int) ([]*models.Feedback, error)
	ListByManager(ctx context.Context, managerID string, limit int) ([]*models.Feedback, error)
	Update(ctx context.Context, id string, patch models.FeedbackPatch, updatedAt time.Time) error
	Acknowledge(ctx context.Context, id string) error
}
