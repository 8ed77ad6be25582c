// Package users stores user accounts. Implementations exist for Postgres,
// MongoDB and process memory; all report a missing user as
// common.ErrorNotFound and a duplicate email as common.ErrorAlreadyExists.
package users

import (
	"context"

	"github.com/dmitrijs2005/feedbackhub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// ListByManager returns users whose manager reference is managerID,
	// restricted to role unless role is empty.
	ListByManager(ctx context.Context, managerID string, role models.Role) ([]*models.User, error)
}
