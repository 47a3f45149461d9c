package userRepo

import (
	"context"

	"github.com/Happyesss/careerlive---alpha/models"
)

// UserRepository provides access to user identities and roles.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail returns (nil, nil) when no user has the email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// ListByRole returns all users holding the given role, sorted by first
	// name.
	ListByRole(ctx context.Context, role string) ([]models.User, error)
}
