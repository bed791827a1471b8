package repository

import (
	"context"

	"github.com/google/uuid"

	"species-catalog/internal/domains/user/model"
)

// Repository persists user accounts
type Repository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}
