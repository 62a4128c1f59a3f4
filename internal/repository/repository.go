package repository

import (
	"context"
	"errors"

	"goaltracker/internal/domain"
)

// ErrNotFound is returned when a lookup matches no record, regardless of
// the backing store.
var ErrNotFound = errors.New("record not found")

// UserRepository persists credential records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// GoalRepository persists goal records.
type GoalRepository interface {
	Create(ctx context.Context, goal *domain.Goal) error
	FindByID(ctx context.Context, id uint) (*domain.Goal, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Goal, error)
	Save(ctx context.Context, goal *domain.Goal) error
	Delete(ctx context.Context, id uint) error
}
