package repository

import (
	"context"

	"threadboard/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (int64, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id int64) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	// ListByIDs returns the users with the given ids in no particular order.
	ListByIDs(ctx context.Context, ids ...int64) ([]domain.User, error)
	// CountOwned reports how many threads and comments the user authored.
	CountOwned(ctx context.Context, id int64) (threads, comments int, err error)
}
