package repository

import (
	"context"

	"threadboard/internal/domain"
)

// CategoryRepository manages thread categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	ListByIDs(ctx context.Context, ids ...int64) ([]domain.Category, error)
}

// ThreadRepository manages discussion threads.
type ThreadRepository interface {
	Create(ctx context.Context, thread *domain.Thread) (int64, error)
	Update(ctx context.Context, thread *domain.Thread) error
	// Delete removes the thread together with its comments.
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Thread, error)
	// ListNewest returns threads ordered by descending created_at.
	ListNewest(ctx context.Context) ([]domain.Thread, error)
	ListByUser(ctx context.Context, userID int64) ([]domain.Thread, error)
}

// CommentRepository manages thread comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*domain.Comment, error)
	// ListByThreads returns the comments of the given threads, oldest first.
	ListByThreads(ctx context.Context, threadIDs ...int64) ([]domain.Comment, error)
}
