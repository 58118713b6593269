package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

const selectThread = `
SELECT id, title, content, created_at, user_id, category_id
FROM threads`

type ThreadRepository struct {
	db *sql.DB
}

func NewThreadRepository(db *sql.DB) repository.ThreadRepository {
	return &ThreadRepository{db: db}
}

func (r *ThreadRepository) Create(ctx context.Context, thread *domain.Thread) (int64, error) {
	thread.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO threads (title, content, created_at, user_id, category_id)
VALUES (?, ?, ?, ?, ?)`,
		thread.Title,
		thread.Content,
		thread.CreatedAt,
		thread.UserID,
		thread.CategoryID,
	)
	if err != nil {
		return 0, translate(err, "insert thread")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("thread last insert id: %w", err)
	}
	thread.ID = id
	return id, nil
}

// Update rewrites title, content and category; created_at and the author are left untouched.
func (r *ThreadRepository) Update(ctx context.Context, thread *domain.Thread) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE threads
SET title=?, content=?, category_id=?
WHERE id=?`,
		thread.Title,
		thread.Content,
		thread.CategoryID,
		thread.ID,
	)
	if err != nil {
		return translate(err, "update thread")
	}
	return affectedOne(res, "update thread")
}

func (r *ThreadRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE thread_id=?`, id); err != nil {
		return translate(err, "delete thread comments")
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM threads WHERE id=?`, id)
	if err != nil {
		return translate(err, "delete thread")
	}
	if err := affectedOne(res, "delete thread"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit thread delete: %w", err)
	}
	return nil
}

func (r *ThreadRepository) GetByID(ctx context.Context, id int64) (*domain.Thread, error) {
	row := r.db.QueryRowContext(ctx, selectThread+`
WHERE id=?`, id)
	return scanThread(row)
}

func (r *ThreadRepository) ListNewest(ctx context.Context) ([]domain.Thread, error) {
	return r.list(ctx, selectThread+`
ORDER BY created_at DESC, id DESC`)
}

func (r *ThreadRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Thread, error) {
	return r.list(ctx, selectThread+`
WHERE user_id=?
ORDER BY created_at DESC, id DESC`, userID)
}

func (r *ThreadRepository) list(ctx context.Context, query string, args ...any) ([]domain.Thread, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query threads: %w", err)
	}
	defer rows.Close()

	threads := []domain.Thread{}
	for rows.Next() {
		thread, err := scanThread(rows)
		if err != nil {
			return nil, err
		}
		threads = append(threads, *thread)
	}
	return threads, rows.Err()
}

func scanThread(scanner interface {
	Scan(dest ...any) error
}) (*domain.Thread, error) {
	var thread domain.Thread
	if err := scanner.Scan(
		&thread.ID,
		&thread.Title,
		&thread.Content,
		&thread.CreatedAt,
		&thread.UserID,
		&thread.CategoryID,
	); err != nil {
		return nil, translate(err, "scan thread")
	}
	return &thread, nil
}
