package sqlite

import (
	"cmp"
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

const selectComment = `
SELECT id, content, created_at, user_id, thread_id
FROM comments`

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	comment.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO comments (content, created_at, user_id, thread_id)
VALUES (?, ?, ?, ?)`,
		comment.Content,
		comment.CreatedAt,
		comment.UserID,
		comment.ThreadID,
	)
	if err != nil {
		return 0, translate(err, "insert comment")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment last insert id: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET content=? WHERE id=?`, comment.Content, comment.ID)
	if err != nil {
		return translate(err, "update comment")
	}
	return affectedOne(res, "update comment")
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id=?`, id)
	if err != nil {
		return translate(err, "delete comment")
	}
	return affectedOne(res, "delete comment")
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, selectComment+`
WHERE id=?`, id)
	return scanComment(row)
}

func (r *CommentRepository) ListByThreads(ctx context.Context, threadIDs ...int64) ([]domain.Comment, error) {
	comments := []domain.Comment{}
	err := forEachIDBatch(threadIDs, func(placeholders string, args []any) error {
		rows, err := r.db.QueryContext(ctx, fmt.Sprintf(selectComment+`
WHERE thread_id IN (%s)`, placeholders), args...)
		if err != nil {
			return fmt.Errorf("query comments: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			comment, err := scanComment(rows)
			if err != nil {
				return err
			}
			comments = append(comments, *comment)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	slices.SortFunc(comments, func(a, b domain.Comment) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return comments, nil
}

func scanComment(scanner interface {
	Scan(dest ...any) error
}) (*domain.Comment, error) {
	var comment domain.Comment
	if err := scanner.Scan(
		&comment.ID,
		&comment.Content,
		&comment.CreatedAt,
		&comment.UserID,
		&comment.ThreadID,
	); err != nil {
		return nil, translate(err, "scan comment")
	}
	return &comment, nil
}
