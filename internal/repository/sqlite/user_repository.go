package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

const selectUser = `
SELECT id, username, email, password, created_at
FROM users`

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	user.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO users (username, email, password, created_at)
VALUES (?, ?, ?, ?)`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		return 0, translate(err, "insert user")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("user last insert id: %w", err)
	}
	user.ID = id
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users
SET username=?, email=?, password=?
WHERE id=?`,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.ID,
	)
	if err != nil {
		return translate(err, "update user")
	}
	return affectedOne(res, "update user")
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id=?`, id)
	if err != nil {
		return translate(err, "delete user")
	}
	return affectedOne(res, "delete user")
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+`
WHERE username = ?`,
		username,
	)
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, selectUser+`
WHERE id = ?`,
		id,
	)
	return scanUser(row)
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, selectUser+`
ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// ListByIDs returns the users with the given ids; unknown ids are skipped.
func (r *UserRepository) ListByIDs(ctx context.Context, ids ...int64) ([]domain.User, error) {
	users := []domain.User{}
	err := forEachIDBatch(ids, func(placeholders string, args []any) error {
		rows, err := r.db.QueryContext(ctx, selectUser+`
WHERE id IN (`+placeholders+`)`, args...)
		if err != nil {
			return fmt.Errorf("query users: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			user, err := scanUser(rows)
			if err != nil {
				return err
			}
			users = append(users, *user)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CountOwned(ctx context.Context, id int64) (int, int, error) {
	var threads, comments int
	err := r.db.QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM threads WHERE user_id = ?),
	(SELECT COUNT(*) FROM comments WHERE user_id = ?)`,
		id, id,
	).Scan(&threads, &comments)
	if err != nil {
		return 0, 0, fmt.Errorf("count owned rows: %w", err)
	}
	return threads, comments, nil
}

func scanUser(row interface {
	Scan(dest ...any) error
}) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, translate(err, "scan user")
	}
	return &user, nil
}
