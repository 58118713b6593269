package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"threadboard/internal/domain"
	"threadboard/internal/repository"
)

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (int64, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO categories (name) VALUES (?)`, category.Name)
	if err != nil {
		return 0, translate(err, "insert category")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category last insert id: %w", err)
	}
	category.ID = id
	return id, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM categories WHERE id=?`, id).
		Scan(&category.ID, &category.Name)
	if err != nil {
		return nil, translate(err, "get category")
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

// ListByIDs returns the categories with the given ids; unknown ids are skipped.
func (r *CategoryRepository) ListByIDs(ctx context.Context, ids ...int64) ([]domain.Category, error) {
	categories := []domain.Category{}
	err := forEachIDBatch(ids, func(placeholders string, args []any) error {
		rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM categories WHERE id IN (`+placeholders+`)`, args...)
		if err != nil {
			return fmt.Errorf("query categories: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			var category domain.Category
			if err := rows.Scan(&category.ID, &category.Name); err != nil {
				return fmt.Errorf("scan category: %w", err)
			}
			categories = append(categories, category)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}
