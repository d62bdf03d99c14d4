package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitriy-lar/SocialNetworkAPI/types"
)

// CategoryRepository handles persistence for categories.
type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) List(ctx context.Context) ([]types.Category, error) {
	const query = `SELECT id, title FROM categories ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]types.Category, 0)
	for rows.Next() {
		var category types.Category
		if err := rows.Scan(&category.ID, &category.Title); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Get(ctx context.Context, id int) (types.Category, error) {
	const query = `SELECT id, title FROM categories WHERE id = $1`
	return scanCategory(r.db.QueryRowContext(ctx, query, id))
}

func (r *CategoryRepository) GetByTitle(ctx context.Context, title string) (types.Category, error) {
	const query = `SELECT id, title FROM categories WHERE title = $1`
	return scanCategory(r.db.QueryRowContext(ctx, query, title))
}

func (r *CategoryRepository) Create(ctx context.Context, category types.Category) (types.Category, error) {
	const query = `INSERT INTO categories (title) VALUES ($1) RETURNING id`
	if err := r.db.QueryRowContext(ctx, query, category.Title).Scan(&category.ID); err != nil {
		return types.Category{}, translate(err)
	}
	return category, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category types.Category) (types.Category, error) {
	const query = `UPDATE categories SET title = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, category.Title, category.ID)
	if err != nil {
		return types.Category{}, translate(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Category{}, err
	}
	if affected == 0 {
		return types.Category{}, ErrNotFound
	}
	return category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM categories WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanCategory(row rowScanner) (types.Category, error) {
	var category types.Category
	if err := row.Scan(&category.ID, &category.Title); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Category{}, ErrNotFound
		}
		return types.Category{}, err
	}
	return category, nil
}
