package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/zizouhuweidi/trivia/internal/domain"
)

// CategoryRepository implements the domain.CategoryRepository interface
type CategoryRepository struct {
	db DBTX
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db DBTX) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// List retrieves all categories ordered by id
func (r *CategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, type FROM categories ORDER BY id`)
	if err != nil {
		return nil, classify("category.list", err)
	}
	defer rows.Close()

	categories := []*domain.Category{}
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Type); err != nil {
			return nil, domain.E(domain.KindInternal, "category.list", fmt.Errorf("failed to scan category: %w", err))
		}
		categories = append(categories, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("category.list", err)
	}

	return categories, nil
}

// GetByID retrieves a category by its ID
func (r *CategoryRepository) GetByID(ctx context.Context, id int) (*domain.Category, error) {
	var c domain.Category
	err := r.db.QueryRow(ctx, `SELECT id, type FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.E(domain.KindNotFound, "category.get", domain.ErrCategoryNotFound)
		}
		return nil, classify("category.get", err)
	}
	return &c, nil
}
