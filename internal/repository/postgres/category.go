package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const categoryColumns = `id, name, created_at, updated_at`

type CategoryRepository struct {
	BaseRepository
}

func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *CategoryRepository) Get(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	var category model.Category
	if err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	return &category, nil
}

func (r *CategoryRepository) FindFirst(ctx context.Context, match model.NameMatch) (*model.Category, error) {
	var category model.Category
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE name = $1 AND id <> $2 LIMIT 1`
	if err := r.db.GetContext(ctx, &category, query, match.Name, match.ExcludeID); err != nil {
		return nil, mapGetError(err)
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	categories := []*model.Category{}
	if err := r.db.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at`); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (id, name, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		category.ID, category.Name, category.CreatedAt, category.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *CategoryRepository) Update(ctx context.Context, category *model.Category) error {
	return r.exec(ctx, r.db,
		`UPDATE categories SET name = $1, updated_at = $2 WHERE id = $3`,
		category.Name, category.UpdatedAt, category.ID,
	)
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "categories", id)
}
