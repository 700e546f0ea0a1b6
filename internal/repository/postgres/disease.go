package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const diseaseColumns = `id, name, description, signs_and_effects, created_at, updated_at`

type DiseaseRepository struct {
	BaseRepository
}

func NewDiseaseRepository(db *sqlx.DB) *DiseaseRepository {
	return &DiseaseRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *DiseaseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Disease, error) {
	var disease model.Disease
	if err := r.db.GetContext(ctx, &disease, `SELECT `+diseaseColumns+` FROM diseases WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	return &disease, nil
}

// GetMany returns the diseases that exist among ids; callers compare lengths to detect missing ones
func (r *DiseaseRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]*model.Disease, error) {
	diseases := []*model.Disease{}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return diseases, nil
	}
	if err := selectByIDs(ctx, r.db, &diseases, "diseases", diseaseColumns, ids); err != nil {
		return nil, err
	}
	return diseases, nil
}

func (r *DiseaseRepository) FindFirst(ctx context.Context, match model.NameMatch) (*model.Disease, error) {
	var disease model.Disease
	query := `SELECT ` + diseaseColumns + ` FROM diseases WHERE name = $1 AND id <> $2 LIMIT 1`
	if err := r.db.GetContext(ctx, &disease, query, match.Name, match.ExcludeID); err != nil {
		return nil, mapGetError(err)
	}
	return &disease, nil
}

func (r *DiseaseRepository) List(ctx context.Context) ([]*model.Disease, error) {
	diseases := []*model.Disease{}
	if err := r.db.SelectContext(ctx, &diseases, `SELECT `+diseaseColumns+` FROM diseases ORDER BY created_at`); err != nil {
		return nil, err
	}
	return diseases, nil
}

func (r *DiseaseRepository) Create(ctx context.Context, disease *model.Disease) error {
	query := `
		INSERT INTO diseases (id, name, description, signs_and_effects, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		disease.ID,
		disease.Name,
		disease.Description,
		disease.SignsAndEffects,
		disease.CreatedAt,
		disease.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *DiseaseRepository) Update(ctx context.Context, disease *model.Disease) error {
	query := `
		UPDATE diseases
		SET name = $1, description = $2, signs_and_effects = $3, updated_at = $4
		WHERE id = $5`
	return r.exec(ctx, r.db, query,
		disease.Name,
		disease.Description,
		disease.SignsAndEffects,
		disease.UpdatedAt,
		disease.ID,
	)
}

func (r *DiseaseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "diseases", id)
}
