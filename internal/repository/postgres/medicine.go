package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const medicineColumns = `id, name, description, category_id, types, stock, expiration, price, created_at, updated_at`

type MedicineRepository struct {
	BaseRepository
}

func NewMedicineRepository(db *sqlx.DB) *MedicineRepository {
	return &MedicineRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *MedicineRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Medicine, error) {
	var medicine model.Medicine
	if err := r.db.GetContext(ctx, &medicine, `SELECT `+medicineColumns+` FROM medicines WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	if err := attachMedicineRelations(ctx, r.db, []*model.Medicine{&medicine}, include); err != nil {
		return nil, err
	}
	return &medicine, nil
}

func (r *MedicineRepository) FindFirst(ctx context.Context, match model.NameMatch) (*model.Medicine, error) {
	var medicine model.Medicine
	query := `SELECT ` + medicineColumns + ` FROM medicines WHERE name = $1 AND id <> $2 LIMIT 1`
	if err := r.db.GetContext(ctx, &medicine, query, match.Name, match.ExcludeID); err != nil {
		return nil, mapGetError(err)
	}
	return &medicine, nil
}

func (r *MedicineRepository) List(ctx context.Context, filter model.MedicineFilter, include ...model.Relation) ([]*model.Medicine, error) {
	query := `SELECT ` + medicineColumns + ` FROM medicines
		WHERE ($1::uuid IS NULL OR category_id = $1)
		ORDER BY created_at`
	medicines := []*model.Medicine{}
	if err := r.db.SelectContext(ctx, &medicines, query, filter.CategoryID); err != nil {
		return nil, err
	}
	if err := attachMedicineRelations(ctx, r.db, medicines, include); err != nil {
		return nil, err
	}
	return medicines, nil
}

func (r *MedicineRepository) Create(ctx context.Context, medicine *model.Medicine) error {
	query := `
		INSERT INTO medicines (id, name, description, category_id, types, stock, expiration, price, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.db.ExecContext(ctx, query,
		medicine.ID,
		medicine.Name,
		medicine.Description,
		medicine.CategoryID,
		medicine.Types,
		medicine.Stock,
		medicine.Expiration,
		medicine.Price,
		medicine.CreatedAt,
		medicine.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *MedicineRepository) Update(ctx context.Context, medicine *model.Medicine) error {
	query := `
		UPDATE medicines
		SET name = $1, description = $2, category_id = $3, types = $4, stock = $5,
		    expiration = $6, price = $7, updated_at = $8
		WHERE id = $9`
	return r.exec(ctx, r.db, query,
		medicine.Name,
		medicine.Description,
		medicine.CategoryID,
		medicine.Types,
		medicine.Stock,
		medicine.Expiration,
		medicine.Price,
		medicine.UpdatedAt,
		medicine.ID,
	)
}

func (r *MedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "medicines", id)
}
