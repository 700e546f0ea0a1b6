package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const prescriptionMedicineColumns = `id, prescription_id, medicine_id, dosage, duration, quantity, instructions, created_at, updated_at`

type PrescriptionMedicineRepository struct {
	BaseRepository
}

func NewPrescriptionMedicineRepository(db *sqlx.DB) *PrescriptionMedicineRepository {
	return &PrescriptionMedicineRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *PrescriptionMedicineRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.PrescriptionMedicine, error) {
	var item model.PrescriptionMedicine
	query := `SELECT ` + prescriptionMedicineColumns + ` FROM prescription_medicines WHERE id = $1`
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, mapGetError(err)
	}
	if err := r.attach(ctx, []*model.PrescriptionMedicine{&item}, include); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PrescriptionMedicineRepository) FindFirst(ctx context.Context, match model.PrescriptionMedicineMatch) (*model.PrescriptionMedicine, error) {
	var item model.PrescriptionMedicine
	query := `SELECT ` + prescriptionMedicineColumns + ` FROM prescription_medicines
		WHERE prescription_id = $1 AND medicine_id = $2 AND id <> $3
		LIMIT 1`
	if err := r.db.GetContext(ctx, &item, query, match.PrescriptionID, match.MedicineID, match.ExcludeID); err != nil {
		return nil, mapGetError(err)
	}
	return &item, nil
}

func (r *PrescriptionMedicineRepository) List(ctx context.Context, filter model.PrescriptionMedicineFilter, include ...model.Relation) ([]*model.PrescriptionMedicine, error) {
	query := `SELECT ` + prescriptionMedicineColumns + ` FROM prescription_medicines
		WHERE ($1::uuid IS NULL OR prescription_id = $1)
		  AND ($2::uuid IS NULL OR medicine_id = $2)
		ORDER BY created_at`
	items := []*model.PrescriptionMedicine{}
	if err := r.db.SelectContext(ctx, &items, query, filter.PrescriptionID, filter.MedicineID); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, items, include); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PrescriptionMedicineRepository) Create(ctx context.Context, item *model.PrescriptionMedicine) error {
	query := `
		INSERT INTO prescription_medicines
			(id, prescription_id, medicine_id, dosage, duration, quantity, instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.PrescriptionID,
		item.MedicineID,
		item.Dosage,
		item.Duration,
		item.Quantity,
		item.Instructions,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *PrescriptionMedicineRepository) Update(ctx context.Context, item *model.PrescriptionMedicine) error {
	query := `
		UPDATE prescription_medicines
		SET prescription_id = $1, medicine_id = $2, dosage = $3, duration = $4,
		    quantity = $5, instructions = $6, updated_at = $7
		WHERE id = $8`
	return r.exec(ctx, r.db, query,
		item.PrescriptionID,
		item.MedicineID,
		item.Dosage,
		item.Duration,
		item.Quantity,
		item.Instructions,
		item.UpdatedAt,
		item.ID,
	)
}

func (r *PrescriptionMedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "prescription_medicines", id)
}

func (r *PrescriptionMedicineRepository) attach(ctx context.Context, items []*model.PrescriptionMedicine, include []model.Relation) error {
	if len(items) == 0 {
		return nil
	}
	if model.Includes(include, model.RelPrescription) {
		ids := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.PrescriptionID)
		}
		prescriptions, err := loadPrescriptions(ctx, r.db, ids, model.RelPatient)
		if err != nil {
			return err
		}
		for _, it := range items {
			it.Prescription = prescriptions[it.PrescriptionID]
		}
	}
	if model.Includes(include, model.RelMedicine) {
		ids := make([]uuid.UUID, 0, len(items))
		for _, it := range items {
			ids = append(ids, it.MedicineID)
		}
		medicines, err := loadMedicines(ctx, r.db, ids, model.RelCategory)
		if err != nil {
			return err
		}
		for _, it := range items {
			it.Medicine = medicines[it.MedicineID]
		}
	}
	return nil
}
