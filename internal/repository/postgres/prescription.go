package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const prescriptionColumns = `id, patient_id, doctor_id, status, created_at, updated_at`

type PrescriptionRepository struct {
	BaseRepository
}

func NewPrescriptionRepository(db *sqlx.DB) *PrescriptionRepository {
	return &PrescriptionRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *PrescriptionRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Prescription, error) {
	var p model.Prescription
	if err := r.db.GetContext(ctx, &p, `SELECT `+prescriptionColumns+` FROM prescriptions WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	if err := attachPrescriptionRelations(ctx, r.db, []*model.Prescription{&p}, include); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PrescriptionRepository) List(ctx context.Context, filter model.PrescriptionFilter, include ...model.Relation) ([]*model.Prescription, error) {
	query := `SELECT ` + prescriptionColumns + ` FROM prescriptions
		WHERE ($1::uuid IS NULL OR patient_id = $1)
		  AND ($2::uuid IS NULL OR doctor_id = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at`
	prescriptions := []*model.Prescription{}
	if err := r.db.SelectContext(ctx, &prescriptions, query, filter.PatientID, filter.DoctorID, filter.Status); err != nil {
		return nil, err
	}
	if err := attachPrescriptionRelations(ctx, r.db, prescriptions, include); err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *PrescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (id, patient_id, doctor_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.PatientID, p.DoctorID, p.Status, p.CreatedAt, p.UpdatedAt)
	return mapWriteError(err)
}

func (r *PrescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET patient_id = $1, doctor_id = $2, status = $3, updated_at = $4
		WHERE id = $5`
	return r.exec(ctx, r.db, query, p.PatientID, p.DoctorID, p.Status, p.UpdatedAt, p.ID)
}

// Delete cascades to the prescription's line items and is blocked by a recorded payment
func (r *PrescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "prescriptions", id)
}
