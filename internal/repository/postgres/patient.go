package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const patientColumns = `id, name, age_in_years, age_in_months, sex, phone, created_at, updated_at`

type PatientRepository struct {
	BaseRepository
}

func NewPatientRepository(db *sqlx.DB) *PatientRepository {
	return &PatientRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, `SELECT `+patientColumns+` FROM patients WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	return &patient, nil
}

func (r *PatientRepository) FindFirst(ctx context.Context, match model.PatientMatch) (*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients
		WHERE id <> $1 AND (($2 <> '' AND name = $2) OR ($3 <> '' AND phone = $3))
		ORDER BY created_at
		LIMIT 1`
	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, match.ExcludeID, match.Name, match.Phone); err != nil {
		return nil, mapGetError(err)
	}
	return &patient, nil
}

func (r *PatientRepository) List(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	query := `SELECT ` + patientColumns + ` FROM patients WHERE ($1 = '' OR sex = $1) ORDER BY created_at`
	patients := []*model.Patient{}
	if err := r.db.SelectContext(ctx, &patients, query, filter.Sex); err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, name, age_in_years, age_in_months, sex, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.Name,
		patient.AgeInYears,
		patient.AgeInMonths,
		patient.Sex,
		patient.Phone,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET name = $1, age_in_years = $2, age_in_months = $3, sex = $4, phone = $5, updated_at = $6
		WHERE id = $7`
	return r.exec(ctx, r.db, query,
		patient.Name,
		patient.AgeInYears,
		patient.AgeInMonths,
		patient.Sex,
		patient.Phone,
		patient.UpdatedAt,
		patient.ID,
	)
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "patients", id)
}
