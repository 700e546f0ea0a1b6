package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const healthCheckColumns = `id, patient_id, lab_doctor_id, signs, created_at, updated_at`

// HealthCheckRepository keeps health_checks and health_check_diseases in step inside one transaction
type HealthCheckRepository struct {
	BaseRepository
}

func NewHealthCheckRepository(db *sqlx.DB) *HealthCheckRepository {
	return &HealthCheckRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *HealthCheckRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.HealthCheck, error) {
	var hc model.HealthCheck
	if err := r.db.GetContext(ctx, &hc, `SELECT `+healthCheckColumns+` FROM health_checks WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	if err := r.attach(ctx, []*model.HealthCheck{&hc}, include); err != nil {
		return nil, err
	}
	return &hc, nil
}

func (r *HealthCheckRepository) List(ctx context.Context, filter model.HealthCheckFilter, include ...model.Relation) ([]*model.HealthCheck, error) {
	query := `SELECT ` + healthCheckColumns + ` FROM health_checks
		WHERE ($1::uuid IS NULL OR patient_id = $1)
		  AND ($2::uuid IS NULL OR lab_doctor_id = $2)
		ORDER BY created_at`
	checks := []*model.HealthCheck{}
	if err := r.db.SelectContext(ctx, &checks, query, filter.PatientID, filter.LabDoctorID); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, checks, include); err != nil {
		return nil, err
	}
	return checks, nil
}

func (r *HealthCheckRepository) Create(ctx context.Context, hc *model.HealthCheck) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO health_checks (id, patient_id, lab_doctor_id, signs, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`
		_, err := tx.ExecContext(ctx, query,
			hc.ID,
			hc.PatientID,
			hc.LabDoctorID,
			hc.Signs,
			hc.CreatedAt,
			hc.UpdatedAt,
		)
		if err != nil {
			return mapWriteError(err)
		}
		return insertDiseaseLinks(ctx, tx, hc.ID, hc.DiseaseIDs)
	})
}

// Update rewrites the row and replaces its disease links
func (r *HealthCheckRepository) Update(ctx context.Context, hc *model.HealthCheck) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			UPDATE health_checks
			SET patient_id = $1, lab_doctor_id = $2, signs = $3, updated_at = $4
			WHERE id = $5`
		if err := r.exec(ctx, tx, query, hc.PatientID, hc.LabDoctorID, hc.Signs, hc.UpdatedAt, hc.ID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM health_check_diseases WHERE health_check_id = $1`, hc.ID); err != nil {
			return err
		}
		return insertDiseaseLinks(ctx, tx, hc.ID, hc.DiseaseIDs)
	})
}

func (r *HealthCheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "health_checks", id)
}

func insertDiseaseLinks(ctx context.Context, tx *sqlx.Tx, healthCheckID uuid.UUID, diseaseIDs []uuid.UUID) error {
	for _, diseaseID := range diseaseIDs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO health_check_diseases (health_check_id, disease_id) VALUES ($1, $2)`,
			healthCheckID, diseaseID,
		)
		if err != nil {
			return mapWriteError(err)
		}
	}
	return nil
}

func (r *HealthCheckRepository) attach(ctx context.Context, checks []*model.HealthCheck, include []model.Relation) error {
	if len(checks) == 0 {
		return nil
	}
	var ids, patientIDs, doctorIDs []uuid.UUID
	for _, hc := range checks {
		ids = append(ids, hc.ID)
		patientIDs = append(patientIDs, hc.PatientID)
		doctorIDs = append(doctorIDs, hc.LabDoctorID)
	}

	links, err := loadDiseaseLinks(ctx, r.db, ids)
	if err != nil {
		return err
	}
	var diseaseIDs []uuid.UUID
	for _, hc := range checks {
		hc.DiseaseIDs = links[hc.ID]
		if hc.DiseaseIDs == nil {
			hc.DiseaseIDs = []uuid.UUID{}
		}
		diseaseIDs = append(diseaseIDs, hc.DiseaseIDs...)
	}

	if model.Includes(include, model.RelPatient) {
		patients, err := loadPatients(ctx, r.db, patientIDs)
		if err != nil {
			return err
		}
		for _, hc := range checks {
			hc.Patient = patients[hc.PatientID]
		}
	}
	if model.Includes(include, model.RelLabDoctor) {
		doctors, err := loadUsers(ctx, r.db, doctorIDs)
		if err != nil {
			return err
		}
		for _, hc := range checks {
			hc.LabDoctor = doctors[hc.LabDoctorID]
		}
	}
	if model.Includes(include, model.RelDiseases) {
		diseases, err := loadByID(ctx, r.db, "diseases", diseaseColumns, diseaseIDs, func(d *model.Disease) uuid.UUID { return d.ID })
		if err != nil {
			return err
		}
		for _, hc := range checks {
			hc.Diseases = make([]*model.Disease, 0, len(hc.DiseaseIDs))
			for _, id := range hc.DiseaseIDs {
				if d, ok := diseases[id]; ok {
					hc.Diseases = append(hc.Diseases, d)
				}
			}
		}
	}
	return nil
}
