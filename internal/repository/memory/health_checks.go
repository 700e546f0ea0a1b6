package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type healthCheckRow struct{ model.HealthCheck }

func (r *healthCheckRow) created() time.Time { return r.CreatedAt }
func (r *healthCheckRow) key() uuid.UUID     { return r.ID }

func copyHealthCheck(hc model.HealthCheck) model.HealthCheck {
	hc.Signs = cloneStrings(hc.Signs)
	hc.DiseaseIDs = nil
	hc.Patient = nil
	hc.LabDoctor = nil
	hc.Diseases = nil
	return hc
}

type HealthCheckRepository struct {
	db *db
}

func (r *HealthCheckRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.HealthCheck, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.healthChecks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.db.loadHealthCheck(row, include), nil
}

func (r *HealthCheckRepository) List(ctx context.Context, filter model.HealthCheckFilter, include ...model.Relation) ([]*model.HealthCheck, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*healthCheckRow, 0, len(r.db.healthChecks))
	for _, row := range r.db.healthChecks {
		if filter.PatientID != nil && row.PatientID != *filter.PatientID {
			continue
		}
		if filter.LabDoctorID != nil && row.LabDoctorID != *filter.LabDoctorID {
			continue
		}
		rows = append(rows, row)
	}
	sortByCreated(rows)

	checks := make([]*model.HealthCheck, 0, len(rows))
	for _, row := range rows {
		checks = append(checks, r.db.loadHealthCheck(row, include))
	}
	return checks, nil
}

// Create validates the row and every link before writing any of them
func (r *HealthCheckRepository) Create(ctx context.Context, hc *model.HealthCheck) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.healthChecks[hc.ID]; ok {
		return conflict("id")
	}
	if err := r.check(hc); err != nil {
		return err
	}

	r.db.healthChecks[hc.ID] = &healthCheckRow{HealthCheck: copyHealthCheck(*hc)}
	r.db.healthCheckDiseases[hc.ID] = append([]uuid.UUID(nil), hc.DiseaseIDs...)
	return nil
}

// Update replaces the row and the full set of disease links
func (r *HealthCheckRepository) Update(ctx context.Context, hc *model.HealthCheck) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.healthChecks[hc.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.check(hc); err != nil {
		return err
	}

	r.db.healthChecks[hc.ID] = &healthCheckRow{HealthCheck: copyHealthCheck(*hc)}
	r.db.healthCheckDiseases[hc.ID] = append([]uuid.UUID(nil), hc.DiseaseIDs...)
	return nil
}

func (r *HealthCheckRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.healthChecks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.healthChecks, id)
	delete(r.db.healthCheckDiseases, id)
	return nil
}

func (r *HealthCheckRepository) check(hc *model.HealthCheck) error {
	if _, ok := r.db.patients[hc.PatientID]; !ok {
		return missingReference("patientId")
	}
	if _, ok := r.db.users[hc.LabDoctorID]; !ok {
		return missingReference("labDoctorId")
	}
	seen := make(map[uuid.UUID]struct{}, len(hc.DiseaseIDs))
	for _, id := range hc.DiseaseIDs {
		if _, ok := r.db.diseases[id]; !ok {
			return missingReference("diseases")
		}
		if _, dup := seen[id]; dup {
			return conflict("diseases")
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (d *db) loadHealthCheck(row *healthCheckRow, include []model.Relation) *model.HealthCheck {
	hc := copyHealthCheck(row.HealthCheck)
	hc.DiseaseIDs = append([]uuid.UUID{}, d.healthCheckDiseases[hc.ID]...)

	if model.Includes(include, model.RelPatient) {
		if p, ok := d.patients[hc.PatientID]; ok {
			hc.Patient = p.value()
		}
	}
	if model.Includes(include, model.RelLabDoctor) {
		if u, ok := d.users[hc.LabDoctorID]; ok {
			hc.LabDoctor = u.value()
		}
	}
	if model.Includes(include, model.RelDiseases) {
		hc.Diseases = make([]*model.Disease, 0, len(hc.DiseaseIDs))
		for _, id := range hc.DiseaseIDs {
			if dis, ok := d.diseases[id]; ok {
				hc.Diseases = append(hc.Diseases, dis.value())
			}
		}
	}
	return &hc
}

// LinkCount reports how many disease links a health check has
func (r *HealthCheckRepository) LinkCount(id uuid.UUID) int {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	return len(r.db.healthCheckDiseases[id])
}
