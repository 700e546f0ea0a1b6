package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type patientRow struct{ model.Patient }

func (r *patientRow) created() time.Time { return r.CreatedAt }
func (r *patientRow) key() uuid.UUID     { return r.ID }

func (r *patientRow) value() *model.Patient {
	p := copyPatient(r.Patient)
	return &p
}

func copyPatient(p model.Patient) model.Patient {
	if p.AgeInYears != nil {
		v := *p.AgeInYears
		p.AgeInYears = &v
	}
	if p.AgeInMonths != nil {
		v := *p.AgeInMonths
		p.AgeInMonths = &v
	}
	return p
}

type PatientRepository struct {
	db *db
}

func (r *PatientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.patients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row.value(), nil
}

func (r *PatientRepository) FindFirst(ctx context.Context, match model.PatientMatch) (*model.Patient, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.sorted() {
		if row.ID == match.ExcludeID {
			continue
		}
		if (match.Name != "" && row.Name == match.Name) ||
			(match.Phone != "" && row.Phone == match.Phone) {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PatientRepository) List(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	patients := make([]*model.Patient, 0, len(r.db.patients))
	for _, row := range r.sorted() {
		if filter.Sex != "" && row.Sex != filter.Sex {
			continue
		}
		patients = append(patients, row.value())
	}
	return patients, nil
}

func (r *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.patients[patient.ID]; ok {
		return conflict("id")
	}
	if err := r.checkUnique(patient); err != nil {
		return err
	}
	r.db.patients[patient.ID] = &patientRow{Patient: copyPatient(*patient)}
	return nil
}

func (r *PatientRepository) Update(ctx context.Context, patient *model.Patient) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.patients[patient.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.checkUnique(patient); err != nil {
		return err
	}
	r.db.patients[patient.ID] = &patientRow{Patient: copyPatient(*patient)}
	return nil
}

func (r *PatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.patients[id]; !ok {
		return repository.ErrNotFound
	}
	for _, hc := range r.db.healthChecks {
		if hc.PatientID == id {
			return inUse("patientId")
		}
	}
	for _, p := range r.db.prescriptions {
		if p.PatientID == id {
			return inUse("patientId")
		}
	}
	for _, p := range r.db.payments {
		if p.PatientID == id {
			return inUse("patientId")
		}
	}
	delete(r.db.patients, id)
	return nil
}

func (r *PatientRepository) checkUnique(patient *model.Patient) error {
	for id, row := range r.db.patients {
		if id == patient.ID {
			continue
		}
		switch {
		case row.Name == patient.Name:
			return conflict("name")
		case row.Phone == patient.Phone:
			return conflict("phone")
		}
	}
	return nil
}

func (r *PatientRepository) sorted() []*patientRow {
	rows := make([]*patientRow, 0, len(r.db.patients))
	for _, row := range r.db.patients {
		rows = append(rows, row)
	}
	sortByCreated(rows)
	return rows
}
