package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrConflict  = errors.New("unique constraint violated")
	ErrReference = errors.New("referenced record does not exist")
	ErrInUse     = errors.New("record is still referenced")
)

// ConstraintError is a storage constraint failure tagged with the json names of the fields involved
type ConstraintError struct {
	Kind   error
	Fields []string
	Err    error
}

func (e *ConstraintError) Error() string {
	msg := e.Kind.Error()
	if len(e.Fields) > 0 {
		msg = fmt.Sprintf("%s: %s", msg, strings.Join(e.Fields, ", "))
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *ConstraintError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

type (
	UserRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.User, error)
		GetByEmail(ctx context.Context, email string) (*model.User, error)
		FindFirst(ctx context.Context, match model.UserMatch) (*model.User, error)
		List(ctx context.Context, filter model.UserFilter) ([]*model.User, error)
		Create(ctx context.Context, user *model.User) error
		Update(ctx context.Context, user *model.User) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PatientRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
		FindFirst(ctx context.Context, match model.PatientMatch) (*model.Patient, error)
		List(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error)
		Create(ctx context.Context, patient *model.Patient) error
		Update(ctx context.Context, patient *model.Patient) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	CategoryRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Category, error)
		FindFirst(ctx context.Context, match model.NameMatch) (*model.Category, error)
		List(ctx context.Context) ([]*model.Category, error)
		Create(ctx context.Context, category *model.Category) error
		Update(ctx context.Context, category *model.Category) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	MedicineRepository interface {
		Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Medicine, error)
		FindFirst(ctx context.Context, match model.NameMatch) (*model.Medicine, error)
		List(ctx context.Context, filter model.MedicineFilter, include ...model.Relation) ([]*model.Medicine, error)
		Create(ctx context.Context, medicine *model.Medicine) error
		Update(ctx context.Context, medicine *model.Medicine) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	DiseaseRepository interface {
		Get(ctx context.Context, id uuid.UUID) (*model.Disease, error)
		GetMany(ctx context.Context, ids []uuid.UUID) ([]*model.Disease, error)
		FindFirst(ctx context.Context, match model.NameMatch) (*model.Disease, error)
		List(ctx context.Context) ([]*model.Disease, error)
		Create(ctx context.Context, disease *model.Disease) error
		Update(ctx context.Context, disease *model.Disease) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	// HealthCheckRepository writes a health check and its disease links atomically
	HealthCheckRepository interface {
		Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.HealthCheck, error)
		List(ctx context.Context, filter model.HealthCheckFilter, include ...model.Relation) ([]*model.HealthCheck, error)
		Create(ctx context.Context, hc *model.HealthCheck) error
		Update(ctx context.Context, hc *model.HealthCheck) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PrescriptionRepository interface {
		Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Prescription, error)
		List(ctx context.Context, filter model.PrescriptionFilter, include ...model.Relation) ([]*model.Prescription, error)
		Create(ctx context.Context, prescription *model.Prescription) error
		Update(ctx context.Context, prescription *model.Prescription) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PrescriptionMedicineRepository interface {
		Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.PrescriptionMedicine, error)
		FindFirst(ctx context.Context, match model.PrescriptionMedicineMatch) (*model.PrescriptionMedicine, error)
		List(ctx context.Context, filter model.PrescriptionMedicineFilter, include ...model.Relation) ([]*model.PrescriptionMedicine, error)
		Create(ctx context.Context, item *model.PrescriptionMedicine) error
		Update(ctx context.Context, item *model.PrescriptionMedicine) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	PaymentRepository interface {
		Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Payment, error)
		FindFirst(ctx context.Context, match model.PaymentMatch) (*model.Payment, error)
		List(ctx context.Context, filter model.PaymentFilter, include ...model.Relation) ([]*model.Payment, error)
		Create(ctx context.Context, payment *model.Payment) error
		Update(ctx context.Context, payment *model.Payment) error
		Delete(ctx context.Context, id uuid.UUID) error
	}

	Pinger interface {
		Ping(ctx context.Context) error
	}
)

// Store bundles every repository behind one injected handle
type Store struct {
	Users                 UserRepository
	Patients              PatientRepository
	Categories            CategoryRepository
	Medicines             MedicineRepository
	Diseases              DiseaseRepository
	HealthChecks          HealthCheckRepository
	Prescriptions         PrescriptionRepository
	PrescriptionMedicines PrescriptionMedicineRepository
	Payments              PaymentRepository
	Health                Pinger
}
