// Package memory is a mutex-guarded, map-backed implementation of the
// repository interfaces. It enforces the same unique, foreign key and
// restrict-on-delete rules as the postgres schema.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-api/internal/repository"
)

type db struct {
	mu sync.RWMutex

	users                 map[uuid.UUID]*userRow
	patients              map[uuid.UUID]*patientRow
	categories            map[uuid.UUID]*categoryRow
	medicines             map[uuid.UUID]*medicineRow
	diseases              map[uuid.UUID]*diseaseRow
	healthChecks          map[uuid.UUID]*healthCheckRow
	healthCheckDiseases   map[uuid.UUID][]uuid.UUID
	prescriptions         map[uuid.UUID]*prescriptionRow
	prescriptionMedicines map[uuid.UUID]*prescriptionMedicineRow
	payments              map[uuid.UUID]*paymentRow
}

// NewStore returns a Store whose repositories share one in-memory database
func NewStore() *repository.Store {
	d := &db{
		users:                 make(map[uuid.UUID]*userRow),
		patients:              make(map[uuid.UUID]*patientRow),
		categories:            make(map[uuid.UUID]*categoryRow),
		medicines:             make(map[uuid.UUID]*medicineRow),
		diseases:              make(map[uuid.UUID]*diseaseRow),
		healthChecks:          make(map[uuid.UUID]*healthCheckRow),
		healthCheckDiseases:   make(map[uuid.UUID][]uuid.UUID),
		prescriptions:         make(map[uuid.UUID]*prescriptionRow),
		prescriptionMedicines: make(map[uuid.UUID]*prescriptionMedicineRow),
		payments:              make(map[uuid.UUID]*paymentRow),
	}

	return &repository.Store{
		Users:                 &UserRepository{db: d},
		Patients:              &PatientRepository{db: d},
		Categories:            &CategoryRepository{db: d},
		Medicines:             &MedicineRepository{db: d},
		Diseases:              &DiseaseRepository{db: d},
		HealthChecks:          &HealthCheckRepository{db: d},
		Prescriptions:         &PrescriptionRepository{db: d},
		PrescriptionMedicines: &PrescriptionMedicineRepository{db: d},
		Payments:              &PaymentRepository{db: d},
		Health:                d,
	}
}

func (d *db) Ping(ctx context.Context) error {
	return ctx.Err()
}

func conflict(fields ...string) error {
	return &repository.ConstraintError{Kind: repository.ErrConflict, Fields: fields}
}

func missingReference(fields ...string) error {
	return &repository.ConstraintError{Kind: repository.ErrReference, Fields: fields}
}

func inUse(fields ...string) error {
	return &repository.ConstraintError{Kind: repository.ErrInUse, Fields: fields}
}

func cloneStrings(s pq.StringArray) pq.StringArray {
	if s == nil {
		return nil
	}
	out := make(pq.StringArray, len(s))
	copy(out, s)
	return out
}

type timestamped interface {
	created() time.Time
	key() uuid.UUID
}

// sortByCreated orders rows oldest first, ties broken by id
func sortByCreated[T timestamped](rows []T) {
	sort.SliceStable(rows, func(i, j int) bool {
		ci, cj := rows[i].created(), rows[j].created()
		if ci.Equal(cj) {
			return rows[i].key().String() < rows[j].key().String()
		}
		return ci.Before(cj)
	})
}
