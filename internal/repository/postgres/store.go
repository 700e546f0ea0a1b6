package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/repository"
)

type pinger struct {
	db *sqlx.DB
}

func (p pinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// NewStore wires every postgres repository onto one connection pool
func NewStore(db *sqlx.DB) *repository.Store {
	return &repository.Store{
		Users:                 NewUserRepository(db),
		Patients:              NewPatientRepository(db),
		Categories:            NewCategoryRepository(db),
		Medicines:             NewMedicineRepository(db),
		Diseases:              NewDiseaseRepository(db),
		HealthChecks:          NewHealthCheckRepository(db),
		Prescriptions:         NewPrescriptionRepository(db),
		PrescriptionMedicines: NewPrescriptionMedicineRepository(db),
		Payments:              NewPaymentRepository(db),
		Health:                pinger{db: db},
	}
}
