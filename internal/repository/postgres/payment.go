package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

const paymentColumns = `id, patient_id, prescription_id, amount, status, created_at, updated_at`

type PaymentRepository struct {
	BaseRepository
}

func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *PaymentRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.GetContext(ctx, &payment, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id); err != nil {
		return nil, mapGetError(err)
	}
	if err := r.attach(ctx, []*model.Payment{&payment}, include); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepository) FindFirst(ctx context.Context, match model.PaymentMatch) (*model.Payment, error) {
	var payment model.Payment
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE prescription_id = $1 AND id <> $2 LIMIT 1`
	if err := r.db.GetContext(ctx, &payment, query, match.PrescriptionID, match.ExcludeID); err != nil {
		return nil, mapGetError(err)
	}
	return &payment, nil
}

func (r *PaymentRepository) List(ctx context.Context, filter model.PaymentFilter, include ...model.Relation) ([]*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE ($1::uuid IS NULL OR patient_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at`
	payments := []*model.Payment{}
	if err := r.db.SelectContext(ctx, &payments, query, filter.PatientID, filter.Status); err != nil {
		return nil, err
	}
	if err := r.attach(ctx, payments, include); err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, patient_id, prescription_id, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		payment.ID,
		payment.PatientID,
		payment.PrescriptionID,
		payment.Amount,
		payment.Status,
		payment.CreatedAt,
		payment.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *PaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	query := `
		UPDATE payments
		SET patient_id = $1, prescription_id = $2, amount = $3, status = $4, updated_at = $5
		WHERE id = $6`
	return r.exec(ctx, r.db, query,
		payment.PatientID,
		payment.PrescriptionID,
		payment.Amount,
		payment.Status,
		payment.UpdatedAt,
		payment.ID,
	)
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.remove(ctx, "payments", id)
}

func (r *PaymentRepository) attach(ctx context.Context, payments []*model.Payment, include []model.Relation) error {
	if len(payments) == 0 {
		return nil
	}
	if model.Includes(include, model.RelPatient) {
		ids := make([]uuid.UUID, 0, len(payments))
		for _, p := range payments {
			ids = append(ids, p.PatientID)
		}
		patients, err := loadPatients(ctx, r.db, ids)
		if err != nil {
			return err
		}
		for _, p := range payments {
			p.Patient = patients[p.PatientID]
		}
	}
	if model.Includes(include, model.RelPrescription) {
		ids := make([]uuid.UUID, 0, len(payments))
		for _, p := range payments {
			ids = append(ids, p.PrescriptionID)
		}
		prescriptions, err := loadPrescriptions(ctx, r.db, ids, model.RelMedicines)
		if err != nil {
			return err
		}
		for _, p := range payments {
			p.Prescription = prescriptions[p.PrescriptionID]
		}
	}
	return nil
}
