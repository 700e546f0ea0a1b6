package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/pkg/sqlerr"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// WithTx executes fn within a transaction, rolling back on error or panic
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// exec runs a write that must touch exactly one row
func (r *BaseRepository) exec(ctx context.Context, q sqlx.ExecerContext, query string, args ...interface{}) error {
	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// remove deletes one row by id, reporting restrict violations as ErrInUse
func (r *BaseRepository) remove(ctx context.Context, table string, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	if err != nil {
		return mapDeleteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// constraintFields maps schema constraint names to the json fields they guard
var constraintFields = map[string][]string{
	"users_name_key":               {"name"},
	"users_email_key":              {"email"},
	"users_phone_key":              {"phone"},
	"patients_name_key":            {"name"},
	"patients_phone_key":           {"phone"},
	"categories_name_key":          {"name"},
	"medicines_name_key":           {"name"},
	"diseases_name_key":            {"name"},
	"payments_prescription_id_key": {"prescriptionId"},

	"prescription_medicines_prescription_id_medicine_id_key": {"prescriptionId", "medicineId"},

	"medicines_category_id_fkey":                  {"categoryId"},
	"health_checks_patient_id_fkey":               {"patientId"},
	"health_checks_lab_doctor_id_fkey":            {"labDoctorId"},
	"health_check_diseases_disease_id_fkey":       {"diseases"},
	"health_check_diseases_health_check_id_fkey":  {"id"},
	"prescriptions_patient_id_fkey":               {"patientId"},
	"prescriptions_doctor_id_fkey":                {"doctorId"},
	"prescription_medicines_prescription_id_fkey": {"prescriptionId"},
	"prescription_medicines_medicine_id_fkey":     {"medicineId"},
	"payments_patient_id_fkey":                    {"patientId"},
	"payments_prescription_id_fkey":               {"prescriptionId"},
}

func fieldsFor(e *sqlerr.Error) []string {
	if f, ok := constraintFields[e.ConstraintName]; ok {
		return f
	}
	return []string{e.Field()}
}

func mapWriteError(err error) error {
	e, ok := sqlerr.Convert(err)
	if !ok {
		return err
	}
	switch e.Code {
	case sqlerr.UniqueViolation:
		return &repository.ConstraintError{Kind: repository.ErrConflict, Fields: fieldsFor(e), Err: e}
	case sqlerr.ForeignKeyViolation:
		return &repository.ConstraintError{Kind: repository.ErrReference, Fields: fieldsFor(e), Err: e}
	}
	return e
}

func mapDeleteError(err error) error {
	e, ok := sqlerr.Convert(err)
	if !ok {
		return err
	}
	if e.Code == sqlerr.ForeignKeyViolation {
		return &repository.ConstraintError{Kind: repository.ErrInUse, Fields: []string{e.TableName}, Err: e}
	}
	return e
}

func mapGetError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func uuidArray(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// selectByIDs loads rows of table whose id is in ids
func selectByIDs(ctx context.Context, q sqlx.QueryerContext, dest interface{}, table, columns string, ids []uuid.UUID) error {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = ANY($1::uuid[])`, columns, table)
	return sqlx.SelectContext(ctx, q, dest, query, uuidArray(ids))
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
