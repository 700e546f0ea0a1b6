package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "postgres"), mock
}

func newHealthCheck() *model.HealthCheck {
	return &model.HealthCheck{
		Base:        model.NewBase(),
		PatientID:   uuid.New(),
		LabDoctorID: uuid.New(),
		Signs:       pq.StringArray{"fever"},
		DiseaseIDs:  []uuid.UUID{uuid.New(), uuid.New()},
	}
}

func TestHealthCheckCreateCommitsLinks(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHealthCheckRepository(db)
	hc := newHealthCheck()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_checks")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	for _, id := range hc.DiseaseIDs {
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_check_diseases")).
			WithArgs(hc.ID, id).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	require.NoError(t, repo.Create(context.Background(), hc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheckCreateRollsBackOnLinkFailure(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHealthCheckRepository(db)
	hc := newHealthCheck()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_checks")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_check_diseases")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_check_diseases")).
		WillReturnError(&pq.Error{Code: "23503", Table: "health_check_diseases", Constraint: "health_check_diseases_disease_id_fkey"})
	mock.ExpectRollback()

	err := repo.Create(context.Background(), hc)
	require.ErrorIs(t, err, repository.ErrReference)

	var ce *repository.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"diseases"}, ce.Fields)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheckUpdateReplacesLinks(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHealthCheckRepository(db)
	hc := newHealthCheck()
	hc.DiseaseIDs = hc.DiseaseIDs[:1]

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE health_checks")).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM health_check_diseases WHERE health_check_id = $1")).
		WithArgs(hc.ID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO health_check_diseases")).
		WithArgs(hc.ID, hc.DiseaseIDs[0]).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), hc))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHealthCheckUpdateMissingRowRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHealthCheckRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE health_checks")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), newHealthCheck())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserCreateUniqueViolation(t *testing.T) {
	db, mock := newMock(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO users")).
		WillReturnError(&pq.Error{Code: "23505", Table: "users", Constraint: "users_email_key"})

	user := &model.User{Base: model.NewBase(), Name: "front desk", Email: "desk@clinic.test", Phone: "0123456789", Role: model.RoleReceptionist}
	err := repo.Create(context.Background(), user)
	require.ErrorIs(t, err, repository.ErrConflict)

	var ce *repository.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"email"}, ce.Fields)
}

func TestPrescriptionMedicineComposite(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPrescriptionMedicineRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO prescription_medicines")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "prescription_medicines_prescription_id_medicine_id_key"})

	err := repo.Create(context.Background(), &model.PrescriptionMedicine{Base: model.NewBase(), Quantity: 1})
	var ce *repository.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, []string{"prescriptionId", "medicineId"}, ce.Fields)
}

func TestCategoryDeleteRestricted(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = $1")).
		WithArgs(id).
		WillReturnError(&pq.Error{Code: "23503", Table: "medicines", Constraint: "medicines_category_id_fkey"})

	assert.ErrorIs(t, repo.Delete(context.Background(), id), repository.ErrInUse)
}

func TestDeleteMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPatientRepository(db)
	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM patients WHERE id = $1")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), id), repository.ErrNotFound)
}

func TestGetMissingRow(t *testing.T) {
	db, mock := newMock(t)
	repo := NewCategoryRepository(db)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = $1")).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMedicineGetWithCategory(t *testing.T) {
	db, mock := newMock(t)
	repo := NewMedicineRepository(db)
	medicineID, categoryID := uuid.New(), uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM medicines WHERE id = $1")).
		WithArgs(medicineID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "description", "category_id", "types", "stock", "expiration", "price", "created_at", "updated_at",
		}).AddRow(medicineID.String(), "amoxicillin", "", categoryID.String(), "{Capsule,Tablet}", 12, now.Add(48*time.Hour), "3.50", now, now))

	mock.ExpectQuery(regexp.QuoteMeta("FROM categories WHERE id = ANY($1::uuid[])")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(categoryID.String(), "antibiotics", now, now))

	got, err := repo.Get(context.Background(), medicineID, model.RelCategory)
	require.NoError(t, err)
	assert.Equal(t, pq.StringArray{"Capsule", "Tablet"}, got.Types)
	assert.Equal(t, "3.5", got.Price.String())
	require.NotNil(t, got.Category)
	assert.Equal(t, "antibiotics", got.Category.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigratorLoadsEmbeddedFiles(t *testing.T) {
	db, _ := newMock(t)
	migrations, err := NewMigrator(db).Load()
	require.NoError(t, err)
	require.NotEmpty(t, migrations)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Contains(t, migrations[0].SQL, "CREATE TABLE IF NOT EXISTS health_check_diseases")
}
