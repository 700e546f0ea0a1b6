package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-api/internal/model"
)

// Related rows are fetched with one ANY($1) query per relation and stitched in by id.

func loadByID[T any](ctx context.Context, q sqlx.QueryerContext, table, columns string, ids []uuid.UUID, key func(*T) uuid.UUID) (map[uuid.UUID]*T, error) {
	out := make(map[uuid.UUID]*T)
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return out, nil
	}
	var rows []*T
	if err := selectByIDs(ctx, q, &rows, table, columns, ids); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[key(r)] = r
	}
	return out, nil
}

func loadPatients(ctx context.Context, q sqlx.QueryerContext, ids []uuid.UUID) (map[uuid.UUID]*model.Patient, error) {
	return loadByID(ctx, q, "patients", patientColumns, ids, func(p *model.Patient) uuid.UUID { return p.ID })
}

func loadUsers(ctx context.Context, q sqlx.QueryerContext, ids []uuid.UUID) (map[uuid.UUID]*model.User, error) {
	return loadByID(ctx, q, "users", userColumns, ids, func(u *model.User) uuid.UUID { return u.ID })
}

func loadCategories(ctx context.Context, q sqlx.QueryerContext, ids []uuid.UUID) (map[uuid.UUID]*model.Category, error) {
	return loadByID(ctx, q, "categories", categoryColumns, ids, func(c *model.Category) uuid.UUID { return c.ID })
}

func loadMedicines(ctx context.Context, q sqlx.QueryerContext, ids []uuid.UUID, include ...model.Relation) (map[uuid.UUID]*model.Medicine, error) {
	byID, err := loadByID(ctx, q, "medicines", medicineColumns, ids, func(m *model.Medicine) uuid.UUID { return m.ID })
	if err != nil {
		return nil, err
	}
	medicines := make([]*model.Medicine, 0, len(byID))
	for _, m := range byID {
		medicines = append(medicines, m)
	}
	if err := attachMedicineRelations(ctx, q, medicines, include); err != nil {
		return nil, err
	}
	return byID, nil
}

func loadPrescriptions(ctx context.Context, q sqlx.QueryerContext, ids []uuid.UUID, include ...model.Relation) (map[uuid.UUID]*model.Prescription, error) {
	byID, err := loadByID(ctx, q, "prescriptions", prescriptionColumns, ids, func(p *model.Prescription) uuid.UUID { return p.ID })
	if err != nil {
		return nil, err
	}
	prescriptions := make([]*model.Prescription, 0, len(byID))
	for _, p := range byID {
		prescriptions = append(prescriptions, p)
	}
	if err := attachPrescriptionRelations(ctx, q, prescriptions, include); err != nil {
		return nil, err
	}
	return byID, nil
}

// loadLineItems groups prescription_medicines rows by prescription in creation order
func loadLineItems(ctx context.Context, q sqlx.QueryerContext, prescriptionIDs []uuid.UUID) (map[uuid.UUID][]*model.PrescriptionMedicine, error) {
	out := make(map[uuid.UUID][]*model.PrescriptionMedicine)
	prescriptionIDs = uniqueIDs(prescriptionIDs)
	if len(prescriptionIDs) == 0 {
		return out, nil
	}
	var rows []*model.PrescriptionMedicine
	query := `SELECT ` + prescriptionMedicineColumns + ` FROM prescription_medicines
		WHERE prescription_id = ANY($1::uuid[]) ORDER BY created_at, id`
	if err := sqlx.SelectContext(ctx, q, &rows, query, uuidArray(prescriptionIDs)); err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.PrescriptionID] = append(out[r.PrescriptionID], r)
	}
	return out, nil
}

// loadDiseaseLinks returns the linked disease ids of each health check
func loadDiseaseLinks(ctx context.Context, q sqlx.QueryerContext, healthCheckIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	out := make(map[uuid.UUID][]uuid.UUID)
	healthCheckIDs = uniqueIDs(healthCheckIDs)
	if len(healthCheckIDs) == 0 {
		return out, nil
	}
	var links []model.HealthCheckDisease
	query := `SELECT health_check_id, disease_id FROM health_check_diseases
		WHERE health_check_id = ANY($1::uuid[]) ORDER BY health_check_id, disease_id`
	if err := sqlx.SelectContext(ctx, q, &links, query, uuidArray(healthCheckIDs)); err != nil {
		return nil, err
	}
	for _, l := range links {
		out[l.HealthCheckID] = append(out[l.HealthCheckID], l.DiseaseID)
	}
	return out, nil
}

func attachMedicineRelations(ctx context.Context, q sqlx.QueryerContext, medicines []*model.Medicine, include []model.Relation) error {
	if !model.Includes(include, model.RelCategory) || len(medicines) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(medicines))
	for _, m := range medicines {
		ids = append(ids, m.CategoryID)
	}
	categories, err := loadCategories(ctx, q, ids)
	if err != nil {
		return err
	}
	for _, m := range medicines {
		m.Category = categories[m.CategoryID]
	}
	return nil
}

func attachPrescriptionRelations(ctx context.Context, q sqlx.QueryerContext, prescriptions []*model.Prescription, include []model.Relation) error {
	if len(prescriptions) == 0 {
		return nil
	}
	var patientIDs, doctorIDs, ids []uuid.UUID
	for _, p := range prescriptions {
		patientIDs = append(patientIDs, p.PatientID)
		doctorIDs = append(doctorIDs, p.DoctorID)
		ids = append(ids, p.ID)
	}

	if model.Includes(include, model.RelPatient) {
		patients, err := loadPatients(ctx, q, patientIDs)
		if err != nil {
			return err
		}
		for _, p := range prescriptions {
			p.Patient = patients[p.PatientID]
		}
	}
	if model.Includes(include, model.RelDoctor) {
		doctors, err := loadUsers(ctx, q, doctorIDs)
		if err != nil {
			return err
		}
		for _, p := range prescriptions {
			p.Doctor = doctors[p.DoctorID]
		}
	}
	if model.Includes(include, model.RelMedicines) {
		items, err := loadLineItems(ctx, q, ids)
		if err != nil {
			return err
		}
		for _, p := range prescriptions {
			p.Medicines = items[p.ID]
			if p.Medicines == nil {
				p.Medicines = []*model.PrescriptionMedicine{}
			}
		}
	}
	return nil
}
