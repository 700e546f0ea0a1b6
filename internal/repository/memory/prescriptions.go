package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
)

type prescriptionRow struct{ model.Prescription }

func (r *prescriptionRow) created() time.Time { return r.CreatedAt }
func (r *prescriptionRow) key() uuid.UUID     { return r.ID }

func copyPrescription(p model.Prescription) model.Prescription {
	p.Patient = nil
	p.Doctor = nil
	p.Medicines = nil
	return p
}

type PrescriptionRepository struct {
	db *db
}

func (r *PrescriptionRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Prescription, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.prescriptions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.db.loadPrescription(row, include), nil
}

func (r *PrescriptionRepository) List(ctx context.Context, filter model.PrescriptionFilter, include ...model.Relation) ([]*model.Prescription, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*prescriptionRow, 0, len(r.db.prescriptions))
	for _, row := range r.db.prescriptions {
		if filter.PatientID != nil && row.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && row.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		rows = append(rows, row)
	}
	sortByCreated(rows)

	prescriptions := make([]*model.Prescription, 0, len(rows))
	for _, row := range rows {
		prescriptions = append(prescriptions, r.db.loadPrescription(row, include))
	}
	return prescriptions, nil
}

func (r *PrescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.prescriptions[prescription.ID]; ok {
		return conflict("id")
	}
	if err := r.check(prescription); err != nil {
		return err
	}
	r.db.prescriptions[prescription.ID] = &prescriptionRow{Prescription: copyPrescription(*prescription)}
	return nil
}

func (r *PrescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.prescriptions[prescription.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.check(prescription); err != nil {
		return err
	}
	r.db.prescriptions[prescription.ID] = &prescriptionRow{Prescription: copyPrescription(*prescription)}
	return nil
}

// Delete cascades to line items and is blocked by a recorded payment
func (r *PrescriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.prescriptions[id]; !ok {
		return repository.ErrNotFound
	}
	for _, p := range r.db.payments {
		if p.PrescriptionID == id {
			return inUse("prescriptionId")
		}
	}
	for pmID, pm := range r.db.prescriptionMedicines {
		if pm.PrescriptionID == id {
			delete(r.db.prescriptionMedicines, pmID)
		}
	}
	delete(r.db.prescriptions, id)
	return nil
}

func (r *PrescriptionRepository) check(p *model.Prescription) error {
	if _, ok := r.db.patients[p.PatientID]; !ok {
		return missingReference("patientId")
	}
	if _, ok := r.db.users[p.DoctorID]; !ok {
		return missingReference("doctorId")
	}
	return nil
}

func (d *db) loadPrescription(row *prescriptionRow, include []model.Relation) *model.Prescription {
	p := copyPrescription(row.Prescription)

	if model.Includes(include, model.RelPatient) {
		if pt, ok := d.patients[p.PatientID]; ok {
			p.Patient = pt.value()
		}
	}
	if model.Includes(include, model.RelDoctor) {
		if u, ok := d.users[p.DoctorID]; ok {
			p.Doctor = u.value()
		}
	}
	if model.Includes(include, model.RelMedicines) {
		items := make([]*prescriptionMedicineRow, 0)
		for _, pm := range d.prescriptionMedicines {
			if pm.PrescriptionID == p.ID {
				items = append(items, pm)
			}
		}
		sortByCreated(items)
		p.Medicines = make([]*model.PrescriptionMedicine, 0, len(items))
		for _, pm := range items {
			p.Medicines = append(p.Medicines, pm.value())
		}
	}
	return &p
}

type prescriptionMedicineRow struct{ model.PrescriptionMedicine }

func (r *prescriptionMedicineRow) created() time.Time { return r.CreatedAt }
func (r *prescriptionMedicineRow) key() uuid.UUID     { return r.ID }

func (r *prescriptionMedicineRow) value() *model.PrescriptionMedicine {
	pm := copyPrescriptionMedicine(r.PrescriptionMedicine)
	return &pm
}

func copyPrescriptionMedicine(pm model.PrescriptionMedicine) model.PrescriptionMedicine {
	pm.Prescription = nil
	pm.Medicine = nil
	return pm
}

type PrescriptionMedicineRepository struct {
	db *db
}

func (r *PrescriptionMedicineRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.PrescriptionMedicine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.prescriptionMedicines[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.db.loadPrescriptionMedicine(row, include), nil
}

func (r *PrescriptionMedicineRepository) FindFirst(ctx context.Context, match model.PrescriptionMedicineMatch) (*model.PrescriptionMedicine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for id, row := range r.db.prescriptionMedicines {
		if id == match.ExcludeID {
			continue
		}
		if row.PrescriptionID == match.PrescriptionID && row.MedicineID == match.MedicineID {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PrescriptionMedicineRepository) List(ctx context.Context, filter model.PrescriptionMedicineFilter, include ...model.Relation) ([]*model.PrescriptionMedicine, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*prescriptionMedicineRow, 0, len(r.db.prescriptionMedicines))
	for _, row := range r.db.prescriptionMedicines {
		if filter.PrescriptionID != nil && row.PrescriptionID != *filter.PrescriptionID {
			continue
		}
		if filter.MedicineID != nil && row.MedicineID != *filter.MedicineID {
			continue
		}
		rows = append(rows, row)
	}
	sortByCreated(rows)

	items := make([]*model.PrescriptionMedicine, 0, len(rows))
	for _, row := range rows {
		items = append(items, r.db.loadPrescriptionMedicine(row, include))
	}
	return items, nil
}

func (r *PrescriptionMedicineRepository) Create(ctx context.Context, item *model.PrescriptionMedicine) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.prescriptionMedicines[item.ID]; ok {
		return conflict("id")
	}
	if err := r.check(item); err != nil {
		return err
	}
	r.db.prescriptionMedicines[item.ID] = &prescriptionMedicineRow{PrescriptionMedicine: copyPrescriptionMedicine(*item)}
	return nil
}

func (r *PrescriptionMedicineRepository) Update(ctx context.Context, item *model.PrescriptionMedicine) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.prescriptionMedicines[item.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.check(item); err != nil {
		return err
	}
	r.db.prescriptionMedicines[item.ID] = &prescriptionMedicineRow{PrescriptionMedicine: copyPrescriptionMedicine(*item)}
	return nil
}

func (r *PrescriptionMedicineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.prescriptionMedicines[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.prescriptionMedicines, id)
	return nil
}

func (r *PrescriptionMedicineRepository) check(item *model.PrescriptionMedicine) error {
	if _, ok := r.db.prescriptions[item.PrescriptionID]; !ok {
		return missingReference("prescriptionId")
	}
	if _, ok := r.db.medicines[item.MedicineID]; !ok {
		return missingReference("medicineId")
	}
	for id, row := range r.db.prescriptionMedicines {
		if id != item.ID && row.PrescriptionID == item.PrescriptionID && row.MedicineID == item.MedicineID {
			return conflict("prescriptionId", "medicineId")
		}
	}
	return nil
}

func (d *db) loadPrescriptionMedicine(row *prescriptionMedicineRow, include []model.Relation) *model.PrescriptionMedicine {
	pm := row.value()

	if model.Includes(include, model.RelPrescription) {
		if p, ok := d.prescriptions[pm.PrescriptionID]; ok {
			pm.Prescription = d.loadPrescription(p, []model.Relation{model.RelPatient})
		}
	}
	if model.Includes(include, model.RelMedicine) {
		if m, ok := d.medicines[pm.MedicineID]; ok {
			pm.Medicine = d.loadMedicine(m, []model.Relation{model.RelCategory})
		}
	}
	return pm
}

type paymentRow struct{ model.Payment }

func (r *paymentRow) created() time.Time { return r.CreatedAt }
func (r *paymentRow) key() uuid.UUID     { return r.ID }

func (r *paymentRow) value() *model.Payment {
	p := copyPayment(r.Payment)
	return &p
}

func copyPayment(p model.Payment) model.Payment {
	p.Patient = nil
	p.Prescription = nil
	return p
}

type PaymentRepository struct {
	db *db
}

func (r *PaymentRepository) Get(ctx context.Context, id uuid.UUID, include ...model.Relation) (*model.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	row, ok := r.db.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.db.loadPayment(row, include), nil
}

func (r *PaymentRepository) FindFirst(ctx context.Context, match model.PaymentMatch) (*model.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for id, row := range r.db.payments {
		if id != match.ExcludeID && row.PrescriptionID == match.PrescriptionID {
			return row.value(), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PaymentRepository) List(ctx context.Context, filter model.PaymentFilter, include ...model.Relation) ([]*model.Payment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	rows := make([]*paymentRow, 0, len(r.db.payments))
	for _, row := range r.db.payments {
		if filter.PatientID != nil && row.PatientID != *filter.PatientID {
			continue
		}
		if filter.Status != "" && row.Status != filter.Status {
			continue
		}
		rows = append(rows, row)
	}
	sortByCreated(rows)

	payments := make([]*model.Payment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, r.db.loadPayment(row, include))
	}
	return payments, nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.payments[payment.ID]; ok {
		return conflict("id")
	}
	if err := r.check(payment); err != nil {
		return err
	}
	r.db.payments[payment.ID] = &paymentRow{Payment: copyPayment(*payment)}
	return nil
}

func (r *PaymentRepository) Update(ctx context.Context, payment *model.Payment) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.payments[payment.ID]; !ok {
		return repository.ErrNotFound
	}
	if err := r.check(payment); err != nil {
		return err
	}
	r.db.payments[payment.ID] = &paymentRow{Payment: copyPayment(*payment)}
	return nil
}

func (r *PaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if _, ok := r.db.payments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.db.payments, id)
	return nil
}

func (r *PaymentRepository) check(payment *model.Payment) error {
	if _, ok := r.db.patients[payment.PatientID]; !ok {
		return missingReference("patientId")
	}
	if _, ok := r.db.prescriptions[payment.PrescriptionID]; !ok {
		return missingReference("prescriptionId")
	}
	for id, row := range r.db.payments {
		if id != payment.ID && row.PrescriptionID == payment.PrescriptionID {
			return conflict("prescriptionId")
		}
	}
	return nil
}

func (d *db) loadPayment(row *paymentRow, include []model.Relation) *model.Payment {
	p := row.value()

	if model.Includes(include, model.RelPatient) {
		if pt, ok := d.patients[p.PatientID]; ok {
			p.Patient = pt.value()
		}
	}
	if model.Includes(include, model.RelPrescription) {
		if pr, ok := d.prescriptions[p.PrescriptionID]; ok {
			p.Prescription = d.loadPrescription(pr, []model.Relation{model.RelMedicines})
		}
	}
	return p
}
