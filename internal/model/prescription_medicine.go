package model

import (
	"strings"

	"github.com/google/uuid"
)

type PrescriptionMedicine struct {
	Base
	PrescriptionID uuid.UUID `db:"prescription_id" json:"prescriptionId"`
	MedicineID     uuid.UUID `db:"medicine_id" json:"medicineId"`
	Dosage         string    `db:"dosage" json:"dosage"`
	Duration       string    `db:"duration" json:"duration"`
	Quantity       int       `db:"quantity" json:"quantity"`
	Instructions   string    `db:"instructions" json:"instructions,omitempty"`

	Prescription *Prescription `db:"-" json:"prescription,omitempty"`
	Medicine     *Medicine     `db:"-" json:"medicine,omitempty"`
}

type PrescriptionMedicineRequest struct {
	PrescriptionID uuid.UUID `json:"prescriptionId" validate:"required"`
	MedicineID     uuid.UUID `json:"medicineId" validate:"required"`
	Dosage         string    `json:"dosage" validate:"required,max=100"`
	Duration       string    `json:"duration" validate:"required,max=100"`
	Quantity       int       `json:"quantity" validate:"gt=0"`
	Instructions   string    `json:"instructions" validate:"max=500"`
}

func (r *PrescriptionMedicineRequest) Normalize() {
	r.Dosage = strings.TrimSpace(r.Dosage)
	r.Duration = strings.TrimSpace(r.Duration)
	r.Instructions = strings.TrimSpace(r.Instructions)
}

type PrescriptionMedicineFilter struct {
	PrescriptionID *uuid.UUID
	MedicineID     *uuid.UUID
}

// PrescriptionMedicineMatch selects the line item for the same prescription and medicine pair
type PrescriptionMedicineMatch struct {
	PrescriptionID uuid.UUID
	MedicineID     uuid.UUID
	ExcludeID      uuid.UUID
}
