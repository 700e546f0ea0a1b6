package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

type Payment struct {
	Base
	PatientID      uuid.UUID       `db:"patient_id" json:"patientId"`
	PrescriptionID uuid.UUID       `db:"prescription_id" json:"prescriptionId"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	Status         PaymentStatus   `db:"status" json:"status"`

	Patient      *Patient      `db:"-" json:"patient,omitempty"`
	Prescription *Prescription `db:"-" json:"prescription,omitempty"`
}

type PaymentRequest struct {
	PatientID      uuid.UUID       `json:"patientId" validate:"required"`
	PrescriptionID uuid.UUID       `json:"prescriptionId" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"gt=0"`
	Status         PaymentStatus   `json:"status" validate:"required,oneof=pending paid cancelled refunded"`
}

func (r *PaymentRequest) Normalize() {
	r.Status = PaymentStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
}

type PaymentFilter struct {
	PatientID *uuid.UUID
	Status    PaymentStatus
}

// PaymentMatch selects the payment already recorded for a prescription
type PaymentMatch struct {
	PrescriptionID uuid.UUID
	ExcludeID      uuid.UUID
}
