package model

import (
	"strings"

	"github.com/google/uuid"
)

type PrescriptionStatus string

const (
	PrescriptionPending   PrescriptionStatus = "pending"
	PrescriptionDispensed PrescriptionStatus = "dispensed"
	PrescriptionCancelled PrescriptionStatus = "cancelled"
)

type Prescription struct {
	Base
	PatientID uuid.UUID          `db:"patient_id" json:"patientId"`
	DoctorID  uuid.UUID          `db:"doctor_id" json:"doctorId"`
	Status    PrescriptionStatus `db:"status" json:"status"`

	Patient   *Patient                `db:"-" json:"patient,omitempty"`
	Doctor    *User                   `db:"-" json:"doctor,omitempty"`
	Medicines []*PrescriptionMedicine `db:"-" json:"medicines,omitempty"`
}

type PrescriptionRequest struct {
	PatientID uuid.UUID          `json:"patientId" validate:"required"`
	DoctorID  uuid.UUID          `json:"doctorId" validate:"required"`
	Status    PrescriptionStatus `json:"status" validate:"required,oneof=pending dispensed cancelled"`
}

func (r *PrescriptionRequest) Normalize() {
	r.Status = PrescriptionStatus(strings.ToLower(strings.TrimSpace(string(r.Status))))
	if r.Status == "" {
		r.Status = PrescriptionPending
	}
}

type PrescriptionFilter struct {
	PatientID *uuid.UUID
	DoctorID  *uuid.UUID
	Status    PrescriptionStatus
}
