package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type HealthCheck struct {
	Base
	PatientID   uuid.UUID      `db:"patient_id" json:"patientId"`
	LabDoctorID uuid.UUID      `db:"lab_doctor_id" json:"labDoctorId"`
	Signs       pq.StringArray `db:"signs" json:"signs"`
	DiseaseIDs  []uuid.UUID    `db:"-" json:"diseaseIds"`

	Patient   *Patient   `db:"-" json:"patient,omitempty"`
	LabDoctor *User      `db:"-" json:"labDoctor,omitempty"`
	Diseases  []*Disease `db:"-" json:"diseases,omitempty"`
}

// HealthCheckDisease is a join row
type HealthCheckDisease struct {
	HealthCheckID uuid.UUID `db:"health_check_id"`
	DiseaseID     uuid.UUID `db:"disease_id"`
}

type HealthCheckRequest struct {
	PatientID   uuid.UUID   `json:"patientId" validate:"required"`
	LabDoctorID uuid.UUID   `json:"labDoctorId" validate:"required"`
	Signs       []string    `json:"signs" validate:"required,dive,required"`
	Diseases    []uuid.UUID `json:"diseases" validate:"required"`
}

// Normalize trims signs and drops repeated disease ids, keeping first occurrence order
func (r *HealthCheckRequest) Normalize() {
	for i, s := range r.Signs {
		r.Signs[i] = strings.TrimSpace(s)
	}
	if r.Diseases == nil {
		return
	}
	seen := make(map[uuid.UUID]struct{}, len(r.Diseases))
	unique := make([]uuid.UUID, 0, len(r.Diseases))
	for _, id := range r.Diseases {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}
	r.Diseases = unique
}

type HealthCheckFilter struct {
	PatientID   *uuid.UUID
	LabDoctorID *uuid.UUID
}
