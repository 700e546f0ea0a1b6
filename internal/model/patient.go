package model

import (
	"strings"

	"github.com/google/uuid"
)

type Patient struct {
	Base
	Name        string `db:"name" json:"name"`
	AgeInYears  *int   `db:"age_in_years" json:"ageInYears,omitempty"`
	AgeInMonths *int   `db:"age_in_months" json:"ageInMonths,omitempty"`
	Sex         string `db:"sex" json:"sex"`
	Phone       string `db:"phone" json:"phone"`
}

type PatientRequest struct {
	Name        string `json:"name" validate:"min=4,max=50"`
	AgeInYears  *int   `json:"ageInYears" validate:"omitempty,gte=0"`
	AgeInMonths *int   `json:"ageInMonths" validate:"omitempty,gte=0,lte=11"`
	Sex         string `json:"sex" validate:"required,oneof=male female other"`
	Phone       string `json:"phone" validate:"min=10,max=15"`
}

func (r *PatientRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
	r.Sex = strings.ToLower(strings.TrimSpace(r.Sex))
	r.Phone = strings.TrimSpace(r.Phone)
}

type PatientFilter struct {
	Sex string
}

type PatientMatch struct {
	Name      string
	Phone     string
	ExcludeID uuid.UUID
}
