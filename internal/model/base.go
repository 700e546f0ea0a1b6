package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base contains common fields for all models
type Base struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewBase assigns a fresh id and timestamps
func NewBase() Base {
	now := time.Now().UTC()
	return Base{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps UpdatedAt
func (b *Base) Touch() {
	b.UpdatedAt = time.Now().UTC()
}

// Relation names a directly related entity that can be eager-loaded
type Relation string

const (
	RelCategory     Relation = "category"
	RelPatient      Relation = "patient"
	RelDoctor       Relation = "doctor"
	RelLabDoctor    Relation = "labDoctor"
	RelDiseases     Relation = "diseases"
	RelPrescription Relation = "prescription"
	RelMedicine     Relation = "medicine"
	RelMedicines    Relation = "medicines"
)

// Includes reports whether rel was requested
func Includes(include []Relation, rel Relation) bool {
	for _, r := range include {
		if r == rel {
			return true
		}
	}
	return false
}

// NormalizeName is applied to every unique name before storage and comparison
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NameMatch selects rows whose name equals Name, ignoring ExcludeID
type NameMatch struct {
	Name      string
	ExcludeID uuid.UUID
}
