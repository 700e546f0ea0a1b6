package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type MedicineType string

const (
	MedicineTablet    MedicineType = "Tablet"
	MedicineSyrup     MedicineType = "Syrup"
	MedicineInjection MedicineType = "Injection"
	MedicineOintment  MedicineType = "Ointment"
	MedicineCapsule   MedicineType = "Capsule"
)

var (
	ErrInvalidExpiration = errors.New("expiration must be a valid date")
	ErrPastExpiration    = errors.New("expiration date must be in the future")
)

type Medicine struct {
	Base
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description,omitempty"`
	CategoryID  uuid.UUID       `db:"category_id" json:"categoryId"`
	Types       pq.StringArray  `db:"types" json:"types"`
	Stock       int             `db:"stock" json:"stock"`
	Expiration  time.Time       `db:"expiration" json:"expiration"`
	Price       decimal.Decimal `db:"price" json:"price"`

	Category *Category `db:"-" json:"category,omitempty"`
}

type MedicineRequest struct {
	Name        string          `json:"name" validate:"min=3,max=100"`
	Description string          `json:"description" validate:"max=1000"`
	CategoryID  uuid.UUID       `json:"categoryId" validate:"required"`
	Types       []string        `json:"types" validate:"min=1,unique,dive,oneof=Tablet Syrup Injection Ointment Capsule"`
	Stock       *int            `json:"stock" validate:"required,gte=0"`
	Expiration  string          `json:"expiration"`
	Price       decimal.Decimal `json:"price" validate:"gt=0"`

	ExpiresAt time.Time `json:"-" field:"expiration" validate:"future"`
}

func (r *MedicineRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

var expirationLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"}

// ParseExpiration fills ExpiresAt, rejecting unparseable dates and dates not after now
func (r *MedicineRequest) ParseExpiration(now time.Time) error {
	raw := strings.TrimSpace(r.Expiration)
	if raw == "" {
		return ErrInvalidExpiration
	}

	for _, layout := range expirationLayouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if !t.After(now) {
			return ErrPastExpiration
		}
		r.ExpiresAt = t.UTC()
		return nil
	}
	return ErrInvalidExpiration
}

type MedicineFilter struct {
	CategoryID *uuid.UUID
}
