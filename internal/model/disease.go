package model

import (
	"strings"

	"github.com/lib/pq"
)

type Disease struct {
	Base
	Name            string         `db:"name" json:"name"`
	Description     string         `db:"description" json:"description,omitempty"`
	SignsAndEffects pq.StringArray `db:"signs_and_effects" json:"signsAndEffects"`
}

type DiseaseRequest struct {
	Name            string   `json:"name" validate:"min=3,max=100"`
	Description     string   `json:"description" validate:"omitempty,min=6"`
	SignsAndEffects []string `json:"signsAndEffects" validate:"min=1,dive,required"`
}

func (r *DiseaseRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	for i, s := range r.SignsAndEffects {
		r.SignsAndEffects[i] = strings.TrimSpace(s)
	}
}
