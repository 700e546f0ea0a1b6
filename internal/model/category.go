package model

type Category struct {
	Base
	Name string `db:"name" json:"name"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"min=4,max=100"`
}

func (r *CategoryRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
}
