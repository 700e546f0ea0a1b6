package model

import (
	"strings"

	"github.com/google/uuid"
)

type Role string

const (
	RoleAdmin        Role = "Admin"
	RoleDoctor       Role = "Doctor"
	RoleLabDoctor    Role = "Lab_Doctor"
	RoleNurse        Role = "Nurse"
	RolePharmacist   Role = "Pharmacist"
	RoleReceptionist Role = "Receptionist"
)

type User struct {
	Base
	Name         string `db:"name" json:"name"`
	Phone        string `db:"phone" json:"phone"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Role         Role   `db:"role" json:"role"`
}

type RegisterUserRequest struct {
	Name     string `json:"name" validate:"min=4,max=40"`
	Phone    string `json:"phone" validate:"min=10,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"min=6,max=255"`
	Role     Role   `json:"role" validate:"required,oneof=Admin Doctor Lab_Doctor Nurse Pharmacist Receptionist"`
}

func (r *RegisterUserRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
	r.Email = NormalizeName(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

// UpdateUserRequest keeps the stored password when Password is empty
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"min=4,max=40"`
	Phone    string `json:"phone" validate:"min=10,max=15"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6,max=255"`
	Role     Role   `json:"role" validate:"required,oneof=Admin Doctor Lab_Doctor Nurse Pharmacist Receptionist"`
}

func (r *UpdateUserRequest) Normalize() {
	r.Name = NormalizeName(r.Name)
	r.Email = NormalizeName(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	User        *User  `json:"user"`
}

type UserFilter struct {
	Role Role
}

// UserMatch selects a user sharing any of the non-empty unique fields
type UserMatch struct {
	Name      string
	Email     string
	Phone     string
	ExcludeID uuid.UUID
}
