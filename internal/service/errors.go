// Package service holds helpers shared by the resource services.
package service

import (
	"errors"

	"github.com/jwalitptl/clinic-api/internal/repository"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
)

// referenceNames maps a foreign key field to the resource it points at
var referenceNames = map[string]string{
	"patientId":      "patient",
	"doctorId":       "doctor",
	"labDoctorId":    "lab doctor",
	"categoryId":     "category",
	"prescriptionId": "prescription",
	"medicineId":     "medicine",
	"diseases":       "one or more diseases",
}

// StoreError translates a repository failure on resource into an AppError
func StoreError(resource string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	var ce *repository.ConstraintError
	errors.As(err, &ce)

	switch {
	case errors.Is(err, repository.ErrConflict):
		var fields []string
		if ce != nil {
			fields = ce.Fields
		}
		return apperrors.Conflict(resource, fields...)
	case errors.Is(err, repository.ErrReference):
		name := "referenced record"
		if ce != nil && len(ce.Fields) > 0 {
			if n, ok := referenceNames[ce.Fields[0]]; ok {
				name = n
			}
		}
		return apperrors.NotFound(name, err)
	case errors.Is(err, repository.ErrInUse):
		return apperrors.InUse(resource, err)
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(resource, err)
	}
	return apperrors.Internal(err)
}

// Unique turns a FindFirst result into nil when nothing matched.
// A hit is reported through dup so the caller can name the duplicated fields.
func Unique[T any](found *T, err error, dup func(*T) []string, resource string) error {
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return apperrors.Internal(err)
	}
	return apperrors.Conflict(resource, dup(found)...)
}
