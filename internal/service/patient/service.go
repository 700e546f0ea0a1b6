package patient

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "patient"

type PatientServicer interface {
	CreatePatient(ctx context.Context, req model.PatientRequest) (*model.Patient, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	ListPatients(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req model.PatientRequest) (*model.Patient, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store     *repository.Store
	validator *validator.Validator
	events    event.Publisher
}

func NewService(store *repository.Store, v *validator.Validator, events event.Publisher) *Service {
	return &Service{
		store:     store,
		validator: v,
		events:    events,
	}
}

func (s *Service) CreatePatient(ctx context.Context, req model.PatientRequest) (*model.Patient, error) {
	req.Normalize()
	if err := s.checkUnique(ctx, model.PatientMatch{Name: req.Name, Phone: req.Phone}); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	patient := &model.Patient{
		Base:        model.NewBase(),
		Name:        req.Name,
		AgeInYears:  req.AgeInYears,
		AgeInMonths: req.AgeInMonths,
		Sex:         req.Sex,
		Phone:       req.Phone,
	}
	if err := s.store.Patients.Create(ctx, patient); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, patient.ID, patient)
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	patient, err := s.store.Patients.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return patient, nil
}

// ListPatients reports NotFound when no patient matches
func (s *Service) ListPatients(ctx context.Context, filter model.PatientFilter) ([]*model.Patient, error) {
	patients, err := s.store.Patients.List(ctx, filter)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if len(patients) == 0 {
		return nil, apperrors.NotFound("patients", nil)
	}
	return patients, nil
}

func (s *Service) UpdatePatient(ctx context.Context, id uuid.UUID, req model.PatientRequest) (*model.Patient, error) {
	patient, err := s.store.Patients.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}

	req.Normalize()
	if err := s.checkUnique(ctx, model.PatientMatch{Name: req.Name, Phone: req.Phone, ExcludeID: id}); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	patient.Name = req.Name
	patient.AgeInYears = req.AgeInYears
	patient.AgeInMonths = req.AgeInMonths
	patient.Sex = req.Sex
	patient.Phone = req.Phone
	patient.Touch()

	if err := s.store.Patients.Update(ctx, patient); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, patient.ID, patient)
	return patient, nil
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Patients.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

func (s *Service) checkUnique(ctx context.Context, match model.PatientMatch) error {
	found, err := s.store.Patients.FindFirst(ctx, match)
	return service.Unique(found, err, func(p *model.Patient) []string {
		var fields []string
		if p.Name == match.Name {
			fields = append(fields, "name")
		}
		if p.Phone == match.Phone {
			fields = append(fields, "phone")
		}
		return fields
	}, resource)
}
