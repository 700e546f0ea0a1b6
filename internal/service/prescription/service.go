package prescription

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "prescription"

var relations = []model.Relation{model.RelPatient, model.RelDoctor, model.RelMedicines}

type PrescriptionServicer interface {
	CreatePrescription(ctx context.Context, req model.PrescriptionRequest) (*model.Prescription, error)
	GetPrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error)
	ListPrescriptions(ctx context.Context, filter model.PrescriptionFilter) ([]*model.Prescription, error)
	UpdatePrescription(ctx context.Context, id uuid.UUID, req model.PrescriptionRequest) (*model.Prescription, error)
	DeletePrescription(ctx context.Context, id uuid.UUID) error
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

func (s *Service) CreatePrescription(ctx context.Context, req model.PrescriptionRequest) (*model.Prescription, error) {
	if err := s.prepare(ctx, &req); err != nil {
		return nil, err
	}

	p := &model.Prescription{
		Base:      model.NewBase(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Status:    req.Status,
	}
	if err := s.store.Prescriptions.Create(ctx, p); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, p.ID, p)
	return p, nil
}

func (s *Service) GetPrescription(ctx context.Context, id uuid.UUID) (*model.Prescription, error) {
	p, err := s.store.Prescriptions.Get(ctx, id, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return p, nil
}

// ListPrescriptions returns an empty slice, not NotFound, when there are none
func (s *Service) ListPrescriptions(ctx context.Context, filter model.PrescriptionFilter) ([]*model.Prescription, error) {
	prescriptions, err := s.store.Prescriptions.List(ctx, filter, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return prescriptions, nil
}

func (s *Service) UpdatePrescription(ctx context.Context, id uuid.UUID, req model.PrescriptionRequest) (*model.Prescription, error) {
	p, err := s.store.Prescriptions.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if err := s.prepare(ctx, &req); err != nil {
		return nil, err
	}

	p.PatientID = req.PatientID
	p.DoctorID = req.DoctorID
	p.Status = req.Status
	p.Touch()
	if err := s.store.Prescriptions.Update(ctx, p); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, p.ID, p)
	return p, nil
}

// DeletePrescription also removes its line items; a recorded payment blocks it
func (s *Service) DeletePrescription(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Prescriptions.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

func (s *Service) prepare(ctx context.Context, req *model.PrescriptionRequest) error {
	req.Normalize()

	if req.PatientID != uuid.Nil {
		if _, err := s.store.Patients.Get(ctx, req.PatientID); err != nil {
			return service.StoreError("patient", err)
		}
	}
	if req.DoctorID != uuid.Nil {
		if _, err := s.store.Users.Get(ctx, req.DoctorID); err != nil {
			return service.StoreError("doctor", err)
		}
	}

	return s.validator.Validate(req)
}
