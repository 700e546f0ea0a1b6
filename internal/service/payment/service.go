package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "payment"

var relations = []model.Relation{model.RelPatient, model.RelPrescription}

type PaymentServicer interface {
	CreatePayment(ctx context.Context, req model.PaymentRequest) (*model.Payment, error)
	GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error)
	UpdatePayment(ctx context.Context, id uuid.UUID, req model.PaymentRequest) (*model.Payment, error)
	DeletePayment(ctx context.Context, id uuid.UUID) error
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

// CreatePayment records the single payment allowed per prescription
func (s *Service) CreatePayment(ctx context.Context, req model.PaymentRequest) (*model.Payment, error) {
	if err := s.prepare(ctx, &req, uuid.Nil); err != nil {
		return nil, err
	}

	p := &model.Payment{
		Base:           model.NewBase(),
		PatientID:      req.PatientID,
		PrescriptionID: req.PrescriptionID,
		Amount:         req.Amount.Round(2),
		Status:         req.Status,
	}
	if err := s.store.Payments.Create(ctx, p); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, p.ID, p)
	return p, nil
}

func (s *Service) GetPayment(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	p, err := s.store.Payments.Get(ctx, id, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return p, nil
}

// ListPayments returns an empty slice, not NotFound, when there are none
func (s *Service) ListPayments(ctx context.Context, filter model.PaymentFilter) ([]*model.Payment, error) {
	payments, err := s.store.Payments.List(ctx, filter, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return payments, nil
}

func (s *Service) UpdatePayment(ctx context.Context, id uuid.UUID, req model.PaymentRequest) (*model.Payment, error) {
	p, err := s.store.Payments.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if err := s.prepare(ctx, &req, id); err != nil {
		return nil, err
	}

	p.PatientID = req.PatientID
	p.PrescriptionID = req.PrescriptionID
	p.Amount = req.Amount.Round(2)
	p.Status = req.Status
	p.Touch()
	if err := s.store.Payments.Update(ctx, p); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, p.ID, p)
	return p, nil
}

func (s *Service) DeletePayment(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Payments.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

func (s *Service) prepare(ctx context.Context, req *model.PaymentRequest, excludeID uuid.UUID) error {
	req.Normalize()

	if req.PatientID != uuid.Nil {
		if _, err := s.store.Patients.Get(ctx, req.PatientID); err != nil {
			return service.StoreError("patient", err)
		}
	}
	if req.PrescriptionID != uuid.Nil {
		if _, err := s.store.Prescriptions.Get(ctx, req.PrescriptionID); err != nil {
			return service.StoreError("prescription", err)
		}
		found, err := s.store.Payments.FindFirst(ctx, model.PaymentMatch{PrescriptionID: req.PrescriptionID, ExcludeID: excludeID})
		err = service.Unique(found, err, func(*model.Payment) []string { return []string{"prescriptionId"} }, resource)
		if err != nil {
			return err
		}
	}

	return s.validator.Validate(req)
}
