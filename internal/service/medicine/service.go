package medicine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "medicine"

type MedicineServicer interface {
	CreateMedicine(ctx context.Context, req model.MedicineRequest) (*model.Medicine, error)
	GetMedicine(ctx context.Context, id uuid.UUID) (*model.Medicine, error)
	ListMedicines(ctx context.Context, filter model.MedicineFilter) ([]*model.Medicine, error)
	UpdateMedicine(ctx context.Context, id uuid.UUID, req model.MedicineRequest) (*model.Medicine, error)
	DeleteMedicine(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	store     *repository.Store
	validator *validator.Validator
	events    event.Publisher
	now       func() time.Time
}

func NewService(store *repository.Store, v *validator.Validator, events event.Publisher) *Service {
	return &Service{
		store:     store,
		validator: v,
		events:    events,
		now:       time.Now,
	}
}

func (s *Service) CreateMedicine(ctx context.Context, req model.MedicineRequest) (*model.Medicine, error) {
	if err := s.prepare(ctx, &req, uuid.Nil); err != nil {
		return nil, err
	}

	medicine := &model.Medicine{Base: model.NewBase()}
	apply(medicine, req)
	if err := s.store.Medicines.Create(ctx, medicine); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, medicine.ID, medicine)
	return medicine, nil
}

func (s *Service) GetMedicine(ctx context.Context, id uuid.UUID) (*model.Medicine, error) {
	medicine, err := s.store.Medicines.Get(ctx, id, model.RelCategory)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return medicine, nil
}

// ListMedicines reports NotFound when no medicine matches
func (s *Service) ListMedicines(ctx context.Context, filter model.MedicineFilter) ([]*model.Medicine, error) {
	medicines, err := s.store.Medicines.List(ctx, filter, model.RelCategory)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if len(medicines) == 0 {
		return nil, apperrors.NotFound("medicines", nil)
	}
	return medicines, nil
}

func (s *Service) UpdateMedicine(ctx context.Context, id uuid.UUID, req model.MedicineRequest) (*model.Medicine, error) {
	medicine, err := s.store.Medicines.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if err := s.prepare(ctx, &req, id); err != nil {
		return nil, err
	}

	apply(medicine, req)
	medicine.Touch()
	if err := s.store.Medicines.Update(ctx, medicine); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, medicine.ID, medicine)
	return medicine, nil
}

func (s *Service) DeleteMedicine(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Medicines.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

// prepare runs expiration parsing, the category lookup, the name check and validation in that order
func (s *Service) prepare(ctx context.Context, req *model.MedicineRequest, excludeID uuid.UUID) error {
	if err := req.ParseExpiration(s.now()); err != nil {
		return apperrors.InvalidInput("invalid expiration", apperrors.FieldError{Field: "expiration", Message: err.Error()})
	}

	if req.CategoryID != uuid.Nil {
		if _, err := s.store.Categories.Get(ctx, req.CategoryID); err != nil {
			return service.StoreError("category", err)
		}
	}

	req.Normalize()
	if req.Name != "" {
		found, err := s.store.Medicines.FindFirst(ctx, model.NameMatch{Name: req.Name, ExcludeID: excludeID})
		err = service.Unique(found, err, func(*model.Medicine) []string { return []string{"name"} }, resource)
		if err != nil {
			return err
		}
	}

	return s.validator.Validate(req)
}

func apply(m *model.Medicine, req model.MedicineRequest) {
	m.Name = req.Name
	m.Description = req.Description
	m.CategoryID = req.CategoryID
	m.Types = pq.StringArray(append([]string(nil), req.Types...))
	m.Stock = *req.Stock
	m.Expiration = req.ExpiresAt
	m.Price = req.Price.Round(2)
}
