package disease

import (
	"context"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	apperrors "github.com/jwalitptl/clinic-api/pkg/errors"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "disease"

type DiseaseServicer interface {
	CreateDisease(ctx context.Context, req model.DiseaseRequest) (*model.Disease, error)
	GetDisease(ctx context.Context, id uuid.UUID) (*model.Disease, error)
	ListDiseases(ctx context.Context) ([]*model.Disease, error)
	UpdateDisease(ctx context.Context, id uuid.UUID, req model.DiseaseRequest) (*model.Disease, error)
	DeleteDisease(ctx context.Context, id uuid.UUID) error
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

func (s *Service) CreateDisease(ctx context.Context, req model.DiseaseRequest) (*model.Disease, error) {
	req.Normalize()
	if err := s.checkUnique(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	disease := &model.Disease{
		Base:            model.NewBase(),
		Name:            req.Name,
		Description:     req.Description,
		SignsAndEffects: pq.StringArray(append([]string(nil), req.SignsAndEffects...)),
	}
	if err := s.store.Diseases.Create(ctx, disease); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, disease.ID, disease)
	return disease, nil
}

func (s *Service) GetDisease(ctx context.Context, id uuid.UUID) (*model.Disease, error) {
	disease, err := s.store.Diseases.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return disease, nil
}

// ListDiseases reports NotFound when there are none
func (s *Service) ListDiseases(ctx context.Context) ([]*model.Disease, error) {
	diseases, err := s.store.Diseases.List(ctx)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if len(diseases) == 0 {
		return nil, apperrors.NotFound("diseases", nil)
	}
	return diseases, nil
}

func (s *Service) UpdateDisease(ctx context.Context, id uuid.UUID, req model.DiseaseRequest) (*model.Disease, error) {
	disease, err := s.store.Diseases.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}

	req.Normalize()
	if err := s.checkUnique(ctx, req.Name, id); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	disease.Name = req.Name
	disease.Description = req.Description
	disease.SignsAndEffects = pq.StringArray(append([]string(nil), req.SignsAndEffects...))
	disease.Touch()

	if err := s.store.Diseases.Update(ctx, disease); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, disease.ID, disease)
	return disease, nil
}

func (s *Service) DeleteDisease(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Diseases.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

func (s *Service) checkUnique(ctx context.Context, name string, excludeID uuid.UUID) error {
	if name == "" {
		return nil
	}
	found, err := s.store.Diseases.FindFirst(ctx, model.NameMatch{Name: name, ExcludeID: excludeID})
	return service.Unique(found, err, func(*model.Disease) []string { return []string{"name"} }, resource)
}
