package category

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-api/internal/model"
	"github.com/jwalitptl/clinic-api/internal/repository"
	"github.com/jwalitptl/clinic-api/internal/service"
	"github.com/jwalitptl/clinic-api/internal/service/event"
	"github.com/jwalitptl/clinic-api/pkg/validator"
)

const resource = "category"

type CategoryServicer interface {
	CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	UpdateCategory(ctx context.Context, id uuid.UUID, req model.CategoryRequest) (*model.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error
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

func (s *Service) CreateCategory(ctx context.Context, req model.CategoryRequest) (*model.Category, error) {
	req.Normalize()
	if err := s.checkUnique(ctx, req.Name, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(&req); err != nil {
		return nil, err
	}

	category := &model.Category{Base: model.NewBase(), Name: req.Name}
	if err := s.store.Categories.Create(ctx, category); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Created, category.ID, category)
	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, id uuid.UUID) (*model.Category, error) {
	category, err := s.store.Categories.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return category, nil
}

// ListCategories returns an empty slice, not NotFound, when there are none
func (s *Service) ListCategories(ctx context.Context) ([]*model.Category, error) {
	categories, err := s.store.Categories.List(ctx)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return categories, nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uuid.UUID, req model.CategoryRequest) (*model.Category, error) {
	category, err := s.store.Categories.Get(ctx, id)
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

	category.Name = req.Name
	category.Touch()
	if err := s.store.Categories.Update(ctx, category); err != nil {
		return nil, service.StoreError(resource, err)
	}

	s.events.Publish(ctx, resource, event.Updated, category.ID, category)
	return category, nil
}

func (s *Service) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := s.store.Categories.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, resource, event.Deleted, id, nil)
	return nil
}

func (s *Service) checkUnique(ctx context.Context, name string, excludeID uuid.UUID) error {
	if name == "" {
		return nil
	}
	found, err := s.store.Categories.FindFirst(ctx, model.NameMatch{Name: name, ExcludeID: excludeID})
	return service.Unique(found, err, func(*model.Category) []string { return []string{"name"} }, resource)
}
