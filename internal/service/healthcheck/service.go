package healthcheck

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

const (
	resource      = "health check"
	eventResource = "healthCheck"
)

var relations = []model.Relation{model.RelPatient, model.RelLabDoctor, model.RelDiseases}

type HealthCheckServicer interface {
	CreateHealthCheck(ctx context.Context, req model.HealthCheckRequest) (*model.HealthCheck, error)
	GetHealthCheck(ctx context.Context, id uuid.UUID) (*model.HealthCheck, error)
	ListHealthChecks(ctx context.Context, filter model.HealthCheckFilter) ([]*model.HealthCheck, error)
	UpdateHealthCheck(ctx context.Context, id uuid.UUID, req model.HealthCheckRequest) (*model.HealthCheck, error)
	DeleteHealthCheck(ctx context.Context, id uuid.UUID) error
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

// CreateHealthCheck writes the health check and its disease links as one unit
func (s *Service) CreateHealthCheck(ctx context.Context, req model.HealthCheckRequest) (*model.HealthCheck, error) {
	if err := s.prepare(ctx, &req); err != nil {
		return nil, err
	}

	hc := &model.HealthCheck{Base: model.NewBase()}
	apply(hc, req)
	if err := s.store.HealthChecks.Create(ctx, hc); err != nil {
		return nil, service.StoreError(resource, err)
	}

	created, err := s.store.HealthChecks.Get(ctx, hc.ID, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	s.events.Publish(ctx, eventResource, event.Created, created.ID, created)
	return created, nil
}

func (s *Service) GetHealthCheck(ctx context.Context, id uuid.UUID) (*model.HealthCheck, error) {
	hc, err := s.store.HealthChecks.Get(ctx, id, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	return hc, nil
}

// ListHealthChecks reports NotFound when no health check matches
func (s *Service) ListHealthChecks(ctx context.Context, filter model.HealthCheckFilter) ([]*model.HealthCheck, error) {
	checks, err := s.store.HealthChecks.List(ctx, filter, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if len(checks) == 0 {
		return nil, apperrors.NotFound("health checks", nil)
	}
	return checks, nil
}

func (s *Service) UpdateHealthCheck(ctx context.Context, id uuid.UUID, req model.HealthCheckRequest) (*model.HealthCheck, error) {
	hc, err := s.store.HealthChecks.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	if err := s.prepare(ctx, &req); err != nil {
		return nil, err
	}

	apply(hc, req)
	hc.Touch()
	if err := s.store.HealthChecks.Update(ctx, hc); err != nil {
		return nil, service.StoreError(resource, err)
	}

	updated, err := s.store.HealthChecks.Get(ctx, id, relations...)
	if err != nil {
		return nil, service.StoreError(resource, err)
	}
	s.events.Publish(ctx, eventResource, event.Updated, updated.ID, updated)
	return updated, nil
}

func (s *Service) DeleteHealthCheck(ctx context.Context, id uuid.UUID) error {
	if err := s.store.HealthChecks.Delete(ctx, id); err != nil {
		return service.StoreError(resource, err)
	}
	s.events.Publish(ctx, eventResource, event.Deleted, id, nil)
	return nil
}

func (s *Service) prepare(ctx context.Context, req *model.HealthCheckRequest) error {
	req.Normalize()

	if req.PatientID != uuid.Nil {
		if _, err := s.store.Patients.Get(ctx, req.PatientID); err != nil {
			return service.StoreError("patient", err)
		}
	}
	if req.LabDoctorID != uuid.Nil {
		doctor, err := s.store.Users.Get(ctx, req.LabDoctorID)
		if err != nil {
			return service.StoreError("lab doctor", err)
		}
		if doctor.Role != model.RoleLabDoctor {
			return apperrors.InvalidInput("user is not a lab doctor", apperrors.FieldError{
				Field:   "labDoctorId",
				Message: "must reference a user with role " + string(model.RoleLabDoctor),
			})
		}
	}
	if len(req.Diseases) > 0 {
		found, err := s.store.Diseases.GetMany(ctx, req.Diseases)
		if err != nil {
			return apperrors.Internal(err)
		}
		if len(found) != len(req.Diseases) {
			return apperrors.NotFound("one or more diseases", nil)
		}
	}

	return s.validator.Validate(req)
}

func apply(hc *model.HealthCheck, req model.HealthCheckRequest) {
	hc.PatientID = req.PatientID
	hc.LabDoctorID = req.LabDoctorID
	hc.Signs = pq.StringArray(append([]string(nil), req.Signs...))
	hc.DiseaseIDs = append([]uuid.UUID(nil), req.Diseases...)
}
