package prescription

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

const (
	lineItemResource      = "prescription medicine"
	lineItemEventResource = "prescriptionMedicine"
)

var lineItemRelations = []model.Relation{model.RelPrescription, model.RelMedicine}

type LineItemServicer interface {
	CreateLineItem(ctx context.Context, req model.PrescriptionMedicineRequest) (*model.PrescriptionMedicine, error)
	GetLineItem(ctx context.Context, id uuid.UUID) (*model.PrescriptionMedicine, error)
	ListLineItems(ctx context.Context, filter model.PrescriptionMedicineFilter) ([]*model.PrescriptionMedicine, error)
	UpdateLineItem(ctx context.Context, id uuid.UUID, req model.PrescriptionMedicineRequest) (*model.PrescriptionMedicine, error)
	DeleteLineItem(ctx context.Context, id uuid.UUID) error
}

// LineItemService manages the medicines listed on a prescription
type LineItemService struct {
	store     *repository.Store
	validator *validator.Validator
	events    event.Publisher
}

func NewLineItemService(store *repository.Store, v *validator.Validator, events event.Publisher) *LineItemService {
	return &LineItemService{
		store:     store,
		validator: v,
		events:    events,
	}
}

func (s *LineItemService) CreateLineItem(ctx context.Context, req model.PrescriptionMedicineRequest) (*model.PrescriptionMedicine, error) {
	if err := s.prepare(ctx, &req, uuid.Nil); err != nil {
		return nil, err
	}

	item := &model.PrescriptionMedicine{Base: model.NewBase()}
	applyLineItem(item, req)
	if err := s.store.PrescriptionMedicines.Create(ctx, item); err != nil {
		return nil, service.StoreError(lineItemResource, err)
	}

	s.events.Publish(ctx, lineItemEventResource, event.Created, item.ID, item)
	return item, nil
}

func (s *LineItemService) GetLineItem(ctx context.Context, id uuid.UUID) (*model.PrescriptionMedicine, error) {
	item, err := s.store.PrescriptionMedicines.Get(ctx, id, lineItemRelations...)
	if err != nil {
		return nil, service.StoreError(lineItemResource, err)
	}
	return item, nil
}

// ListLineItems reports NotFound when no line item matches
func (s *LineItemService) ListLineItems(ctx context.Context, filter model.PrescriptionMedicineFilter) ([]*model.PrescriptionMedicine, error) {
	items, err := s.store.PrescriptionMedicines.List(ctx, filter, lineItemRelations...)
	if err != nil {
		return nil, service.StoreError(lineItemResource, err)
	}
	if len(items) == 0 {
		return nil, apperrors.NotFound("prescription medicines", nil)
	}
	return items, nil
}

func (s *LineItemService) UpdateLineItem(ctx context.Context, id uuid.UUID, req model.PrescriptionMedicineRequest) (*model.PrescriptionMedicine, error) {
	item, err := s.store.PrescriptionMedicines.Get(ctx, id)
	if err != nil {
		return nil, service.StoreError(lineItemResource, err)
	}
	if err := s.prepare(ctx, &req, id); err != nil {
		return nil, err
	}

	applyLineItem(item, req)
	item.Touch()
	if err := s.store.PrescriptionMedicines.Update(ctx, item); err != nil {
		return nil, service.StoreError(lineItemResource, err)
	}

	s.events.Publish(ctx, lineItemEventResource, event.Updated, item.ID, item)
	return item, nil
}

func (s *LineItemService) DeleteLineItem(ctx context.Context, id uuid.UUID) error {
	if err := s.store.PrescriptionMedicines.Delete(ctx, id); err != nil {
		return service.StoreError(lineItemResource, err)
	}
	s.events.Publish(ctx, lineItemEventResource, event.Deleted, id, nil)
	return nil
}

func (s *LineItemService) prepare(ctx context.Context, req *model.PrescriptionMedicineRequest, excludeID uuid.UUID) error {
	req.Normalize()

	if req.PrescriptionID != uuid.Nil {
		if _, err := s.store.Prescriptions.Get(ctx, req.PrescriptionID); err != nil {
			return service.StoreError("prescription", err)
		}
	}
	if req.MedicineID != uuid.Nil {
		if _, err := s.store.Medicines.Get(ctx, req.MedicineID); err != nil {
			return service.StoreError("medicine", err)
		}
	}

	if req.PrescriptionID != uuid.Nil && req.MedicineID != uuid.Nil {
		found, err := s.store.PrescriptionMedicines.FindFirst(ctx, model.PrescriptionMedicineMatch{
			PrescriptionID: req.PrescriptionID,
			MedicineID:     req.MedicineID,
			ExcludeID:      excludeID,
		})
		err = service.Unique(found, err, func(*model.PrescriptionMedicine) []string {
			return []string{"prescriptionId", "medicineId"}
		}, lineItemResource)
		if err != nil {
			return err
		}
	}

	return s.validator.Validate(req)
}

func applyLineItem(item *model.PrescriptionMedicine, req model.PrescriptionMedicineRequest) {
	item.PrescriptionID = req.PrescriptionID
	item.MedicineID = req.MedicineID
	item.Dosage = req.Dosage
	item.Duration = req.Duration
	item.Quantity = req.Quantity
	item.Instructions = req.Instructions
}
