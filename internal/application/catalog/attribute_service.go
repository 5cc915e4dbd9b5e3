package catalog

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// AttributeService handles attribute catalog operations
type AttributeService struct {
	attributeRepo catalog.AttributeRepository
	invalidator   PriceResolutionInvalidator
}

// NewAttributeService creates a new AttributeService. invalidator may
// be nil.
func NewAttributeService(attributeRepo catalog.AttributeRepository, invalidator PriceResolutionInvalidator) *AttributeService {
	return &AttributeService{attributeRepo: attributeRepo, invalidator: invalidator}
}

// Create creates a new attribute, optionally seeded with values
func (s *AttributeService) Create(ctx context.Context, restaurantID uuid.UUID, req CreateAttributeRequest) (*AttributeResponse, error) {
	exists, err := s.attributeRepo.ExistsByName(ctx, restaurantID, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError(shared.ErrCodeDuplicateName, "An attribute with this name already exists")
	}

	attribute, err := catalog.NewAttribute(restaurantID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		attribute.SetCreatedBy(*req.CreatedBy)
	}

	for _, v := range req.Values {
		if _, err := attribute.AddValue(v.Label); err != nil {
			return nil, err
		}
	}

	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// Get returns one attribute with its values
func (s *AttributeService) Get(ctx context.Context, restaurantID, attributeID uuid.UUID) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// List returns all attributes of a restaurant
func (s *AttributeService) List(ctx context.Context, restaurantID uuid.UUID, onlyActive bool) ([]AttributeResponse, error) {
	attributes, err := s.attributeRepo.FindAllForRestaurant(ctx, restaurantID, onlyActive)
	if err != nil {
		return nil, err
	}
	return ToAttributeResponses(attributes), nil
}

// ListValues returns the values of an attribute in display order
func (s *AttributeService) ListValues(ctx context.Context, restaurantID, attributeID uuid.UUID, onlyActive bool) ([]AttributeValueResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	if !onlyActive {
		return response.Values, nil
	}

	values := make([]AttributeValueResponse, 0, len(response.Values))
	for _, v := range response.Values {
		if v.Status == string(catalog.AttributeStatusActive) {
			values = append(values, v)
		}
	}
	return values, nil
}

// Update renames an attribute
func (s *AttributeService) Update(ctx context.Context, restaurantID, attributeID uuid.UUID, req UpdateAttributeRequest) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	if attribute.Name != req.Name {
		exists, err := s.attributeRepo.ExistsByName(ctx, restaurantID, req.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.ErrCodeDuplicateName, "An attribute with this name already exists")
		}
	}

	if err := attribute.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// Delete removes an attribute. Every variant selecting any of its
// values is invalidated in the same transaction, and the affected
// products lose their cached resolutions.
func (s *AttributeService) Delete(ctx context.Context, restaurantID, attributeID uuid.UUID) error {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return err
	}

	productIDs, err := s.attributeRepo.DeleteWithCascade(ctx, attribute)
	if err != nil {
		return err
	}
	telemetry.AddEvent(telemetry.SpanFromContext(ctx),
		"variants_invalidated", telemetry.SpanAttrAttributeID, attributeID)
	invalidateResolutions(ctx, s.invalidator, productIDs...)
	return nil
}

// AddValue appends a value to an attribute with the next sort position
func (s *AttributeService) AddValue(ctx context.Context, restaurantID, attributeID uuid.UUID, req CreateValueRequest) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	if _, err := attribute.AddValue(req.Label); err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// UpdateValue relabels a value
func (s *AttributeService) UpdateValue(ctx context.Context, restaurantID, attributeID, valueID uuid.UUID, req UpdateValueRequest) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	if err := attribute.UpdateValue(valueID, req.Label); err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// DeleteValue removes a value. Every variant selecting it is
// invalidated in the same transaction; other values keep their order.
// Affected products lose their cached resolutions.
func (s *AttributeService) DeleteValue(ctx context.Context, restaurantID, attributeID, valueID uuid.UUID) error {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return err
	}

	value, err := attribute.RemoveValue(valueID)
	if err != nil {
		return err
	}

	productIDs, err := s.attributeRepo.DeleteValueWithCascade(ctx, attribute, value)
	if err != nil {
		return err
	}
	telemetry.AddEvent(telemetry.SpanFromContext(ctx),
		"variants_invalidated", telemetry.SpanAttrAttributeID, attributeID)
	invalidateResolutions(ctx, s.invalidator, productIDs...)
	return nil
}

// SwapValueOrder exchanges the sort positions of two values
func (s *AttributeService) SwapValueOrder(ctx context.Context, restaurantID, attributeID uuid.UUID, req SwapValueOrderRequest) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	if err := attribute.SwapValueOrder(req.ValueID, req.OtherValueID); err != nil {
		return nil, err
	}
	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// SetActive flips an attribute between active and inactive. Existing
// variants are untouched; an inactive attribute is only rejected by new
// generation runs. Setting the current state again is a no-op.
func (s *AttributeService) SetActive(ctx context.Context, restaurantID, attributeID uuid.UUID, active bool) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	if active != attribute.IsActive() {
		if active {
			err = attribute.Activate()
		} else {
			err = attribute.Deactivate()
		}
		if err != nil {
			return nil, err
		}
		if err := s.attributeRepo.Save(ctx, attribute); err != nil {
			return nil, err
		}
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}

// SetValueActive flips a value between active and inactive. Inactive
// values stay referenced by existing variants but are excluded from new
// generation runs.
func (s *AttributeService) SetValueActive(ctx context.Context, restaurantID, attributeID, valueID uuid.UUID, active bool) (*AttributeResponse, error) {
	attribute, err := s.attributeRepo.FindByIDForRestaurant(ctx, restaurantID, attributeID)
	if err != nil {
		return nil, err
	}

	if active {
		err = attribute.ActivateValue(valueID)
	} else {
		err = attribute.DeactivateValue(valueID)
	}
	if err != nil {
		return nil, err
	}

	if err := s.attributeRepo.Save(ctx, attribute); err != nil {
		return nil, err
	}

	response := ToAttributeResponse(attribute)
	return &response, nil
}
