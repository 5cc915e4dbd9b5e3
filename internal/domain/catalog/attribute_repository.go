package catalog

import (
	"context"

	"github.com/google/uuid"
)

// AttributeRepository defines the interface for attribute persistence.
//
// The two delete methods are transactional: the delete and the cascading
// invalidation of dependent variants commit or roll back together, so no
// variant is ever observable with a dangling selection reference.
type AttributeRepository interface {
	// FindByID finds an attribute with its values by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Attribute, error)

	// FindByIDForRestaurant finds an attribute with its values within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Attribute, error)

	// FindByIDsForRestaurant finds multiple attributes with their values
	FindByIDsForRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]Attribute, error)

	// FindAllForRestaurant finds all attributes for a restaurant,
	// optionally restricted to active ones
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyActive bool) ([]Attribute, error)

	// Save creates or updates an attribute and synchronizes its value rows
	Save(ctx context.Context, attribute *Attribute) error

	// ExistsByName checks if an attribute with the given name exists in the restaurant
	ExistsByName(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error)

	// DeleteWithCascade deletes the attribute and all its values, and
	// invalidates every variant whose selection references the
	// attribute. It returns the distinct products owning the
	// invalidated variants.
	DeleteWithCascade(ctx context.Context, attribute *Attribute) ([]uuid.UUID, error)

	// DeleteValueWithCascade deletes a single value and invalidates every
	// variant whose selection references it, returning the distinct
	// products owning them. The value must already be detached from the
	// aggregate via Attribute.RemoveValue.
	DeleteValueWithCascade(ctx context.Context, attribute *Attribute, value *AttributeValue) ([]uuid.UUID, error)
}
