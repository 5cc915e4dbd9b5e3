package catalog

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByIDForRestaurant finds a product by ID within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Product, error)

	// FindAllForRestaurant finds all products for a restaurant
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// Delete deletes a product within a restaurant
	Delete(ctx context.Context, restaurantID, id uuid.UUID) error

	// CountForRestaurant counts products for a restaurant
	CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error)
}
