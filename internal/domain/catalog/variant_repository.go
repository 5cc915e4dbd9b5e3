package catalog

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// VariantRepository defines the interface for variant persistence.
//
// InsertBatch, ReplaceForProduct, Save and Delete are transactional over
// the variant rows and their selection rows (and, where stated, channel
// overrides): either everything commits or nothing does. Partial
// Cartesian insertion is a correctness bug.
type VariantRepository interface {
	// FindByID finds a variant with its selections by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Variant, error)

	// FindByIDForRestaurant finds a variant with its selections within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*Variant, error)

	// FindByProduct finds all variants of a product
	FindByProduct(ctx context.Context, restaurantID, productID uuid.UUID, filter shared.Filter) ([]Variant, error)

	// SelectionKeysByProduct returns the selection key of every existing
	// variant of the product, mapped to its variant ID. The generator
	// uses this to skip already-present combinations.
	SelectionKeysByProduct(ctx context.Context, productID uuid.UUID) (map[string]uuid.UUID, error)

	// ExistsBySelectionKey checks whether another variant of the product
	// already carries the given selection key. excludeID is skipped, so
	// repair can keep a variant's own key.
	ExistsBySelectionKey(ctx context.Context, productID uuid.UUID, key string, excludeID uuid.UUID) (bool, error)

	// InsertBatch inserts new variants with their selection rows in one
	// transaction
	InsertBatch(ctx context.Context, variants []*Variant) error

	// ReplaceForProduct deletes every existing variant of the product
	// (selections and channel overrides included) and inserts the given
	// set, all in one transaction
	ReplaceForProduct(ctx context.Context, productID uuid.UUID, variants []*Variant) error

	// Save updates a variant and synchronizes its selection rows in one
	// transaction
	Save(ctx context.Context, variant *Variant) error

	// SetDefault marks the variant as the product default and clears the
	// flag on every other variant of the product in one transaction
	SetDefault(ctx context.Context, productID, variantID uuid.UUID) error

	// Delete removes the variant with its selections and channel
	// overrides in one transaction
	Delete(ctx context.Context, variant *Variant) error

	// CountByProduct counts the variants of a product
	CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error)
}
