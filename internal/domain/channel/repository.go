package channel

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BranchChannelRepository defines the interface for branch sales
// channel persistence
type BranchChannelRepository interface {
	// FindByID finds a branch sales channel by ID
	FindByID(ctx context.Context, id uuid.UUID) (*BranchSalesChannel, error)

	// FindByIDForRestaurant finds a branch sales channel within a restaurant
	FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*BranchSalesChannel, error)

	// FindByBranch returns all sales channels of a branch
	FindByBranch(ctx context.Context, restaurantID, branchID uuid.UUID) ([]BranchSalesChannel, error)

	// FindAllForRestaurant returns all branch sales channels of a restaurant
	FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]BranchSalesChannel, error)

	// Exists checks whether the channel is already activated at the branch
	Exists(ctx context.Context, restaurantID, branchID, salesChannelID uuid.UUID) (bool, error)

	// Save creates or updates a branch sales channel
	Save(ctx context.Context, bc *BranchSalesChannel) error
}

// PriceWrite is one entry of a bulk price write. Remove=true deletes
// the row; otherwise the row is upserted with the given flag and price.
type PriceWrite struct {
	BranchSalesChannelID uuid.UUID
	Remove               bool
	IsEnabled            bool
	Price                *decimal.Decimal
}

// PriceRepository defines the interface for the two price tiers.
//
// The bulk write methods are transactional: every entry of the batch is
// applied in one transaction, so a batch is never observable half-written.
type PriceRepository interface {
	// FindProductConfigs returns the product-tier rows of a product,
	// optionally restricted to one set of branch sales channels
	FindProductConfigs(ctx context.Context, restaurantID, productID uuid.UUID, channelIDs []uuid.UUID) ([]ChannelPriceConfig, error)

	// FindVariantOverrides returns the variant-tier rows of a variant,
	// optionally restricted to one set of branch sales channels
	FindVariantOverrides(ctx context.Context, restaurantID, variantID uuid.UUID, channelIDs []uuid.UUID) ([]VariantChannelOverride, error)

	// ApplyProductWrites upserts and deletes product-tier rows in one
	// transaction
	ApplyProductWrites(ctx context.Context, restaurantID, productID uuid.UUID, writes []PriceWrite) error

	// ApplyVariantWrites upserts and deletes variant-tier rows in one
	// transaction
	ApplyVariantWrites(ctx context.Context, restaurantID, variantID uuid.UUID, writes []PriceWrite) error
}
