package channel

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/channel"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ResolutionCache caches resolved channel prices. Implementations live
// in the infrastructure layer; a nil-safe no-op is acceptable.
type ResolutionCache interface {
	// Get returns a cached resolution, or nil on miss
	Get(ctx context.Context, productID uuid.UUID, variantID *uuid.UUID, branchID uuid.UUID) (*ResolvedPricesResponse, error)

	// Set stores a resolution
	Set(ctx context.Context, resolution *ResolvedPricesResponse) error

	// InvalidateProduct drops every cached resolution of the product,
	// variants included
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error

	// InvalidateBranch drops every cached resolution scoped to the
	// branch. Used when the branch-level kill switch flips.
	InvalidateBranch(ctx context.Context, branchID uuid.UUID) error
}

// PriceService handles channel price reads and bulk writes
type PriceService struct {
	productRepo       catalog.ProductRepository
	variantRepo       catalog.VariantRepository
	branchChannelRepo channel.BranchChannelRepository
	priceRepo         channel.PriceRepository
	cache             ResolutionCache
	logger            *zap.Logger
}

// NewPriceService creates a new PriceService. cache may be nil.
func NewPriceService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	branchChannelRepo channel.BranchChannelRepository,
	priceRepo channel.PriceRepository,
	cache ResolutionCache,
	logger *zap.Logger,
) *PriceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PriceService{
		productRepo:       productRepo,
		variantRepo:       variantRepo,
		branchChannelRepo: branchChannelRepo,
		priceRepo:         priceRepo,
		cache:             cache,
		logger:            logger,
	}
}

// validateWrites checks the whole batch before anything touches
// storage: channel IDs must belong to the restaurant and appear at most
// once, and every enabled set needs a non-negative price.
func (s *PriceService) validateWrites(ctx context.Context, restaurantID uuid.UUID, items []PriceWriteRequest) ([]channel.PriceWrite, error) {
	channels, err := s.branchChannelRepo.FindAllForRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	known := make(map[uuid.UUID]bool, len(channels))
	for _, bc := range channels {
		known[bc.ID] = true
	}

	writes := make([]channel.PriceWrite, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !known[item.BranchSalesChannelID] {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "Unknown branch sales channel in price write")
		}
		if seen[item.BranchSalesChannelID] {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "Duplicate branch sales channel in price write")
		}
		seen[item.BranchSalesChannelID] = true

		if item.Mode == PriceWriteModeRemove {
			writes = append(writes, channel.PriceWrite{
				BranchSalesChannelID: item.BranchSalesChannelID,
				Remove:               true,
			})
			continue
		}

		if item.IsEnabled && item.Price == nil {
			return nil, shared.NewDomainError(shared.ErrCodeInvalidPrice, "An enabled channel price requires a price")
		}
		if item.Price != nil && item.Price.IsNegative() {
			return nil, shared.NewDomainError(shared.ErrCodeInvalidPrice, "Channel price cannot be negative")
		}
		writes = append(writes, channel.PriceWrite{
			BranchSalesChannelID: item.BranchSalesChannelID,
			IsEnabled:            item.IsEnabled,
			Price:                item.Price,
		})
	}
	return writes, nil
}

func countWrites(writes []channel.PriceWrite) (applied, removed int) {
	for _, w := range writes {
		if w.Remove {
			removed++
		} else {
			applied++
		}
	}
	return applied, removed
}

// SetProductPrices applies a bulk write to the product price tier,
// all-or-nothing
func (s *PriceService) SetProductPrices(ctx context.Context, restaurantID, productID uuid.UUID, req SetChannelPricesRequest) (*SetChannelPricesResponse, error) {
	if _, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, productID); err != nil {
		return nil, err
	}

	writes, err := s.validateWrites(ctx, restaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.ApplyProductWrites(ctx, restaurantID, productID, writes); err != nil {
		return nil, err
	}
	s.invalidate(ctx, productID)

	applied, removed := countWrites(writes)
	return &SetChannelPricesResponse{Applied: applied, Removed: removed}, nil
}

// SetVariantPrices applies a bulk write to the variant override tier,
// all-or-nothing. Writes against an invalid variant are refused.
func (s *PriceService) SetVariantPrices(ctx context.Context, restaurantID, variantID uuid.UUID, req SetChannelPricesRequest) (*SetChannelPricesResponse, error) {
	variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, variantID)
	if err != nil {
		return nil, err
	}
	if variant.IsInvalid {
		return nil, shared.NewDomainError(shared.ErrCodePreconditionFailed, "Channel prices cannot be edited on an invalid variant; repair it first")
	}

	writes, err := s.validateWrites(ctx, restaurantID, req.Items)
	if err != nil {
		return nil, err
	}

	if err := s.priceRepo.ApplyVariantWrites(ctx, restaurantID, variantID, writes); err != nil {
		return nil, err
	}
	s.invalidate(ctx, variant.ProductID)

	applied, removed := countWrites(writes)
	return &SetChannelPricesResponse{Applied: applied, Removed: removed}, nil
}

// GetChannelPrices resolves the product, or one of its variants, on
// every sales channel of a branch
func (s *PriceService) GetChannelPrices(ctx context.Context, restaurantID, productID uuid.UUID, variantID *uuid.UUID, branchID uuid.UUID) (*ResolvedPricesResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "price", "resolve",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID),
		telemetry.WithAttribute(telemetry.SpanAttrBranchID, branchID),
	)
	defer span.End()
	if variantID != nil {
		telemetry.SetAttribute(span, telemetry.SpanAttrVariantID, *variantID)
	}

	resolution, err := s.resolve(ctx, restaurantID, productID, variantID, branchID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, "channel_count", len(resolution.Prices))
	telemetry.SetOK(span)
	return resolution, nil
}

func (s *PriceService) resolve(ctx context.Context, restaurantID, productID uuid.UUID, variantID *uuid.UUID, branchID uuid.UUID) (*ResolvedPricesResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, productID, variantID, branchID)
		if err != nil {
			s.logger.Warn("resolution cache read failed", zap.Error(err))
		} else if cached != nil {
			telemetry.AddEvent(telemetry.SpanFromContext(ctx), "resolution_cache_hit")
			return cached, nil
		}
	}

	if _, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, productID); err != nil {
		return nil, err
	}

	var variantState *channel.VariantState
	if variantID != nil {
		variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, *variantID)
		if err != nil {
			return nil, err
		}
		if variant.ProductID != productID {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "Variant does not belong to the product")
		}
		variantState = &channel.VariantState{IsEnabled: variant.IsEnabled, IsInvalid: variant.IsInvalid}
	}

	channels, err := s.branchChannelRepo.FindByBranch(ctx, restaurantID, branchID)
	if err != nil {
		return nil, err
	}
	channelIDs := make([]uuid.UUID, len(channels))
	for i, bc := range channels {
		channelIDs[i] = bc.ID
	}

	configs, err := s.priceRepo.FindProductConfigs(ctx, restaurantID, productID, channelIDs)
	if err != nil {
		return nil, err
	}
	configByChannel := make(map[uuid.UUID]*channel.ChannelPriceConfig, len(configs))
	for i := range configs {
		configByChannel[configs[i].BranchSalesChannelID] = &configs[i]
	}

	overrideByChannel := map[uuid.UUID]*channel.VariantChannelOverride{}
	if variantID != nil {
		overrides, err := s.priceRepo.FindVariantOverrides(ctx, restaurantID, *variantID, channelIDs)
		if err != nil {
			return nil, err
		}
		for i := range overrides {
			overrideByChannel[overrides[i].BranchSalesChannelID] = &overrides[i]
		}
	}

	prices := make([]ResolvedPriceResponse, len(channels))
	for i, bc := range channels {
		resolution := channel.Resolve(channel.ResolveInput{
			Variant:             variantState,
			BranchChannelActive: bc.IsActive,
			Override:            overrideByChannel[bc.ID],
			ProductConfig:       configByChannel[bc.ID],
		})
		prices[i] = ResolvedPriceResponse{
			BranchSalesChannelID: bc.ID,
			ChannelName:          bc.Name,
			ChannelActive:        bc.IsActive,
			Visible:              resolution.Visible,
			Price:                resolution.Price,
			Origin:               string(resolution.Origin),
		}
	}

	resolution := &ResolvedPricesResponse{
		ProductID: productID,
		VariantID: variantID,
		BranchID:  branchID,
		Prices:    prices,
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, resolution); err != nil {
			s.logger.Warn("resolution cache write failed", zap.Error(err))
		}
	}
	return resolution, nil
}

func (s *PriceService) invalidate(ctx context.Context, productID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateProduct(ctx, productID); err != nil {
		s.logger.Warn("resolution cache invalidation failed",
			zap.String("product_id", productID.String()), zap.Error(err))
		return
	}
	telemetry.AddEvent(telemetry.SpanFromContext(ctx),
		"resolution_cache_invalidated", telemetry.SpanAttrProductID, productID)
}
