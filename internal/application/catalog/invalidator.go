package catalog

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// PriceResolutionInvalidator drops cached channel price resolutions of
// a product. The channel resolution caches satisfy it; nil disables
// invalidation.
type PriceResolutionInvalidator interface {
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error
}

// invalidateResolutions drops the cached resolutions of the given
// products after a catalog write changed what resolution may return.
// Cache errors are recorded on the active span and otherwise ignored;
// the write itself already succeeded.
func invalidateResolutions(ctx context.Context, inv PriceResolutionInvalidator, productIDs ...uuid.UUID) {
	if inv == nil {
		return
	}
	span := telemetry.SpanFromContext(ctx)
	for _, productID := range productIDs {
		if err := inv.InvalidateProduct(ctx, productID); err != nil {
			telemetry.AddEvent(span, "resolution_cache_invalidation_failed",
				telemetry.SpanAttrProductID, productID, "error", err.Error())
			continue
		}
		telemetry.AddEvent(span, "resolution_cache_invalidated",
			telemetry.SpanAttrProductID, productID)
	}
}
