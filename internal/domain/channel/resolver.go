package channel

import (
	"github.com/shopspring/decimal"
)

// PriceOrigin names the tier a resolved price came from
type PriceOrigin string

const (
	// PriceOriginVariant means a variant-tier override decided the outcome
	PriceOriginVariant PriceOrigin = "variant"
	// PriceOriginProduct means the product-tier configuration decided it
	PriceOriginProduct PriceOrigin = "product"
	// PriceOriginNone means nothing made the item visible
	PriceOriginNone PriceOrigin = ""
)

// Resolution is the outcome of resolving one (variant|product, branch
// channel) pair: whether the item is visible on the channel, at what
// price, and which tier decided it.
type Resolution struct {
	Visible bool             `json:"visible"`
	Price   *decimal.Decimal `json:"price"`
	Origin  PriceOrigin      `json:"origin"`
}

// VariantState carries the variant flags the resolver needs. Nil input
// to Resolve means the product itself is being resolved, not a variant.
type VariantState struct {
	IsEnabled bool
	IsInvalid bool
}

// ResolveInput is everything channel price resolution depends on.
// Callers load the rows; Resolve never touches storage.
type ResolveInput struct {
	// Variant is nil when resolving the product tier directly
	Variant *VariantState
	// BranchChannelActive is the branch-level kill switch
	BranchChannelActive bool
	// Override is the variant-tier row, nil when the variant inherits
	Override *VariantChannelOverride
	// ProductConfig is the product-tier row, nil when none exists
	ProductConfig *ChannelPriceConfig
}

// Resolve computes channel visibility and price with strict precedence:
// an invalid or disabled variant is hidden before anything else, an
// inactive branch channel hides everything, a variant override wins
// verbatim over the product tier, and absence of both rows hides the
// item. Pure function; table-tested in isolation.
func Resolve(in ResolveInput) Resolution {
	if in.Variant != nil && (in.Variant.IsInvalid || !in.Variant.IsEnabled) {
		return Resolution{Visible: false, Origin: PriceOriginNone}
	}

	if !in.BranchChannelActive {
		return Resolution{Visible: false, Origin: PriceOriginNone}
	}

	if in.Override != nil {
		return Resolution{
			Visible: in.Override.IsEnabled,
			Price:   in.Override.Price,
			Origin:  PriceOriginVariant,
		}
	}

	if in.ProductConfig != nil && in.ProductConfig.IsEnabled {
		return Resolution{
			Visible: true,
			Price:   in.ProductConfig.Price,
			Origin:  PriceOriginProduct,
		}
	}

	return Resolution{Visible: false, Origin: PriceOriginNone}
}
