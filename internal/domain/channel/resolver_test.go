package channel

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceOf(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func overrideRow(enabled bool, price *decimal.Decimal) *VariantChannelOverride {
	return &VariantChannelOverride{IsEnabled: enabled, Price: price}
}

func productRow(enabled bool, price *decimal.Decimal) *ChannelPriceConfig {
	return &ChannelPriceConfig{IsEnabled: enabled, Price: price}
}

func TestResolve(t *testing.T) {
	enabledVariant := &VariantState{IsEnabled: true}

	tests := []struct {
		name        string
		in          ResolveInput
		wantVisible bool
		wantPrice   string
		wantOrigin  PriceOrigin
	}{
		{
			name: "invalid variant hidden before everything",
			in: ResolveInput{
				Variant:             &VariantState{IsEnabled: true, IsInvalid: true},
				BranchChannelActive: true,
				Override:            overrideRow(true, priceOf("95.00")),
				ProductConfig:       productRow(true, priceOf("80.00")),
			},
			wantOrigin: PriceOriginNone,
		},
		{
			name: "disabled variant hidden even with enabled override",
			in: ResolveInput{
				Variant:             &VariantState{IsEnabled: false},
				BranchChannelActive: true,
				Override:            overrideRow(true, priceOf("95.00")),
			},
			wantOrigin: PriceOriginNone,
		},
		{
			name: "inactive branch channel hides everything",
			in: ResolveInput{
				Variant:             enabledVariant,
				BranchChannelActive: false,
				Override:            overrideRow(true, priceOf("95.00")),
				ProductConfig:       productRow(true, priceOf("80.00")),
			},
			wantOrigin: PriceOriginNone,
		},
		{
			name: "enabled override wins over product tier",
			in: ResolveInput{
				Variant:             enabledVariant,
				BranchChannelActive: true,
				Override:            overrideRow(true, priceOf("95.00")),
				ProductConfig:       productRow(true, priceOf("80.00")),
			},
			wantVisible: true,
			wantPrice:   "95.00",
			wantOrigin:  PriceOriginVariant,
		},
		{
			name: "disabled override hides despite enabled product config",
			in: ResolveInput{
				Variant:             enabledVariant,
				BranchChannelActive: true,
				Override:            overrideRow(false, nil),
				ProductConfig:       productRow(true, priceOf("80.00")),
			},
			wantOrigin: PriceOriginVariant,
		},
		{
			name: "no override falls back to product tier",
			in: ResolveInput{
				Variant:             enabledVariant,
				BranchChannelActive: true,
				ProductConfig:       productRow(true, priceOf("80.00")),
			},
			wantVisible: true,
			wantPrice:   "80.00",
			wantOrigin:  PriceOriginProduct,
		},
		{
			name: "disabled product config hides",
			in: ResolveInput{
				Variant:             enabledVariant,
				BranchChannelActive: true,
				ProductConfig:       productRow(false, nil),
			},
			wantOrigin: PriceOriginNone,
		},
		{
			name: "no rows at all hides",
			in: ResolveInput{
				Variant:             enabledVariant,
				BranchChannelActive: true,
			},
			wantOrigin: PriceOriginNone,
		},
		{
			name: "product resolved directly without variant",
			in: ResolveInput{
				BranchChannelActive: true,
				ProductConfig:       productRow(true, priceOf("80.00")),
			},
			wantVisible: true,
			wantPrice:   "80.00",
			wantOrigin:  PriceOriginProduct,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.in)

			assert.Equal(t, tt.wantVisible, got.Visible)
			assert.Equal(t, tt.wantOrigin, got.Origin)
			if tt.wantPrice != "" {
				require.NotNil(t, got.Price)
				assert.True(t, got.Price.Equal(decimal.RequireFromString(tt.wantPrice)))
			}
		})
	}
}

func TestResolve_OverrideRemovalFallsThrough(t *testing.T) {
	variant := &VariantState{IsEnabled: true}
	config := productRow(true, priceOf("80.00"))

	withOverride := Resolve(ResolveInput{
		Variant:             variant,
		BranchChannelActive: true,
		Override:            overrideRow(true, priceOf("95.00")),
		ProductConfig:       config,
	})
	withoutOverride := Resolve(ResolveInput{
		Variant:             variant,
		BranchChannelActive: true,
		ProductConfig:       config,
	})

	assert.Equal(t, PriceOriginVariant, withOverride.Origin)
	assert.Equal(t, PriceOriginProduct, withoutOverride.Origin)
	require.NotNil(t, withoutOverride.Price)
	assert.True(t, withoutOverride.Price.Equal(decimal.RequireFromString("80.00")))
}

func TestValidatePriceRow(t *testing.T) {
	_, err := NewChannelPriceConfig(uuid.New(), uuid.New(), uuid.New(), true, nil)
	assert.Error(t, err, "enabled without price")

	negative := decimal.RequireFromString("-1")
	_, err = NewVariantChannelOverride(uuid.New(), uuid.New(), uuid.New(), false, &negative)
	assert.Error(t, err, "negative price")

	_, err = NewChannelPriceConfig(uuid.New(), uuid.New(), uuid.New(), false, nil)
	assert.NoError(t, err, "disabled without price")

	zero := decimal.Zero
	_, err = NewVariantChannelOverride(uuid.New(), uuid.New(), uuid.New(), true, &zero)
	assert.NoError(t, err, "zero price allowed")
}

func TestBranchSalesChannel_SetActive(t *testing.T) {
	bc, err := NewBranchSalesChannel(uuid.New(), uuid.New(), uuid.New(), "Uber Eats")
	require.NoError(t, err)
	require.True(t, bc.IsActive)
	version := bc.Version

	bc.SetActive(true)
	assert.Equal(t, version, bc.Version, "no-op toggle keeps version")

	bc.SetActive(false)
	assert.False(t, bc.IsActive)
	assert.Equal(t, version+1, bc.Version)
}
