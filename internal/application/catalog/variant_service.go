package catalog

import (
	"context"
	"fmt"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/telemetry"
	"github.com/google/uuid"
)

// Generation modes
const (
	GenerateModeReplace = "replace"
	GenerateModeMerge   = "merge"
)

// ProductPriceChecker reports whether a product carries at least one
// enabled product-tier channel price config. Generation requires one so
// freshly created variants have a price to inherit.
type ProductPriceChecker interface {
	HasEnabledProductConfig(ctx context.Context, restaurantID, productID uuid.UUID) (bool, error)
}

// VariantService handles variant generation, lifecycle and repair
type VariantService struct {
	productRepo     catalog.ProductRepository
	attributeRepo   catalog.AttributeRepository
	variantRepo     catalog.VariantRepository
	priceChecker    ProductPriceChecker
	invalidator     PriceResolutionInvalidator
	maxCombinations int
	previewLimit    int
}

// VariantServiceOption configures a VariantService
type VariantServiceOption func(*VariantService)

// WithGenerationLimits overrides the combination ceiling and the
// preview name cap
func WithGenerationLimits(maxCombinations, previewLimit int) VariantServiceOption {
	return func(s *VariantService) {
		if maxCombinations > 0 {
			s.maxCombinations = maxCombinations
		}
		if previewLimit > 0 {
			s.previewLimit = previewLimit
		}
	}
}

// NewVariantService creates a new VariantService. invalidator may be
// nil.
func NewVariantService(
	productRepo catalog.ProductRepository,
	attributeRepo catalog.AttributeRepository,
	variantRepo catalog.VariantRepository,
	priceChecker ProductPriceChecker,
	invalidator PriceResolutionInvalidator,
	opts ...VariantServiceOption,
) *VariantService {
	s := &VariantService{
		productRepo:     productRepo,
		attributeRepo:   attributeRepo,
		variantRepo:     variantRepo,
		priceChecker:    priceChecker,
		invalidator:     invalidator,
		maxCombinations: catalog.DefaultMaxCombinations,
		previewLimit:    catalog.DefaultPreviewLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// valueLabels maps every selected value to its label, keeping attribute
// pick order intact for name derivation.
type valueLabels map[uuid.UUID]string

// resolveSelections loads the selected attributes and checks every
// value against them: the attribute must exist and be active, and each
// value must belong to its attribute and be active.
func (s *VariantService) resolveSelections(ctx context.Context, restaurantID uuid.UUID, selections []catalog.DraftSelection) (valueLabels, error) {
	attributeIDs := make([]uuid.UUID, len(selections))
	for i, sel := range selections {
		attributeIDs[i] = sel.AttributeID
	}

	attributes, err := s.attributeRepo.FindByIDsForRestaurant(ctx, restaurantID, attributeIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Attribute, len(attributes))
	for i := range attributes {
		byID[attributes[i].ID] = &attributes[i]
	}

	labels := make(valueLabels)
	for _, sel := range selections {
		attribute, ok := byID[sel.AttributeID]
		if !ok {
			return nil, shared.NewDomainError(shared.ErrCodeValidation, "Selected attribute does not exist")
		}
		if !attribute.IsActive() {
			return nil, shared.NewDomainError(shared.ErrCodeValidation,
				fmt.Sprintf("Attribute %q is inactive and cannot be used for generation", attribute.Name))
		}
		for _, valueID := range sel.ValueIDs {
			value := attribute.FindValue(valueID)
			if value == nil {
				return nil, shared.NewDomainError(shared.ErrCodeValidation,
					fmt.Sprintf("Selected value does not belong to attribute %q", attribute.Name))
			}
			if !value.IsActive() {
				return nil, shared.NewDomainError(shared.ErrCodeValidation,
					fmt.Sprintf("Value %q of attribute %q is inactive", value.Label, attribute.Name))
			}
			labels[valueID] = value.Label
		}
	}
	return labels, nil
}

func toDraftSelections(reqs []GenerateSelectionRequest) []catalog.DraftSelection {
	selections := make([]catalog.DraftSelection, len(reqs))
	for i, r := range reqs {
		selections[i] = catalog.DraftSelection{AttributeID: r.AttributeID, ValueIDs: r.ValueIDs}
	}
	return selections
}

func comboName(productName string, combo []catalog.SelectionPair, labels valueLabels) string {
	names := make([]string, len(combo))
	for i, pair := range combo {
		names[i] = labels[pair.ValueID]
	}
	return catalog.DeriveVariantName(productName, names)
}

// Preview returns the combination count and the first derived names a
// generation run would produce. It never writes; the same expansion
// drives the later generation, so the preview cannot drift from it.
func (s *VariantService) Preview(ctx context.Context, restaurantID, productID uuid.UUID, req GenerateVariantsRequest) (*PreviewVariantsResponse, error) {
	product, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}

	selections := toDraftSelections(req.Selections)
	if err := catalog.ValidateDraftSelections(selections); err != nil {
		return nil, err
	}
	labels, err := s.resolveSelections(ctx, restaurantID, selections)
	if err != nil {
		return nil, err
	}

	total := catalog.CombinationCount(selections)
	combos := catalog.ExpandCombinations(selections)

	limit := s.previewLimit
	truncated := total > limit
	if !truncated {
		limit = total
	}
	names := make([]string, limit)
	for i := 0; i < limit; i++ {
		names[i] = comboName(product.Name, combos[i], labels)
	}

	return &PreviewVariantsResponse{Total: total, Names: names, Truncated: truncated}, nil
}

// Generate expands the selections into variants and persists them.
// Replace mode discards every existing variant of the product, channel
// overrides included. Merge mode, the default, keeps existing variants
// and inserts only combinations whose selection key is new. The
// combination ceiling is checked before anything is written.
func (s *VariantService) Generate(ctx context.Context, restaurantID, productID uuid.UUID, req GenerateVariantsRequest) (*GenerateVariantsResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "variant", "generate",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, productID))
	defer span.End()

	resp, err := s.generate(ctx, restaurantID, productID, req)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span,
		"mode", resp.Mode,
		telemetry.SpanAttrVariantCount, resp.Created,
		"skipped", resp.Skipped,
	)
	telemetry.SetOK(span)
	return resp, nil
}

func (s *VariantService) generate(ctx context.Context, restaurantID, productID uuid.UUID, req GenerateVariantsRequest) (*GenerateVariantsResponse, error) {
	product, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}

	selections := toDraftSelections(req.Selections)
	if err := catalog.ValidateDraftSelections(selections); err != nil {
		return nil, err
	}
	labels, err := s.resolveSelections(ctx, restaurantID, selections)
	if err != nil {
		return nil, err
	}

	hasPrice, err := s.priceChecker.HasEnabledProductConfig(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}
	if !hasPrice {
		return nil, shared.NewDomainError(shared.ErrCodePreconditionFailed,
			"Product needs at least one enabled channel price before variants can be generated")
	}

	total := catalog.CombinationCount(selections)
	if total > s.maxCombinations {
		return nil, shared.NewDomainError(shared.ErrCodeTooManyCombinations,
			fmt.Sprintf("Selection expands to %d combinations; the ceiling is %d", total, s.maxCombinations))
	}

	// An omitted mode must never wipe the product's variants
	mode := req.Mode
	if mode == "" {
		mode = GenerateModeMerge
	}

	existing := map[string]uuid.UUID{}
	if mode == GenerateModeMerge {
		existing, err = s.variantRepo.SelectionKeysByProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
	}

	combos := catalog.ExpandCombinations(selections)
	variants := make([]*catalog.Variant, 0, len(combos))
	skipped := 0
	for _, combo := range combos {
		if mode == GenerateModeMerge {
			if _, ok := existing[catalog.SelectionKeyFor(combo)]; ok {
				skipped++
				continue
			}
		}
		variant, err := catalog.NewVariant(restaurantID, productID, comboName(product.Name, combo, labels), combo)
		if err != nil {
			return nil, err
		}
		if req.CreatedBy != nil {
			variant.SetCreatedBy(*req.CreatedBy)
		}
		variants = append(variants, variant)
	}

	switch mode {
	case GenerateModeReplace:
		err = s.variantRepo.ReplaceForProduct(ctx, productID, variants)
	default:
		err = s.variantRepo.InsertBatch(ctx, variants)
	}
	if err != nil {
		return nil, err
	}
	invalidateResolutions(ctx, s.invalidator, productID)

	responses := make([]VariantResponse, len(variants))
	for i, v := range variants {
		responses[i] = ToVariantResponse(v)
	}
	return &GenerateVariantsResponse{
		Mode:     mode,
		Total:    total,
		Created:  len(variants),
		Skipped:  skipped,
		Variants: responses,
	}, nil
}

// ListByProduct returns the variants of a product
func (s *VariantService) ListByProduct(ctx context.Context, restaurantID, productID uuid.UUID, filter shared.Filter) ([]VariantResponse, error) {
	variants, err := s.variantRepo.FindByProduct(ctx, restaurantID, productID, filter)
	if err != nil {
		return nil, err
	}
	return ToVariantResponses(variants), nil
}

// Get returns one variant with its selections
func (s *VariantService) Get(ctx context.Context, restaurantID, variantID uuid.UUID) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, variantID)
	if err != nil {
		return nil, err
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// SetEnabled toggles a variant on or off sale. Enabling an invalid
// variant is refused. Cached resolutions of the product are dropped so
// the flag takes effect immediately.
func (s *VariantService) SetEnabled(ctx context.Context, restaurantID, variantID uuid.UUID, enabled bool) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, variantID)
	if err != nil {
		return nil, err
	}

	if enabled {
		if err := variant.Enable(); err != nil {
			return nil, err
		}
	} else {
		variant.Disable()
	}

	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	invalidateResolutions(ctx, s.invalidator, variant.ProductID)

	response := ToVariantResponse(variant)
	return &response, nil
}

// SetDefault marks or unmarks a variant as the product default. When
// marking, the previous default is cleared in the same transaction;
// unmarking leaves the product without a default.
func (s *VariantService) SetDefault(ctx context.Context, restaurantID, variantID uuid.UUID, isDefault bool) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, variantID)
	if err != nil {
		return nil, err
	}

	if isDefault {
		if err := variant.MarkDefault(); err != nil {
			return nil, err
		}
		if err := s.variantRepo.SetDefault(ctx, variant.ProductID, variant.ID); err != nil {
			return nil, err
		}
	} else {
		variant.UnmarkDefault()
		if err := s.variantRepo.Save(ctx, variant); err != nil {
			return nil, err
		}
	}

	response := ToVariantResponse(variant)
	return &response, nil
}

// Delete removes a variant with its selections and channel overrides
func (s *VariantService) Delete(ctx context.Context, restaurantID, variantID uuid.UUID) error {
	variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, variantID)
	if err != nil {
		return err
	}

	if err := s.variantRepo.Delete(ctx, variant); err != nil {
		return err
	}
	invalidateResolutions(ctx, s.invalidator, variant.ProductID)
	return nil
}

// Repair replaces the selection set of a variant and clears its invalid
// state. The new set must validate against the live attribute catalog
// and must not collide with another variant of the product; on any
// failure the variant is left untouched.
func (s *VariantService) Repair(ctx context.Context, restaurantID, variantID uuid.UUID, req RepairVariantRequest) (*VariantResponse, error) {
	variant, err := s.variantRepo.FindByIDForRestaurant(ctx, restaurantID, variantID)
	if err != nil {
		return nil, err
	}
	product, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, variant.ProductID)
	if err != nil {
		return nil, err
	}

	pairs := make([]catalog.SelectionPair, len(req.Selections))
	selections := make([]catalog.DraftSelection, len(req.Selections))
	for i, sel := range req.Selections {
		pairs[i] = catalog.SelectionPair{AttributeID: sel.AttributeID, ValueID: sel.ValueID}
		selections[i] = catalog.DraftSelection{AttributeID: sel.AttributeID, ValueIDs: []uuid.UUID{sel.ValueID}}
	}
	if err := catalog.ValidateDraftSelections(selections); err != nil {
		return nil, err
	}
	labels, err := s.resolveSelections(ctx, restaurantID, selections)
	if err != nil {
		return nil, err
	}

	newKey := catalog.SelectionKeyFor(pairs)
	if newKey != variant.SelectionKey {
		exists, err := s.variantRepo.ExistsBySelectionKey(ctx, variant.ProductID, newKey, variant.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError(shared.ErrCodeDuplicateVariant, "Another variant of this product already has this selection")
		}
	}

	if err := variant.Repair(comboName(product.Name, pairs, labels), pairs, req.Activate); err != nil {
		return nil, err
	}
	if err := s.variantRepo.Save(ctx, variant); err != nil {
		return nil, err
	}
	invalidateResolutions(ctx, s.invalidator, variant.ProductID)

	response := ToVariantResponse(variant)
	return &response, nil
}
