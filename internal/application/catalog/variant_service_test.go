package catalog

import (
	"context"
	"testing"

	channelapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/channel"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/infrastructure/cache"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type variantServiceFixture struct {
	service       *VariantService
	productRepo   *MockProductRepository
	attributeRepo *MockAttributeRepository
	variantRepo   *MockVariantRepository
	priceChecker  *MockProductPriceChecker

	restaurantID uuid.UUID
	product      *catalog.Product
	size         *catalog.Attribute
	sauce        *catalog.Attribute
}

func newVariantServiceFixture(t *testing.T) *variantServiceFixture {
	t.Helper()

	restaurantID := uuid.New()
	product, err := catalog.NewProduct(restaurantID, "Burger")
	require.NoError(t, err)

	size, err := catalog.NewAttribute(restaurantID, "Size")
	require.NoError(t, err)
	_, err = size.AddValue("Small")
	require.NoError(t, err)
	_, err = size.AddValue("Large")
	require.NoError(t, err)

	sauce, err := catalog.NewAttribute(restaurantID, "Sauce")
	require.NoError(t, err)
	_, err = sauce.AddValue("BBQ")
	require.NoError(t, err)
	_, err = sauce.AddValue("Mayo")
	require.NoError(t, err)
	_, err = sauce.AddValue("Chipotle")
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	attributeRepo := new(MockAttributeRepository)
	variantRepo := new(MockVariantRepository)
	priceChecker := new(MockProductPriceChecker)

	fixture := &variantServiceFixture{
		service:       NewVariantService(productRepo, attributeRepo, variantRepo, priceChecker, nil),
		productRepo:   productRepo,
		attributeRepo: attributeRepo,
		variantRepo:   variantRepo,
		priceChecker:  priceChecker,
		restaurantID:  restaurantID,
		product:       product,
		size:          size,
		sauce:         sauce,
	}
	return fixture
}

// withInvalidator rebuilds the fixture's service around the given
// resolution invalidator
func (f *variantServiceFixture) withInvalidator(inv PriceResolutionInvalidator) {
	f.service = NewVariantService(f.productRepo, f.attributeRepo, f.variantRepo, f.priceChecker, inv)
}

func (f *variantServiceFixture) generateRequest() GenerateVariantsRequest {
	return GenerateVariantsRequest{
		Selections: []GenerateSelectionRequest{
			{AttributeID: f.size.ID, ValueIDs: []uuid.UUID{f.size.Values[0].ID, f.size.Values[1].ID}},
			{AttributeID: f.sauce.ID, ValueIDs: []uuid.UUID{f.sauce.Values[0].ID, f.sauce.Values[1].ID, f.sauce.Values[2].ID}},
		},
	}
}

func (f *variantServiceFixture) expectCatalogLookups() {
	f.productRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, f.product.ID).Return(f.product, nil)
	f.attributeRepo.On("FindByIDsForRestaurant", mock.Anything, f.restaurantID, mock.Anything).
		Return([]catalog.Attribute{*f.size, *f.sauce}, nil)
}

func (f *variantServiceFixture) expectEnabledPriceConfig() {
	f.priceChecker.On("HasEnabledProductConfig", mock.Anything, f.restaurantID, f.product.ID).Return(true, nil)
}

func TestVariantService_Generate_Replace(t *testing.T) {
	f := newVariantServiceFixture(t)
	f.expectCatalogLookups()
	f.expectEnabledPriceConfig()

	var captured []*catalog.Variant
	f.variantRepo.On("ReplaceForProduct", mock.Anything, f.product.ID, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(2).([]*catalog.Variant)
		}).
		Return(nil)

	req := f.generateRequest()
	req.Mode = GenerateModeReplace
	resp, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, req)

	require.NoError(t, err)
	assert.Equal(t, GenerateModeReplace, resp.Mode)
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 6, resp.Created)
	assert.Equal(t, 0, resp.Skipped)
	require.Len(t, captured, 6)

	keys := make(map[string]bool)
	for _, v := range captured {
		assert.Equal(t, f.product.ID, v.ProductID)
		assert.Len(t, v.Selections, 2)
		assert.False(t, v.IsEnabled)
		keys[v.SelectionKey] = true
	}
	assert.Len(t, keys, 6)
	assert.Equal(t, "Burger - Small / BBQ", captured[0].Name)

	f.variantRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestVariantService_Generate_MergeSkipsExisting(t *testing.T) {
	f := newVariantServiceFixture(t)
	f.expectCatalogLookups()
	f.expectEnabledPriceConfig()

	existingKey := catalog.SelectionKeyFor([]catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	f.variantRepo.On("SelectionKeysByProduct", mock.Anything, f.product.ID).
		Return(map[string]uuid.UUID{existingKey: uuid.New()}, nil)

	var captured []*catalog.Variant
	f.variantRepo.On("InsertBatch", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).([]*catalog.Variant)
		}).
		Return(nil)

	req := f.generateRequest()
	req.Mode = GenerateModeMerge
	resp, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, req)

	require.NoError(t, err)
	assert.Equal(t, 6, resp.Total)
	assert.Equal(t, 5, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, captured, 5)
	for _, v := range captured {
		assert.NotEqual(t, existingKey, v.SelectionKey)
	}
	f.variantRepo.AssertNotCalled(t, "ReplaceForProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestVariantService_Generate_RequiresEnabledPriceConfig(t *testing.T) {
	f := newVariantServiceFixture(t)
	f.expectCatalogLookups()
	f.priceChecker.On("HasEnabledProductConfig", mock.Anything, f.restaurantID, f.product.ID).Return(false, nil)

	_, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, f.generateRequest())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodePreconditionFailed, domainErr.Code)
	f.variantRepo.AssertNotCalled(t, "ReplaceForProduct", mock.Anything, mock.Anything, mock.Anything)
	f.variantRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestVariantService_Generate_CeilingCheckedBeforeWrite(t *testing.T) {
	f := newVariantServiceFixture(t)

	bulk, err := catalog.NewAttribute(f.restaurantID, "Extra")
	require.NoError(t, err)
	valueIDs := make([]uuid.UUID, 0, 300)
	for i := 0; i < 300; i++ {
		v, err := bulk.AddValue("Extra " + uuid.NewString())
		require.NoError(t, err)
		valueIDs = append(valueIDs, v.ID)
	}

	f.productRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, f.product.ID).Return(f.product, nil)
	f.attributeRepo.On("FindByIDsForRestaurant", mock.Anything, f.restaurantID, mock.Anything).
		Return([]catalog.Attribute{*f.size, *bulk}, nil)
	f.expectEnabledPriceConfig()

	// 300 values times 2 sizes expands to 600 combinations.
	req := GenerateVariantsRequest{
		Selections: []GenerateSelectionRequest{
			{AttributeID: bulk.ID, ValueIDs: valueIDs},
			{AttributeID: f.size.ID, ValueIDs: []uuid.UUID{f.size.Values[0].ID, f.size.Values[1].ID}},
		},
	}

	_, err = f.service.Generate(context.Background(), f.restaurantID, f.product.ID, req)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeTooManyCombinations, domainErr.Code)
	f.variantRepo.AssertNotCalled(t, "ReplaceForProduct", mock.Anything, mock.Anything, mock.Anything)
	f.variantRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestVariantService_Generate_RejectsInactiveValue(t *testing.T) {
	f := newVariantServiceFixture(t)

	require.NoError(t, f.size.DeactivateValue(f.size.Values[0].ID))
	f.expectCatalogLookups()

	_, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, f.generateRequest())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeValidation, domainErr.Code)
}

func TestVariantService_Generate_OmittedModeMerges(t *testing.T) {
	f := newVariantServiceFixture(t)
	f.expectCatalogLookups()
	f.expectEnabledPriceConfig()

	f.variantRepo.On("SelectionKeysByProduct", mock.Anything, f.product.ID).
		Return(map[string]uuid.UUID{}, nil)
	f.variantRepo.On("InsertBatch", mock.Anything, mock.Anything).Return(nil)

	// Mode left empty on purpose
	resp, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, f.generateRequest())

	require.NoError(t, err)
	assert.Equal(t, GenerateModeMerge, resp.Mode)
	assert.Equal(t, 6, resp.Created)
	f.variantRepo.AssertNotCalled(t, "ReplaceForProduct", mock.Anything, mock.Anything, mock.Anything)
}

func TestVariantService_Generate_RejectsInactiveAttribute(t *testing.T) {
	f := newVariantServiceFixture(t)

	require.NoError(t, f.sauce.Deactivate())
	f.expectCatalogLookups()

	_, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, f.generateRequest())

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeValidation, domainErr.Code)
	f.variantRepo.AssertNotCalled(t, "ReplaceForProduct", mock.Anything, mock.Anything, mock.Anything)
	f.variantRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestVariantService_Generate_RejectsForeignValue(t *testing.T) {
	f := newVariantServiceFixture(t)
	f.expectCatalogLookups()

	req := f.generateRequest()
	req.Selections[0].ValueIDs = []uuid.UUID{uuid.New()}

	_, err := f.service.Generate(context.Background(), f.restaurantID, f.product.ID, req)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeValidation, domainErr.Code)
}

func TestVariantService_Preview(t *testing.T) {
	f := newVariantServiceFixture(t)
	f.expectCatalogLookups()

	resp, err := f.service.Preview(context.Background(), f.restaurantID, f.product.ID, f.generateRequest())

	require.NoError(t, err)
	assert.Equal(t, 6, resp.Total)
	assert.False(t, resp.Truncated)
	require.Len(t, resp.Names, 6)
	assert.Equal(t, "Burger - Small / BBQ", resp.Names[0])
	assert.Equal(t, "Burger - Small / Mayo", resp.Names[1])

	f.variantRepo.AssertNotCalled(t, "ReplaceForProduct", mock.Anything, mock.Anything, mock.Anything)
	f.variantRepo.AssertNotCalled(t, "InsertBatch", mock.Anything, mock.Anything)
}

func TestVariantService_SetEnabled_RefusesInvalid(t *testing.T) {
	f := newVariantServiceFixture(t)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)
	variant.Invalidate(catalog.InvalidReasonValueRemoved("Size", "Small"))

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)

	_, err = f.service.SetEnabled(context.Background(), f.restaurantID, variant.ID, true)

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodePreconditionFailed, domainErr.Code)
	f.variantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVariantService_SetEnabled_InvalidatesResolutions(t *testing.T) {
	f := newVariantServiceFixture(t)
	invalidator := new(MockResolutionInvalidator)
	f.withInvalidator(invalidator)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)
	require.NoError(t, variant.Enable())

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.variantRepo.On("Save", mock.Anything, variant).Return(nil)
	invalidator.On("InvalidateProduct", mock.Anything, f.product.ID).Return(nil)

	resp, err := f.service.SetEnabled(context.Background(), f.restaurantID, variant.ID, false)

	require.NoError(t, err)
	assert.False(t, resp.IsEnabled)
	invalidator.AssertExpectations(t)
}

func TestVariantService_Delete_InvalidatesResolutions(t *testing.T) {
	f := newVariantServiceFixture(t)
	invalidator := new(MockResolutionInvalidator)
	f.withInvalidator(invalidator)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.variantRepo.On("Delete", mock.Anything, variant).Return(nil)
	invalidator.On("InvalidateProduct", mock.Anything, f.product.ID).Return(nil)

	err = f.service.Delete(context.Background(), f.restaurantID, variant.ID)

	require.NoError(t, err)
	invalidator.AssertExpectations(t)
}

// Disabling a variant must evict stale resolutions, otherwise a branch
// keeps serving the variant as purchasable until the TTL runs out.
func TestVariantService_SetEnabled_DropsCachedResolution(t *testing.T) {
	f := newVariantServiceFixture(t)

	resolutionCache := cache.NewInMemoryResolutionCache()
	defer resolutionCache.Stop()
	f.withInvalidator(resolutionCache)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)
	require.NoError(t, variant.Enable())

	branchID := uuid.New()
	require.NoError(t, resolutionCache.Set(context.Background(), &channelapp.ResolvedPricesResponse{
		ProductID: f.product.ID,
		VariantID: &variant.ID,
		BranchID:  branchID,
		Prices: []channelapp.ResolvedPriceResponse{
			{ChannelName: "Dine-in", ChannelActive: true, Visible: true},
		},
	}))

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.variantRepo.On("Save", mock.Anything, variant).Return(nil)

	_, err = f.service.SetEnabled(context.Background(), f.restaurantID, variant.ID, false)
	require.NoError(t, err)

	cached, err := resolutionCache.Get(context.Background(), f.product.ID, &variant.ID, branchID)
	require.NoError(t, err)
	assert.Nil(t, cached, "a disabled variant must not keep serving a visible resolution")
}

func TestVariantService_Repair(t *testing.T) {
	f := newVariantServiceFixture(t)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)
	variant.Invalidate(catalog.InvalidReasonValueRemoved("Sauce", "BBQ"))

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.expectCatalogLookups()
	f.variantRepo.On("ExistsBySelectionKey", mock.Anything, f.product.ID, mock.Anything, variant.ID).Return(false, nil)
	f.variantRepo.On("Save", mock.Anything, variant).Return(nil)

	resp, err := f.service.Repair(context.Background(), f.restaurantID, variant.ID, RepairVariantRequest{
		Selections: []SelectionRequest{
			{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
			{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[1].ID},
		},
		Activate: true,
	})

	require.NoError(t, err)
	assert.False(t, resp.IsInvalid)
	assert.Nil(t, resp.InvalidReason)
	assert.True(t, resp.IsEnabled)
	assert.Equal(t, "Burger - Small / Mayo", resp.Name)
}

func TestVariantService_Repair_Collision(t *testing.T) {
	f := newVariantServiceFixture(t)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)
	variant.Invalidate(catalog.InvalidReasonValueRemoved("Sauce", "BBQ"))
	originalKey := variant.SelectionKey

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.expectCatalogLookups()
	f.variantRepo.On("ExistsBySelectionKey", mock.Anything, f.product.ID, mock.Anything, variant.ID).Return(true, nil)

	_, err = f.service.Repair(context.Background(), f.restaurantID, variant.ID, RepairVariantRequest{
		Selections: []SelectionRequest{
			{AttributeID: f.size.ID, ValueID: f.size.Values[1].ID},
			{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[1].ID},
		},
		Activate: true,
	})

	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, shared.ErrCodeDuplicateVariant, domainErr.Code)
	assert.True(t, variant.IsInvalid, "failed repair leaves the variant untouched")
	assert.Equal(t, originalKey, variant.SelectionKey)
	f.variantRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestVariantService_SetDefault(t *testing.T) {
	f := newVariantServiceFixture(t)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.variantRepo.On("SetDefault", mock.Anything, f.product.ID, variant.ID).Return(nil)

	resp, err := f.service.SetDefault(context.Background(), f.restaurantID, variant.ID, true)

	require.NoError(t, err)
	assert.True(t, resp.IsDefault)
	f.variantRepo.AssertExpectations(t)
}

func TestVariantService_SetDefault_Clear(t *testing.T) {
	f := newVariantServiceFixture(t)

	variant, err := catalog.NewVariant(f.restaurantID, f.product.ID, "Burger - Small / BBQ", []catalog.SelectionPair{
		{AttributeID: f.size.ID, ValueID: f.size.Values[0].ID},
		{AttributeID: f.sauce.ID, ValueID: f.sauce.Values[0].ID},
	})
	require.NoError(t, err)
	require.NoError(t, variant.MarkDefault())

	f.variantRepo.On("FindByIDForRestaurant", mock.Anything, f.restaurantID, variant.ID).Return(variant, nil)
	f.variantRepo.On("Save", mock.Anything, variant).Return(nil)

	resp, err := f.service.SetDefault(context.Background(), f.restaurantID, variant.ID, false)

	require.NoError(t, err)
	assert.False(t, resp.IsDefault)
	f.variantRepo.AssertNotCalled(t, "SetDefault", mock.Anything, mock.Anything, mock.Anything)
	f.variantRepo.AssertExpectations(t)
}
