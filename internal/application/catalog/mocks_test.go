package catalog

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, restaurantID, filter)
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, restaurantID, id uuid.UUID) error {
	args := m.Called(ctx, restaurantID, id)
	return args.Error(0)
}

func (m *MockProductRepository) CountForRestaurant(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, restaurantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

// MockAttributeRepository is a mock implementation of AttributeRepository
type MockAttributeRepository struct {
	mock.Mock
}

func (m *MockAttributeRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Attribute, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*catalog.Attribute, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) FindByIDsForRestaurant(ctx context.Context, restaurantID uuid.UUID, ids []uuid.UUID) ([]catalog.Attribute, error) {
	args := m.Called(ctx, restaurantID, ids)
	return args.Get(0).([]catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) FindAllForRestaurant(ctx context.Context, restaurantID uuid.UUID, onlyActive bool) ([]catalog.Attribute, error) {
	args := m.Called(ctx, restaurantID, onlyActive)
	return args.Get(0).([]catalog.Attribute), args.Error(1)
}

func (m *MockAttributeRepository) Save(ctx context.Context, attribute *catalog.Attribute) error {
	args := m.Called(ctx, attribute)
	return args.Error(0)
}

func (m *MockAttributeRepository) ExistsByName(ctx context.Context, restaurantID uuid.UUID, name string) (bool, error) {
	args := m.Called(ctx, restaurantID, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttributeRepository) DeleteWithCascade(ctx context.Context, attribute *catalog.Attribute) ([]uuid.UUID, error) {
	args := m.Called(ctx, attribute)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockAttributeRepository) DeleteValueWithCascade(ctx context.Context, attribute *catalog.Attribute, value *catalog.AttributeValue) ([]uuid.UUID, error) {
	args := m.Called(ctx, attribute, value)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockProductPriceChecker is a mock implementation of ProductPriceChecker
type MockProductPriceChecker struct {
	mock.Mock
}

func (m *MockProductPriceChecker) HasEnabledProductConfig(ctx context.Context, restaurantID, productID uuid.UUID) (bool, error) {
	args := m.Called(ctx, restaurantID, productID)
	return args.Bool(0), args.Error(1)
}

// MockResolutionInvalidator is a mock implementation of PriceResolutionInvalidator
type MockResolutionInvalidator struct {
	mock.Mock
}

func (m *MockResolutionInvalidator) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockVariantRepository is a mock implementation of VariantRepository
type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByIDForRestaurant(ctx context.Context, restaurantID, id uuid.UUID) (*catalog.Variant, error) {
	args := m.Called(ctx, restaurantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) FindByProduct(ctx context.Context, restaurantID, productID uuid.UUID, filter shared.Filter) ([]catalog.Variant, error) {
	args := m.Called(ctx, restaurantID, productID, filter)
	return args.Get(0).([]catalog.Variant), args.Error(1)
}

func (m *MockVariantRepository) SelectionKeysByProduct(ctx context.Context, productID uuid.UUID) (map[string]uuid.UUID, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(map[string]uuid.UUID), args.Error(1)
}

func (m *MockVariantRepository) ExistsBySelectionKey(ctx context.Context, productID uuid.UUID, key string, excludeID uuid.UUID) (bool, error) {
	args := m.Called(ctx, productID, key, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVariantRepository) InsertBatch(ctx context.Context, variants []*catalog.Variant) error {
	args := m.Called(ctx, variants)
	return args.Error(0)
}

func (m *MockVariantRepository) ReplaceForProduct(ctx context.Context, productID uuid.UUID, variants []*catalog.Variant) error {
	args := m.Called(ctx, productID, variants)
	return args.Error(0)
}

func (m *MockVariantRepository) Save(ctx context.Context, variant *catalog.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) SetDefault(ctx context.Context, productID, variantID uuid.UUID) error {
	args := m.Called(ctx, productID, variantID)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, variant *catalog.Variant) error {
	args := m.Called(ctx, variant)
	return args.Error(0)
}

func (m *MockVariantRepository) CountByProduct(ctx context.Context, productID uuid.UUID) (int64, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(int64), args.Error(1)
}
