package catalog

import (
	"context"

	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/catalog"
	"github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductService handles product operations
type ProductService struct {
	productRepo catalog.ProductRepository
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// Create creates a new product
func (s *ProductService) Create(ctx context.Context, restaurantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(restaurantID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		product.SetCreatedBy(*req.CreatedBy)
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Get returns one product
func (s *ProductService) Get(ctx context.Context, restaurantID, productID uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// List returns the products of a restaurant
func (s *ProductService) List(ctx context.Context, restaurantID uuid.UUID, filter shared.Filter) ([]ProductResponse, int64, error) {
	products, err := s.productRepo.FindAllForRestaurant(ctx, restaurantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.productRepo.CountForRestaurant(ctx, restaurantID, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses, total, nil
}

// Update applies partial changes to a product
func (s *ProductService) Update(ctx context.Context, restaurantID, productID uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByIDForRestaurant(ctx, restaurantID, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := product.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		product.SetSortOrder(*req.SortOrder)
	}
	if req.Status != nil {
		switch catalog.ProductStatus(*req.Status) {
		case catalog.ProductStatusActive:
			if !product.IsActive() {
				if err := product.Activate(); err != nil {
					return nil, err
				}
			}
		case catalog.ProductStatusInactive:
			if product.IsActive() {
				if err := product.Deactivate(); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}
