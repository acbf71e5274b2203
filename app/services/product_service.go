package services

import (
	"context"
	"fmt"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/app/repositories"
	"github.com/vitrine/backoffice/pkg/collection"
)

type ProductService struct {
	products *repositories.ProductRepository
}

func NewProductService(products *repositories.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

// Options returns the active products for the banner product picker.
func (s *ProductService) Options(ctx context.Context) ([]ProductRef, error) {
	products, err := s.products.Active(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collection.Map(products, func(p models.Product) ProductRef {
		return ProductRef{ID: p.ID, Name: p.Name}
	}), nil
}
