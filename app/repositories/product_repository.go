package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/pkg/orm"
)

// ProductRepository reads the product catalogue.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Active returns the active products ordered by name.
func (r *ProductRepository) Active(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := orm.New(r.db.WithContext(ctx)).
		Model(&models.Product{}).
		Where("active = ?", true).
		Order("name").
		Get(&products)
	return products, err
}

// ExistingIDs returns the subset of ids that exist.
func (r *ProductRepository) ExistingIDs(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var found []uint
	err := r.db.WithContext(ctx).Model(&models.Product{}).Where("id IN ?", ids).Pluck("id", &found).Error
	return found, err
}
