package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/pkg/orm"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindByID looks up an order with its lines and their products.
func (r *OrderRepository) FindByID(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := orm.New(r.db.WithContext(ctx)).
		Model(&models.Order{}).
		Preload("Products.Product").
		Where("id = ?", id).
		First(&order)
	return order, err
}

// Paginate lists orders newest first, optionally filtered by status.
func (r *OrderRepository) Paginate(ctx context.Context, page, limit int, status models.OrderStatus) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	p, err := orm.New(r.db.WithContext(ctx)).
		Model(&models.Order{}).
		WhereIf(status != 0, "status_order = ?", status).
		Preload("Products.Product").
		Order("selled_date desc, id desc").
		Paginate(page, limit, &orders)
	return orders, p, err
}

// Update writes fields (column → value) to the order with id.
func (r *OrderRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}
