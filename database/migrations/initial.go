package migrations

import (
	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/pkg/migration"
)

func init() {
	migration.Register("20240501000000_create_products_table", &CreateProductsTable{})
	migration.Register("20240501000001_create_banners_table", &CreateBannersTable{})
	migration.Register("20240501000002_create_banner_products_table", &CreateBannerProductsTable{})
	migration.Register("20240501000003_create_cards_table", &CreateCardsTable{})
	migration.Register("20240501000004_create_orders_table", &CreateOrdersTable{})
}

// All returns the models in creation order. Tests migrate with it.
func All() []interface{} {
	return []interface{}{
		&models.Product{},
		&models.Banner{},
		&models.BannerProduct{},
		&models.Card{},
		&models.Order{},
		&models.OrderProduct{},
	}
}

// -------- products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}

// -------- banners --------

type CreateBannersTable struct{}

func (m *CreateBannersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Banner{})
}

func (m *CreateBannersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Banner{})
}

// -------- banner_products --------

type CreateBannerProductsTable struct{}

func (m *CreateBannerProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.BannerProduct{})
}

func (m *CreateBannerProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.BannerProduct{})
}

// -------- cards --------

type CreateCardsTable struct{}

func (m *CreateCardsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Card{})
}

func (m *CreateCardsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Card{})
}

// -------- orders + order_products --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderProduct{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OrderProduct{}, &models.Order{})
}
