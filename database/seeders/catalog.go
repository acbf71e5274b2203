package seeders

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/vitrine/backoffice/app/models"
)

func init() {
	Register("products", SeedProducts)
	Register("orders", SeedOrders)
}

var demoProducts = []models.Product{
	{Name: "Camiseta Básica", Price: decimal.RequireFromString("49.90"), Active: true},
	{Name: "Calça Jeans", Price: decimal.RequireFromString("159.90"), Active: true},
	{Name: "Tênis Casual", Price: decimal.RequireFromString("229.00"), Active: true},
	{Name: "Boné", Price: decimal.RequireFromString("39.90"), Active: true},
	{Name: "Jaqueta Corta-vento", Price: decimal.RequireFromString("289.50"), Active: false},
}

// SeedProducts inserts the demo catalogue once.
func SeedProducts(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil || n > 0 {
		return err
	}
	products := append([]models.Product(nil), demoProducts...)
	return db.Create(&products).Error
}

// SeedOrders inserts a few orders spread over the statuses.
func SeedOrders(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Order{}).Count(&n).Error; err != nil || n > 0 {
		return err
	}

	var products []models.Product
	if err := db.Order("id").Find(&products).Error; err != nil {
		return err
	}
	if len(products) < 2 {
		return nil
	}

	base := time.Date(2024, 5, 2, 14, 30, 0, 0, time.UTC)
	orders := []models.Order{
		{
			Invoice: "NF-000101", CustomerName: "Ana Souza", SelledDate: base,
			PaymentMethod: "credit_card", StatusOrder: models.StatusPaymentApproved,
			Products: []models.OrderProduct{
				{ProductID: products[0].ID, Quantity: 2, UnitaryValueSelled: products[0].Price},
				{ProductID: products[1].ID, Quantity: 1, UnitaryValueSelled: products[1].Price},
			},
		},
		{
			Invoice: "NF-000102", CustomerName: "Bruno Lima", SelledDate: base.AddDate(0, 0, 1),
			PaymentMethod: "boleto", SendMethod: models.SendMethodPAC, StatusOrder: models.StatusShipped,
			TrackingCode: "BR000102PAC",
			Products: []models.OrderProduct{
				{ProductID: products[1].ID, Quantity: 3, UnitaryValueSelled: products[1].Price},
			},
		},
		{
			Invoice: "NF-000103", CustomerName: "Carla Dias", SelledDate: base.AddDate(0, 0, 2),
			PaymentMethod: "pix", StatusOrder: models.StatusAwaitingPayment,
			Products: []models.OrderProduct{
				{ProductID: products[0].ID, Quantity: 1, UnitaryValueSelled: products[0].Price},
			},
		},
	}
	return db.Create(&orders).Error
}
