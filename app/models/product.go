package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// The admin UI does arithmetic on money fields, so they travel as
	// JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product is a catalogue entry. Banners link to it and order lines
// reference it. This API only reads it.
type Product struct {
	ID          uint            `gorm:"primaryKey"                json:"id"`
	Name        string          `gorm:"size:255;not null;index"   json:"name"`
	Description string          `gorm:"type:text"                 json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Active      bool            `gorm:"not null;index"            json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
