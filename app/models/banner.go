package models

import "time"

// Banner is a promotional image shown on the storefront, linked to zero or
// more products through BannerProduct.
type Banner struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null"`
	Image       []byte
	MimeType    string `gorm:"size:100"`
	// ImagePath is the storage key of the published copy, if any.
	ImagePath string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Products []BannerProduct `gorm:"constraint:OnDelete:CASCADE"`
}

// BannerProduct is the banner↔product pivot row.
type BannerProduct struct {
	ID        uint    `gorm:"primaryKey"`
	BannerID  uint    `gorm:"not null;uniqueIndex:idx_banner_product"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_banner_product;index"`
	Product   Product `gorm:"constraint:OnDelete:CASCADE"`
}
