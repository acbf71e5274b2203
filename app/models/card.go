package models

import "time"

// Card is a stored payment card. Number and SecurityCode hold AES-GCM
// ciphertext; LastDigits is kept in clear for display.
type Card struct {
	ID             uint   `gorm:"primaryKey"`
	Flag           string `gorm:"size:50;not null"`
	Number         string `gorm:"size:255;not null"`
	LastDigits     string `gorm:"size:4;not null"`
	SecurityCode   string `gorm:"size:255"`
	ExpirationDate string `gorm:"size:7"`
	Holder         string `gorm:"size:255;not null"`
	Type           string `gorm:"size:20"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
