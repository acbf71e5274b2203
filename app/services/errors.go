package services

import (
	"errors"

	"gorm.io/gorm"
)

type notFoundError struct{ resource string }

func (e notFoundError) Error() string  { return e.resource + " not found" }
func (e notFoundError) NotFound() bool { return true }

var (
	ErrBannerNotFound error = notFoundError{"banner"}
	ErrOrderNotFound  error = notFoundError{"order"}
	ErrCardNotFound   error = notFoundError{"card"}
)

// ErrUnknownProduct is returned when a banner references a product id that
// does not exist.
var ErrUnknownProduct = errors.New("unknown product")

// ErrInvalidStatus is returned for a status_order outside 1–9.
var ErrInvalidStatus = errors.New("invalid order status")

// orNotFound maps gorm's record-not-found to sentinel.
func orNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
