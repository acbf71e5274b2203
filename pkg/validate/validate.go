// Package validate runs struct-tag validation through go-playground/validator
// and turns the failures into a field → localized message map.
//
// Field names in the map are the json tag names. On top of the built-in
// rules two custom rules are registered:
//
//	card_expiry   "MM/YY" or "MM/YYYY"
//	send_method   "sedex", "pac" or "" (any case)
//
// Example:
//
//	type CardInput struct {
//	    Number string `json:"number" validate:"required,number,min=12,max=19"`
//	    Expiry string `json:"expiration_date" validate:"omitempty,card_expiry"`
//	}
package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/vitrine/backoffice/pkg/lang"
)

var cardExpiryRe = regexp.MustCompile(`^(0[1-9]|1[0-2])/(\d{2}|\d{4})$`)

var (
	once     sync.Once
	instance *validator.Validate
)

// Engine returns the shared validator instance.
func Engine() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("card_expiry", func(fl validator.FieldLevel) bool {
			return cardExpiryRe.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("send_method", func(fl validator.FieldLevel) bool {
			return SendMethod(fl.Field().String())
		})
		instance = v
	})
	return instance
}

// Struct validates v. Returns a map of field name → message; an empty map
// means no errors.
func Struct(v interface{}) map[string]string {
	errs := make(map[string]string)

	err := Engine().Struct(v)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

// HasErrors reports whether errs has any entries.
func HasErrors(errs map[string]string) bool {
	return len(errs) > 0
}

// CardExpiry reports whether s is a valid "MM/YY" or "MM/YYYY" expiry.
func CardExpiry(s string) bool {
	return cardExpiryRe.MatchString(s)
}

// SendMethod reports whether s names a shipping method. Blank means none.
func SendMethod(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sedex", "pac":
		return true
	}
	return false
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return lang.T("%s is required.", field)
	case "oneof":
		return lang.T("%s must be one of: %s.", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		return lang.T("%s must be at least %s.", field, fe.Param())
	case "max", "lte":
		return lang.T("%s must be at most %s.", field, fe.Param())
	case "number":
		return lang.T("%s must contain only digits.", field)
	case "card_expiry":
		return lang.T("%s must be MM/YY or MM/YYYY.", field)
	case "send_method":
		return lang.T("%s must be one of: %s.", field, "sedex, pac")
	default:
		return lang.T("%s is invalid.", field)
	}
}
