package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitrine/backoffice/config"
	"github.com/vitrine/backoffice/pkg/validate"
)

type cardInput struct {
	Flag         string `json:"flag"            validate:"required"`
	Number       string `json:"number"          validate:"required,number,min=12,max=19"`
	SecurityCode string `json:"security_code"   validate:"omitempty,number,min=3,max=4"`
	Expiry       string `json:"expiration_date" validate:"omitempty,card_expiry"`
	Holder       string `json:"holder"          validate:"required"`
}

type shippingInput struct {
	SendMethod *string `json:"send_method"  validate:"omitempty,send_method"`
	Status     *int    `json:"status_order" validate:"omitempty,min=1,max=9"`
}

func init() {
	config.Set("APP_LOCALE", "en")
}

func TestValidCard(t *testing.T) {
	errs := validate.Struct(cardInput{
		Flag:         "visa",
		Number:       "4111111111111111",
		SecurityCode: "123",
		Expiry:       "08/27",
		Holder:       "Maria Silva",
	})
	assert.False(t, validate.HasErrors(errs), "unexpected errors: %v", errs)
}

func TestRequiredUsesJSONNames(t *testing.T) {
	errs := validate.Struct(cardInput{})

	assert.Equal(t, "flag is required.", errs["flag"])
	assert.Equal(t, "number is required.", errs["number"])
	assert.Equal(t, "holder is required.", errs["holder"])
	assert.NotContains(t, errs, "security_code")
}

func TestCardNumberRules(t *testing.T) {
	errs := validate.Struct(cardInput{Flag: "visa", Holder: "x", Number: "4111-1111"})
	assert.Equal(t, "number must contain only digits.", errs["number"])

	errs = validate.Struct(cardInput{Flag: "visa", Holder: "x", Number: "41111"})
	assert.Equal(t, "number must be at least 12.", errs["number"])
}

func TestCardExpiry(t *testing.T) {
	for _, ok := range []string{"01/25", "12/2030"} {
		assert.True(t, validate.CardExpiry(ok), ok)
	}
	for _, bad := range []string{"13/25", "1/25", "01-25", "01/255", ""} {
		assert.False(t, validate.CardExpiry(bad), bad)
	}

	errs := validate.Struct(cardInput{Flag: "visa", Holder: "x", Number: "411111111111", Expiry: "2025-01"})
	assert.Equal(t, "expiration_date must be MM/YY or MM/YYYY.", errs["expiration_date"])
}

func TestPointerFieldsAreOptional(t *testing.T) {
	assert.Empty(t, validate.Struct(shippingInput{}))

	bad := "correios"
	status := 12
	errs := validate.Struct(shippingInput{SendMethod: &bad, Status: &status})
	assert.Equal(t, "send_method must be one of: sedex, pac.", errs["send_method"])
	assert.Equal(t, "status_order must be at most 9.", errs["status_order"])
}

func TestBlankSendMethodIsAccepted(t *testing.T) {
	for _, ok := range []string{"", "sedex", "PAC", " pac "} {
		m := ok
		assert.Empty(t, validate.Struct(shippingInput{SendMethod: &m}), ok)
	}
	assert.False(t, validate.SendMethod("motoboy"))
}
