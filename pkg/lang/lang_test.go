package lang

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/vitrine/backoffice/config"
)

func TestTranslatePortuguese(t *testing.T) {
	config.Set("APP_LOCALE", "pt-BR")
	assert.Equal(t, "Não foi possivel salvar o Banner.", T("Could not save the banner."))
	assert.Equal(t, "title é obrigatório.", T("%s is required.", "title"))
}

func TestTranslateEnglishFallsBackToKey(t *testing.T) {
	config.Set("APP_LOCALE", "en")
	t.Cleanup(func() { config.Set("APP_LOCALE", "pt-BR") })

	assert.Equal(t, "Could not save the banner.", T("Could not save the banner."))
	assert.Equal(t, "title is required.", T("%s is required.", "title"))
}

func TestMoney(t *testing.T) {
	assert.Equal(t, "12,50", Money(decimal.RequireFromString("12.5")))
	assert.Equal(t, "0,00", Money(decimal.Zero))
}
