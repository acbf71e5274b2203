// Package lang holds the user-facing message catalog and pt-BR number
// formatting. Keys are the English strings; the default locale is pt-BR.
package lang

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/vitrine/backoffice/config"
)

var ptBR = map[string]string{
	"Could not save the banner.":    "Não foi possivel salvar o Banner.",
	"Could not list the banners.":   "Não foi possivel listar os banners.",
	"Could not load the banner.":    "Não foi possivel listar o banner.",
	"Could not update the banner.":  "Não foi possivel atualizar o banner.",
	"Could not delete the banner.":  "Não foi possivel deletar o banner.",
	"Could not load the order.":     "Não foi possivel carregar o pedido.",
	"Could not list the orders.":    "Não foi possivel listar os pedidos.",
	"Could not update the order.":   "Não foi possivel atualizar o pedido.",
	"Could not save the card.":      "Não foi possivel salvar o cartão.",
	"Could not list the cards.":     "Não foi possivel listar os cartões.",
	"Could not load the card.":      "Não foi possivel carregar o cartão.",
	"Could not update the card.":    "Não foi possivel atualizar o cartão.",
	"Could not delete the card.":    "Não foi possivel deletar o cartão.",
	"Could not list the products.":  "Não foi possivel listar os produtos.",
	"Invalid request body.":         "Corpo da requisição inválido.",
	"Validation failed.":            "Falha na validação.",
	"Internal server error.":        "Erro interno do servidor.",
	"Too many requests.":            "Muitas requisições.",
	"Resource not found.":           "Recurso não encontrado.",
	"%s is required.":               "%s é obrigatório.",
	"%s must be one of: %s.":        "%s deve ser um dos valores: %s.",
	"%s must be at least %s.":       "%s deve ser no mínimo %s.",
	"%s must be at most %s.":        "%s deve ser no máximo %s.",
	"%s must contain only digits.":  "%s deve conter apenas dígitos.",
	"%s must be a valid date.":      "%s deve ser uma data válida.",
	"%s must be MM/YY or MM/YYYY.":  "%s deve estar no formato MM/AA ou MM/AAAA.",
	"%s must be a valid data URI.":  "%s deve ser um data URI válido.",
	"%s is invalid.":                "%s é inválido.",
	"%s must be between %s and %s.": "%s deve estar entre %s e %s.",
}

var (
	cat   = catalog.NewBuilder()
	money = message.NewPrinter(language.BrazilianPortuguese)
)

func init() {
	for key, msg := range ptBR {
		_ = cat.SetString(language.BrazilianPortuguese, key, msg)
	}
}

// Printer returns a printer for the configured APP_LOCALE.
func Printer() *message.Printer {
	return message.NewPrinter(language.Make(config.AppLocale()), message.Catalog(cat))
}

// T translates key into the configured locale. Unknown keys and the English
// locale print the key itself.
func T(key string, args ...any) string {
	return Printer().Sprintf(key, args...)
}

// Money formats d with two decimals in pt-BR notation, e.g. 1234.5 → "1.234,50".
func Money(d decimal.Decimal) string {
	return money.Sprintf("%.2f", d.Round(2).InexactFloat64())
}
