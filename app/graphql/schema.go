// Package graphql defines the read-only back-office schema. Resolvers go
// through the same services as the REST controllers.
package graphql

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"github.com/vitrine/backoffice/app/services"
	gql "github.com/vitrine/backoffice/pkg/graphql"
)

var productRefType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductRef",
	Fields: graphql.Fields{
		"id":   &graphql.Field{Type: graphql.Int},
		"name": &graphql.Field{Type: graphql.String},
	},
})

var bannerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Banner",
	Fields: graphql.Fields{
		"id":          &graphql.Field{Type: graphql.Int},
		"title":       &graphql.Field{Type: graphql.String},
		"description": &graphql.Field{Type: graphql.String},
		"active":      &graphql.Field{Type: graphql.Boolean},
		"image":       &graphql.Field{Type: graphql.String},
		"mime_type":   &graphql.Field{Type: graphql.String},
		"image_url":   &graphql.Field{Type: graphql.String},
		"products":    &graphql.Field{Type: graphql.NewList(productRefType)},
	},
})

var orderLineType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderLine",
	Fields: graphql.Fields{
		"id":       &graphql.Field{Type: graphql.Int},
		"name":     &graphql.Field{Type: graphql.String},
		"quantity": &graphql.Field{Type: graphql.Int},
		"unitary_value_selled": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return money(p.Source.(services.OrderLinePayload).UnitaryValueSelled), nil
		}},
		"unitary_value_selled_formatted": &graphql.Field{Type: graphql.String},
		"total_value": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return money(p.Source.(services.OrderLinePayload).TotalValue), nil
		}},
		"total_value_formatted": &graphql.Field{Type: graphql.String},
	},
})

var orderType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Order",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.Int},
		"invoice":        &graphql.Field{Type: graphql.String},
		"name_user":      &graphql.Field{Type: graphql.String},
		"payment_method": &graphql.Field{Type: graphql.String},
		"send_method":    &graphql.Field{Type: graphql.String},
		"tracking_code":  &graphql.Field{Type: graphql.String},
		"status_order":   &graphql.Field{Type: graphql.Int},
		"status_label":   &graphql.Field{Type: graphql.String},
		"shipped_date":   &graphql.Field{Type: graphql.String},
		"estimated_date": &graphql.Field{Type: graphql.String},
		"finished_date":  &graphql.Field{Type: graphql.String},
		"quantity":       &graphql.Field{Type: graphql.Int},
		"selled_date": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(services.OrderPayload).SelledDate.Format(time.RFC3339), nil
		}},
		"value_total": &graphql.Field{Type: graphql.Float, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return money(p.Source.(services.OrderPayload).ValueTotal), nil
		}},
		"value_total_formatted": &graphql.Field{Type: graphql.String},
		"products":              &graphql.Field{Type: graphql.NewList(orderLineType)},
	},
})

var statusType = graphql.NewObject(graphql.ObjectConfig{
	Name: "OrderStatus",
	Fields: graphql.Fields{
		"code":  &graphql.Field{Type: graphql.Int},
		"label": &graphql.Field{Type: graphql.String},
	},
})

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func idArg(p graphql.ResolveParams) uint {
	id, _ := p.Args["id"].(int)
	if id < 0 {
		return 0
	}
	return uint(id)
}

// NewSchema builds the schema over the given services.
func NewSchema(banners *services.BannerService, orders *services.OrderService) (graphql.Schema, error) {
	idArgs := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"banners": &graphql.Field{
				Type: graphql.NewList(bannerType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return banners.List(p.Context)
				},
			},
			"banner": &graphql.Field{
				Type: bannerType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return banners.Get(p.Context, idArg(p))
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orders.Get(p.Context, idArg(p))
				},
			},
			"orderStatuses": &graphql.Field{
				Type: graphql.NewList(statusType),
				Resolve: func(graphql.ResolveParams) (interface{}, error) {
					return orders.Statuses(), nil
				},
			},
		},
	})

	return gql.NewSchema(query)
}
