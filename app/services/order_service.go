package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vitrine/backoffice/app/models"
	"github.com/vitrine/backoffice/app/repositories"
	"github.com/vitrine/backoffice/pkg/bind"
	"github.com/vitrine/backoffice/pkg/collection"
	"github.com/vitrine/backoffice/pkg/event"
	"github.com/vitrine/backoffice/pkg/lang"
	"github.com/vitrine/backoffice/pkg/logger"
	"github.com/vitrine/backoffice/pkg/metrics"
	"github.com/vitrine/backoffice/pkg/orm"
)

// EventOrderUpdated is fired after every successful order update with an
// OrderUpdated payload.
const EventOrderUpdated = "order.updated"

const dateLayout = "2006-01-02"

var (
	ErrInvalidSendMethod = errors.New("invalid send method")
	ErrInvalidDate       = errors.New("invalid date")
)

// OrderUpdate is the editable subset of an order. Nil fields are left
// unchanged. A date or send_method sent as "" is cleared.
type OrderUpdate struct {
	TrackingCode  *bind.Text `json:"tracking_code" validate:"omitempty,max=100"`
	StatusOrder   *int       `json:"status_order" validate:"omitempty,min=1,max=9"`
	SendMethod    *string    `json:"send_method" validate:"omitempty,send_method"`
	ShippedDate   *string    `json:"shipped_date"`
	EstimatedDate *string    `json:"estimated_date"`
	FinishedDate  *string    `json:"finished_date"`
}

// OrderUpdated is the payload of EventOrderUpdated.
type OrderUpdated struct {
	OrderID        uint
	Changes        map[string]interface{}
	PreviousStatus models.OrderStatus
	Status         models.OrderStatus
}

type OrderLinePayload struct {
	ID                          uint            `json:"id"`
	Name                        string          `json:"name"`
	Quantity                    int             `json:"quantity"`
	UnitaryValueSelled          decimal.Decimal `json:"unitary_value_selled"`
	UnitaryValueSelledFormatted string          `json:"unitary_value_selled_formatted"`
	TotalValue                  decimal.Decimal `json:"total_value"`
	TotalValueFormatted         string          `json:"total_value_formatted"`
}

type OrderPayload struct {
	ID                  uint               `json:"id"`
	Invoice             string             `json:"invoice"`
	NameUser            string             `json:"name_user"`
	SelledDate          time.Time          `json:"selled_date"`
	PaymentMethod       string             `json:"payment_method"`
	SendMethod          string             `json:"send_method"`
	TrackingCode        string             `json:"tracking_code"`
	StatusOrder         int                `json:"status_order"`
	StatusLabel         string             `json:"status_label"`
	ShippedDate         *string            `json:"shipped_date"`
	EstimatedDate       *string            `json:"estimated_date"`
	FinishedDate        *string            `json:"finished_date"`
	Quantity            int                `json:"quantity"`
	ValueTotal          decimal.Decimal    `json:"value_total"`
	ValueTotalFormatted string             `json:"value_total_formatted"`
	Products            []OrderLinePayload `json:"products"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// StatusOption is one entry of the status lookup.
type StatusOption struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

type OrderService struct {
	orders *repositories.OrderRepository
	bus    *event.Bus
}

// NewOrderService builds the service. bus may be nil.
func NewOrderService(orders *repositories.OrderRepository, bus *event.Bus) *OrderService {
	return &OrderService{orders: orders, bus: bus}
}

// Get returns one order with its lines and computed totals.
func (s *OrderService) Get(ctx context.Context, id uint) (OrderPayload, error) {
	order, err := s.find(ctx, id)
	if err != nil {
		return OrderPayload{}, err
	}
	return orderPayload(order), nil
}

// List returns a page of orders, optionally filtered by status.
func (s *OrderService) List(ctx context.Context, page, limit, status int) ([]OrderPayload, orm.Pagination, error) {
	orders, p, err := s.orders.Paginate(ctx, page, limit, models.OrderStatus(status))
	if err != nil {
		return nil, p, fmt.Errorf("list orders: %w", err)
	}
	return collection.Map(orders, orderPayload), p, nil
}

// Statuses returns the 1–9 status lookup.
func (s *OrderService) Statuses() []StatusOption {
	return collection.Map(models.OrderStatuses(), func(st models.OrderStatus) StatusOption {
		return StatusOption{Code: int(st), Label: st.Label()}
	})
}

// Update writes the fields present in in. Any status 1–9 may follow any
// other.
func (s *OrderService) Update(ctx context.Context, id uint, in OrderUpdate) error {
	order, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	fields := map[string]interface{}{}
	if in.TrackingCode != nil {
		fields["tracking_code"] = strings.TrimSpace(in.TrackingCode.String())
	}
	if in.StatusOrder != nil {
		st := models.OrderStatus(*in.StatusOrder)
		if !st.Valid() {
			return fmt.Errorf("%w: %d", ErrInvalidStatus, *in.StatusOrder)
		}
		fields["status_order"] = st
	}
	if in.SendMethod != nil {
		method := strings.ToLower(strings.TrimSpace(*in.SendMethod))
		switch method {
		case "", models.SendMethodSedex, models.SendMethodPAC:
		default:
			return fmt.Errorf("%w: %q", ErrInvalidSendMethod, *in.SendMethod)
		}
		fields["send_method"] = method
	}

	dates := []struct {
		column string
		value  *string
	}{
		{"shipped_date", in.ShippedDate},
		{"estimated_date", in.EstimatedDate},
		{"finished_date", in.FinishedDate},
	}
	for _, d := range dates {
		if d.value == nil {
			continue
		}
		t, err := ParseDate(*d.value)
		if err != nil {
			return fmt.Errorf("%s: %w", d.column, err)
		}
		if t == nil {
			fields[d.column] = nil
		} else {
			fields[d.column] = *t
		}
	}

	if len(fields) == 0 {
		return nil
	}
	if err := s.orders.Update(ctx, id, fields); err != nil {
		return fmt.Errorf("update order %d: %w", id, err)
	}

	next := order.StatusOrder
	if st, ok := fields["status_order"].(models.OrderStatus); ok {
		next = st
		if st != order.StatusOrder {
			metrics.RecordOrderStatus(int(st))
		}
	}

	s.bus.Fire(ctx, EventOrderUpdated, OrderUpdated{
		OrderID:        id,
		Changes:        fields,
		PreviousStatus: order.StatusOrder,
		Status:         next,
	})
	return nil
}

// AuditOrderUpdates registers a listener that writes one log line per
// order update.
func AuditOrderUpdates(bus *event.Bus) {
	bus.Listen(EventOrderUpdated, func(ctx context.Context, payload interface{}) {
		e, ok := payload.(OrderUpdated)
		if !ok {
			return
		}
		fields := make([]string, 0, len(e.Changes))
		for k := range e.Changes {
			fields = append(fields, k)
		}
		sort.Strings(fields)
		logger.WithCtx(ctx).Info("order updated",
			zap.Uint("order_id", e.OrderID),
			zap.Strings("fields", fields),
			zap.Int("previous_status", int(e.PreviousStatus)),
			zap.Int("status", int(e.Status)),
		)
	})
}

// ParseDate parses an order date leniently. Day-first forms such as
// "03/05/2021" are read as 3 May. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, "02/01/2006", "02-01-2006"} {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return &t, nil
		}
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return &t, nil
}

func (s *OrderService) find(ctx context.Context, id uint) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return models.Order{}, fmt.Errorf("order %d: %w", id, orNotFound(err, ErrOrderNotFound))
	}
	return order, nil
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(dateLayout)
	return &s
}

func orderPayload(o models.Order) OrderPayload {
	total := o.ValueTotal()
	return OrderPayload{
		ID:                  o.ID,
		Invoice:             o.Invoice,
		NameUser:            o.CustomerName,
		SelledDate:          o.SelledDate,
		PaymentMethod:       o.PaymentMethod,
		SendMethod:          o.SendMethod,
		TrackingCode:        o.TrackingCode,
		StatusOrder:         int(o.StatusOrder),
		StatusLabel:         o.StatusOrder.Label(),
		ShippedDate:         formatDate(o.ShippedDate),
		EstimatedDate:       formatDate(o.EstimatedDate),
		FinishedDate:        formatDate(o.FinishedDate),
		Quantity:            o.Quantity(),
		ValueTotal:          total,
		ValueTotalFormatted: lang.Money(total),
		CreatedAt:           o.CreatedAt,
		UpdatedAt:           o.UpdatedAt,
		Products: collection.Map(o.Products, func(l models.OrderProduct) OrderLinePayload {
			lineTotal := l.Total()
			return OrderLinePayload{
				ID:                          l.ProductID,
				Name:                        l.Product.Name,
				Quantity:                    l.Quantity,
				UnitaryValueSelled:          l.UnitaryValueSelled,
				UnitaryValueSelledFormatted: lang.Money(l.UnitaryValueSelled),
				TotalValue:                  lineTotal,
				TotalValueFormatted:         lang.Money(lineTotal),
			}
		}),
	}
}
