// Package notify fans order events out to staff-facing channels.
package notify

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eathub/models"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"

	dispatchTimeout = 5 * time.Second
)

type EventItem struct {
	Name     string  `json:"name" bson:"name"`
	Price    float64 `json:"price" bson:"price"`
	Quantity int     `json:"quantity" bson:"quantity"`
}

type Event struct {
	Type            string      `json:"type"`
	OrderNumber     string      `json:"orderNumber"`
	Status          string      `json:"status"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	DeliveryAddress string      `json:"deliveryAddress"`
	TotalAmount     float64     `json:"totalAmount"`
	Items           []EventItem `json:"items"`
	OccurredAt      time.Time   `json:"occurredAt"`
}

// OrderEvent describes order as an event of the given type.
func OrderEvent(eventType string, order *models.Order, at time.Time) Event {
	items := make([]EventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, EventItem{Name: item.Name, Price: item.Price, Quantity: item.Quantity})
	}
	return Event{
		Type:            eventType,
		OrderNumber:     order.OrderNumber,
		Status:          order.Status,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		DeliveryAddress: order.DeliveryAddress,
		TotalAmount:     order.TotalAmount,
		Items:           items,
		OccurredAt:      at,
	}
}

type Notifier interface {
	Notify(ctx context.Context, ev Event) error
}

// Multi sends to every notifier and joins their errors.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, ev Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop drops events.
type Nop struct{}

func (Nop) Notify(context.Context, Event) error { return nil }

// Dispatch delivers ev with a bounded timeout and only logs failures.
func Dispatch(ctx context.Context, n Notifier, ev Event) {
	if n == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)
	defer cancel()
	if err := n.Notify(ctx, ev); err != nil {
		slog.Warn("notify.failed", "type", ev.Type, "order_number", ev.OrderNumber, "error", err)
	}
}
