package notify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"eathub/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	amqp "github.com/rabbitmq/amqp091-go"
)

type recorder struct {
	events []Event
	err    error
}

func (r *recorder) Notify(_ context.Context, ev Event) error {
	r.events = append(r.events, ev)
	return r.err
}

func sampleOrder() *models.Order {
	return &models.Order{
		OrderNumber:     "ORD-20260101120000-ABCD",
		Status:          models.OrderStatusReceived,
		CustomerName:    "Ada",
		CustomerPhone:   "5551234567",
		DeliveryAddress: "1 Main St",
		TotalAmount:     25.98,
		Items:           []models.OrderItem{{Name: "Burger", Price: 12.99, Quantity: 2}},
	}
}

func TestMultiJoinsErrors(t *testing.T) {
	ok := &recorder{}
	failing := &recorder{err: errors.New("down")}
	ev := OrderEvent(EventOrderCreated, sampleOrder(), time.Now())

	err := Multi{ok, failing}.Notify(context.Background(), ev)
	if err == nil || !strings.Contains(err.Error(), "down") {
		t.Errorf("err = %v", err)
	}
	if len(ok.events) != 1 || len(failing.events) != 1 {
		t.Error("every notifier should receive the event")
	}
	if ok.events[0].Items[0].Name != "Burger" {
		t.Errorf("event items = %+v", ok.events[0].Items)
	}
}

func TestDispatchSurvivesCancelledRequest(t *testing.T) {
	var seen error
	n := notifierFunc(func(ctx context.Context, ev Event) error {
		seen = ctx.Err()
		return nil
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	Dispatch(ctx, n, Event{Type: EventOrderCreated})
	if seen != nil {
		t.Errorf("dispatch context already done: %v", seen)
	}
	Dispatch(ctx, nil, Event{})
}

type notifierFunc func(ctx context.Context, ev Event) error

func (f notifierFunc) Notify(ctx context.Context, ev Event) error { return f(ctx, ev) }

func TestPublishing(t *testing.T) {
	ev := OrderEvent(EventOrderStatusChanged, sampleOrder(), time.Unix(1700000000, 0))
	msg, err := Publishing(ev)
	if err != nil {
		t.Fatal(err)
	}
	if msg.DeliveryMode != amqp.Persistent || msg.ContentType != "application/json" {
		t.Errorf("publishing = %+v", msg)
	}
	if msg.CorrelationId != ev.OrderNumber || msg.Type != EventOrderStatusChanged {
		t.Errorf("ids = %q / %q", msg.CorrelationId, msg.Type)
	}
	var decoded Event
	if err := json.Unmarshal(msg.Body, &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.TotalAmount != 25.98 {
		t.Errorf("decoded total = %v", decoded.TotalAmount)
	}
}

type fakeSender struct {
	sent []tgbotapi.Chattable
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{}, nil
}

func TestTelegramNotify(t *testing.T) {
	api := &fakeSender{}
	tg := &Telegram{api: api, chatID: 42}
	if err := tg.Notify(context.Background(), OrderEvent(EventOrderCreated, sampleOrder(), time.Now())); err != nil {
		t.Fatal(err)
	}
	if len(api.sent) != 1 {
		t.Fatalf("sent %d messages", len(api.sent))
	}
	msg := api.sent[0].(tgbotapi.MessageConfig)
	if msg.ChatID != 42 {
		t.Errorf("chat id = %d", msg.ChatID)
	}
	for _, want := range []string{"New order ORD-20260101120000-ABCD", "2 × Burger", "Total: 25.98"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("message %q missing %q", msg.Text, want)
		}
	}
}

func TestFormatStatusMessage(t *testing.T) {
	order := sampleOrder()
	order.Status = models.OrderStatusOutForDelivery
	got := FormatMessage(OrderEvent(EventOrderStatusChanged, order, time.Now()))
	if got != "Order ORD-20260101120000-ABCD is now out for delivery" {
		t.Errorf("FormatMessage() = %q", got)
	}
}
