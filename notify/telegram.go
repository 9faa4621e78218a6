package notify

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram posts order events to an admin chat.
type Telegram struct {
	api    sender
	chatID int64
}

func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

// FormatMessage renders the chat text for ev.
func FormatMessage(ev Event) string {
	var b strings.Builder
	switch ev.Type {
	case EventOrderCreated:
		fmt.Fprintf(&b, "New order %s\n", ev.OrderNumber)
		fmt.Fprintf(&b, "%s, %s\n%s\n", ev.CustomerName, ev.CustomerPhone, ev.DeliveryAddress)
		for _, item := range ev.Items {
			fmt.Fprintf(&b, "• %d × %s (%.2f)\n", item.Quantity, item.Name, item.Price)
		}
		fmt.Fprintf(&b, "Total: %.2f", ev.TotalAmount)
	case EventOrderStatusChanged:
		fmt.Fprintf(&b, "Order %s is now %s", ev.OrderNumber, strings.ReplaceAll(ev.Status, "_", " "))
	default:
		fmt.Fprintf(&b, "%s: %s", ev.Type, ev.OrderNumber)
	}
	return b.String()
}

func (t *Telegram) Notify(ctx context.Context, ev Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, FormatMessage(ev))
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
