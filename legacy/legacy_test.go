package legacy

import (
	"context"
	"testing"
	"time"

	"eathub/notify"

	"go.mongodb.org/mongo-driver/bson"
)

func TestDocumentOmitsEmptyItems(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ev := notify.Event{Type: notify.EventOrderStatusChanged, OrderNumber: "ORD-1", Status: "preparing", OccurredAt: at}

	raw, err := bson.Marshal(Document(ev))
	if err != nil {
		t.Fatal(err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["items"]; ok {
		t.Error("empty items should not overwrite stored items")
	}
	if decoded["status"] != "preparing" || decoded["orderNumber"] != "ORD-1" {
		t.Errorf("decoded = %v", decoded)
	}
}

func TestCloseWithoutConnect(t *testing.T) {
	m := NewMirror("mongodb://localhost:27017", "eathub")
	if err := m.Close(context.Background()); err != nil {
		t.Errorf("Close() = %v", err)
	}
}
