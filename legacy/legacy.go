// Package legacy keeps the old document-database order collection in step with
// the relational store for consumers that have not moved off it.
package legacy

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eathub/notify"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const ordersCollection = "orders"

type OrderDocument struct {
	OrderNumber     string             `bson:"orderNumber"`
	Status          string             `bson:"status"`
	CustomerName    string             `bson:"customerName"`
	CustomerPhone   string             `bson:"customerPhone"`
	DeliveryAddress string             `bson:"deliveryAddress"`
	TotalAmount     float64            `bson:"totalAmount"`
	Items           []notify.EventItem `bson:"items,omitempty"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

// Mirror upserts orders into MongoDB. One pooled client is shared and replaced
// only when it stops answering pings.
type Mirror struct {
	uri      string
	database string

	mu     sync.Mutex
	client *mongo.Client
}

func NewMirror(uri, database string) *Mirror {
	return &Mirror{uri: uri, database: database}
}

func (m *Mirror) connect(ctx context.Context) (*mongo.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client != nil {
		if err := m.client.Ping(ctx, readpref.Primary()); err == nil {
			return m.client, nil
		}
		_ = m.client.Disconnect(ctx)
		m.client = nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(m.uri).SetMaxPoolSize(10))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	m.client = client
	return client, nil
}

// Document converts an event into the legacy schema. An event without items
// leaves the stored items untouched.
func Document(ev notify.Event) OrderDocument {
	return OrderDocument{
		OrderNumber:     ev.OrderNumber,
		Status:          ev.Status,
		CustomerName:    ev.CustomerName,
		CustomerPhone:   ev.CustomerPhone,
		DeliveryAddress: ev.DeliveryAddress,
		TotalAmount:     ev.TotalAmount,
		Items:           ev.Items,
		UpdatedAt:       ev.OccurredAt,
	}
}

func (m *Mirror) Notify(ctx context.Context, ev notify.Event) error {
	client, err := m.connect(ctx)
	if err != nil {
		return err
	}
	coll := client.Database(m.database).Collection(ordersCollection)
	_, err = coll.UpdateOne(ctx,
		bson.M{"orderNumber": ev.OrderNumber},
		bson.M{"$set": Document(ev)},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mirror order %s: %w", ev.OrderNumber, err)
	}
	return nil
}

func (m *Mirror) Close(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.client == nil {
		return nil
	}
	err := m.client.Disconnect(ctx)
	m.client = nil
	return err
}
