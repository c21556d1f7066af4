package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

// Message is the JSON payload published on the NATS subject.
type Message struct {
	Title   string    `json:"title"`
	Message string    `json:"message"`
	SentAt  time.Time `json:"sent_at"`
}

// Publisher is the subset of *nats.Conn used by NATS.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// NATS publishes notifications as JSON on a core NATS subject so desktop
// clients and other services can subscribe.
type NATS struct {
	Conn    Publisher
	Subject string
	Now     func() time.Time
}

// Connect dials url with unlimited reconnects.
func Connect(url string) (*nats.Conn, error) {
	nc, err := nats.Connect(url,
		nats.Name("reclamation-api"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}
	return nc, nil
}

// Notify marshals and publishes one Message.
func (n *NATS) Notify(_ context.Context, title, message string) error {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	data, err := json.Marshal(Message{Title: title, Message: message, SentAt: now()})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	if err := n.Conn.Publish(n.Subject, data); err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}
