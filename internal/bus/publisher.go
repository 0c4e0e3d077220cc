// Package bus forwards state-change events to NATS for consumption by the
// rendering layer and any UI panels. The engine itself never depends on a
// subscriber being present.
package bus

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/danielpatrickdp/deskpet/internal/arbiter"
)

// #region message

// ChangeMessage is the wire form of a state transition.
type ChangeMessage struct {
	Previous string    `json:"previous"`
	Current  string    `json:"current"`
	At       time.Time `json:"at"`
}

// #endregion message

// #region publisher

// Publisher publishes state-change events to a NATS subject.
type Publisher struct {
	conn    *nats.Conn
	subject string
}

// NewPublisher connects to NATS.
func NewPublisher(url, subject string) (*Publisher, error) {
	if subject == "" {
		return nil, fmt.Errorf("bus: empty subject")
	}
	conn, err := nats.Connect(url,
		nats.Name("deskpet-engine"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("bus: connect %s: %w", url, err)
	}
	log.Printf("[BUS] connected to %s, subject %s", url, subject)
	return &Publisher{conn: conn, subject: subject}, nil
}

// Close flushes and drops the connection.
func (p *Publisher) Close() {
	if p.conn == nil {
		return
	}
	_ = p.conn.Flush()
	p.conn.Close()
}

// #endregion publisher

// #region publish

// Publish sends one transition. Errors are returned, not fatal: a dropped
// notification degrades the UI, never the engine.
func (p *Publisher) Publish(ev arbiter.Event) error {
	msg := ChangeMessage{
		Previous: string(ev.Previous),
		Current:  string(ev.Current),
		At:       ev.At,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("bus: marshal event: %w", err)
	}
	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("bus: publish: %w", err)
	}
	return nil
}

// Notify adapts Publish to the arbitrator's subscriber signature; publish
// failures are logged and swallowed.
func (p *Publisher) Notify(ev arbiter.Event) {
	if err := p.Publish(ev); err != nil {
		log.Printf("[BUS] %v", err)
	}
}

// #endregion publish
