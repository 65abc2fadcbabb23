package mqtt

import (
	"encoding/json"

	"github.com/nerrad567/localstore/internal/store"
)

// publisher is the subset of Client used by ChangePublisher.
type publisher interface {
	Publish(topic string, payload []byte, qos byte, retained bool) error
}

// ChangePublisher publishes store change events as JSON, one message per
// event on Topics.Change(table). It implements store.Observer.
//
// Publishing is best effort: failures are logged and never reach the
// operation that produced the event.
type ChangePublisher struct {
	pub    publisher
	topics Topics
	qos    byte
	logger Logger
}

// NewChangePublisher creates a ChangePublisher on c.
//
// Parameters:
//   - c: Connected client; its topics, QoS and logger are captured once
func NewChangePublisher(c *Client) *ChangePublisher {
	return &ChangePublisher{
		pub:    c,
		topics: c.Topics(),
		qos:    c.QoS(),
		logger: c.getLogger(),
	}
}

// OnChange publishes ev.
func (p *ChangePublisher) OnChange(ev store.ChangeEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		p.warn("encoding change event failed", ev, err)
		return
	}

	if err := p.pub.Publish(p.topics.Change(ev.Table), payload, p.qos, false); err != nil {
		p.warn("publishing change event failed", ev, err)
	}
}

func (p *ChangePublisher) warn(msg string, ev store.ChangeEvent, err error) {
	if p.logger == nil {
		return
	}
	p.logger.Warn(msg,
		"operation", ev.Operation,
		"table", ev.Table,
		"event_id", ev.ID,
		"error", err,
	)
}
