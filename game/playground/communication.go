package playground

import (
	"github.com/gaorkl/simple-playgrounds-sub000/game/sensor"
)

type Message struct {
	Sender  *Agent
	Content interface{}
}

type outgoing struct {
	to      *Agent
	content interface{}
}

// Communication lets agents exchange messages within a range. Messages sent
// during a tick are delivered at its end; a disabled device neither sends
// nor receives.
type Communication struct {
	sensor.DeviceBase

	agent       *Agent
	commRange   float64
	maxMessages int

	outbox []outgoing
	inbox  []Message
}

// NewCommunication builds a device; maxMessages <= 0 means no inbox limit
func NewCommunication(commRange float64, maxMessages int) *Communication {
	return &Communication{commRange: commRange, maxMessages: maxMessages}
}

func (c *Communication) Range() float64 {
	return c.commRange
}

func (c *Communication) Send(to *Agent, content interface{}) {
	c.outbox = append(c.outbox, outgoing{to: to, content: content})
}

// Broadcast sends to every agent in range
func (c *Communication) Broadcast(content interface{}) {
	c.Send(nil, content)
}

// Received lists the messages delivered at the end of the last tick
func (c *Communication) Received() []Message {
	return c.inbox
}

func (c *Communication) canReach(other *Communication) bool {
	if other == nil || other == c || other.IsDisabled() {
		return false
	}

	return c.agent.Position().Dist(other.agent.Position()) <= c.commRange
}

func (c *Communication) accept(m Message) {
	if c.maxMessages > 0 && len(c.inbox) >= c.maxMessages {
		return
	}

	c.inbox = append(c.inbox, m)
}

func (c *Communication) reset() {
	c.outbox = nil
	c.inbox = nil
}

// deliverMessages empties every outbox into the inboxes in range
func deliverMessages(agents []*Agent) {
	for _, a := range agents {
		if a.communication != nil {
			a.communication.inbox = nil
		}
	}

	for _, sender := range agents {
		c := sender.communication
		if c == nil {
			continue
		}

		if !c.IsDisabled() {
			for _, msg := range c.outbox {
				for _, receiver := range agents {
					if msg.to != nil && msg.to != receiver {
						continue
					}
					if c.canReach(receiver.communication) {
						receiver.communication.accept(Message{Sender: sender, Content: msg.content})
					}
				}
			}
		}

		c.outbox = nil
	}
}
