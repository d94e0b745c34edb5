// Package notify implements the single-slot, auto-dismissing notification
// affordance. Only one notification is ever visible; a newer one replaces
// the current one rather than queueing behind it.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Type is the notification flavor.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
)

// Notification is the ephemeral UI message; not a durable entity.
type Notification struct {
	ID      string    `json:"id"`
	Message string    `json:"message"`
	Type    Type      `json:"type"`
	ShownAt time.Time `json:"shownAt"`
}

// Notifier holds at most one visible notification and dismisses it after a
// fixed TTL.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
}

// New creates a notifier; ttl defaults to 3 seconds when non-positive.
func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Notifier{ttl: ttl}
}

// Publish replaces any visible notification and restarts the dismiss timer,
// so an earlier notification's pending dismissal cannot remove a newer one.
func (n *Notifier) Publish(message string, typ Type) Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	note := Notification{
		ID:      uuid.NewString(),
		Message: message,
		Type:    typ,
		ShownAt: time.Now(),
	}
	n.current = &note
	n.timer = time.AfterFunc(n.ttl, func() { n.dismiss(note.ID) })
	return note
}

// Current returns the visible notification, or nil when none is showing.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return nil
	}
	note := *n.current
	return &note
}

// Dismiss clears the visible notification immediately.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.current = nil
}

// dismiss clears the slot only if the identified notification still owns
// it; a replacement published in the meantime survives.
func (n *Notifier) dismiss(id string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current != nil && n.current.ID == id {
		n.current = nil
		n.timer = nil
	}
}
