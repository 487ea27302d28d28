package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTTL is how long a notification stays visible.
	DefaultTTL = 1700 * time.Millisecond

	// ReapInterval is how often the background reaper runs.
	ReapInterval = 500 * time.Millisecond
)

// Notification is a transient on-screen acknowledgement of a user action.
type Notification struct {
	ID        string
	Text      string
	ExpiresAt time.Time
}

// Notifier holds active notifications and expires them after their TTL.
// Overlapping notifications are allowed; there is no queueing discipline.
// Expired entries are dropped both on read and by a background reaper, so
// timers never leak across navigation in a long-lived process.
type Notifier struct {
	mu     sync.Mutex
	active []Notification

	stopReap chan struct{}
	wg       sync.WaitGroup
}

func NewNotifier() *Notifier {
	n := &Notifier{
		stopReap: make(chan struct{}),
	}

	n.wg.Add(1)
	go n.reapLoop()

	return n
}

func (n *Notifier) reapLoop() {
	defer n.wg.Done()

	ticker := time.NewTicker(ReapInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			n.mu.Lock()
			n.reapLocked(time.Now())
			n.mu.Unlock()
		case <-n.stopReap:
			return
		}
	}
}

// Push records a notification. A non-positive ttl means DefaultTTL.
// Returns the notification id.
func (n *Notifier) Push(text string, ttl time.Duration) string {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	notif := Notification{
		ID:        uuid.New().String(),
		Text:      text,
		ExpiresAt: time.Now().Add(ttl),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = append(n.active, notif)
	return notif.ID
}

// Active returns the currently visible notifications in push order.
func (n *Notifier) Active() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.reapLocked(time.Now())
	out := make([]Notification, len(n.active))
	copy(out, n.active)
	return out
}

func (n *Notifier) reapLocked(now time.Time) {
	live := n.active[:0]
	for _, notif := range n.active {
		if now.Before(notif.ExpiresAt) {
			live = append(live, notif)
		}
	}
	n.active = live
}

// Close stops the background reaper and waits for it to finish.
func (n *Notifier) Close() error {
	close(n.stopReap)
	n.wg.Wait()
	return nil
}
