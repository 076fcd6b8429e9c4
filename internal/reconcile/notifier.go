package reconcile

import "sync"

// NotificationKind distinguishes what a notification announces.
type NotificationKind int

const (
	// ViewChanged means the store content may have changed; re-read and
	// re-render.
	ViewChanged NotificationKind = iota
	// PendingDeviceSeen announces a device that just appeared as pending,
	// for immediate surfacing.
	PendingDeviceSeen
	// PendingFolderSeen announces a fresh share offer.
	PendingFolderSeen
)

// Notification is pushed to every subscriber when the view changes or a new
// pending entity shows up.
type Notification struct {
	Kind        NotificationKind
	DeviceID    string
	DeviceName  string
	FolderID    string
	FolderLabel string
}

const subscriberBuffer = 16

// Notifier fans notifications out to any number of subscribers. Publishing
// never blocks: a subscriber whose buffer is full misses that notification,
// which is fine because every notification is a hint to re-read the store,
// not a data carrier.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan Notification]bool
}

// NewNotifier returns an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan Notification]bool)}
}

// Subscribe registers a new listener and returns its channel.
func (n *Notifier) Subscribe() chan Notification {
	ch := make(chan Notification, subscriberBuffer)
	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs[ch] = true
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (n *Notifier) Unsubscribe(ch chan Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs[ch] {
		delete(n.subs, ch)
		close(ch)
	}
}

// Publish delivers a notification to every subscriber without blocking.
func (n *Notifier) Publish(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- note:
		default:
		}
	}
}

// Count returns the number of active subscribers.
func (n *Notifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
