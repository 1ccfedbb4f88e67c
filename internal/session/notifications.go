package session

import (
	"sync"
	"time"
)

type NotificationKind int

const (
	KindInfo NotificationKind = iota
	KindSuccess
	KindError
)

func (k NotificationKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient user message. Leaving marks the short exit
// transition before removal.
type Notification struct {
	Message string
	Kind    NotificationKind
	Leaving bool
}

const (
	notificationLifetime = 3 * time.Second
	notificationExit     = 300 * time.Millisecond
)

// Notifier keeps at most one notification visible: a new message
// immediately discards any displayed one. Each message self-dismisses
// after a fixed delay with a short exit phase. The sequence counter makes
// dismissal timers for replaced messages no-ops, so manual dismissal
// during the exit transition never errors.
type Notifier struct {
	mu       sync.Mutex
	sched    Scheduler
	current  *Notification
	seq      uint64
	onChange func()
}

func NewNotifier(sched Scheduler) *Notifier {
	return &Notifier{sched: sched}
}

// SetOnChange registers a callback fired after every visible change.
// The callback runs without the notifier lock held.
func (n *Notifier) SetOnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

func (n *Notifier) fireChange() {
	n.mu.Lock()
	fn := n.onChange
	n.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (n *Notifier) Notify(message string, kind NotificationKind) {
	n.mu.Lock()
	n.seq++
	seq := n.seq
	n.current = &Notification{Message: message, Kind: kind}
	n.mu.Unlock()

	n.fireChange()
	n.sched.Schedule(notificationLifetime, func() { n.beginExit(seq) })
}

// Dismiss starts the exit transition early. Safe to call at any point,
// including while an exit is already underway.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	seq := n.seq
	active := n.current != nil && !n.current.Leaving
	n.mu.Unlock()

	if active {
		n.beginExit(seq)
	}
}

func (n *Notifier) beginExit(seq uint64) {
	n.mu.Lock()
	if n.seq != seq || n.current == nil || n.current.Leaving {
		n.mu.Unlock()
		return
	}
	n.current.Leaving = true
	n.mu.Unlock()

	n.fireChange()
	n.sched.Schedule(notificationExit, func() { n.remove(seq) })
}

func (n *Notifier) remove(seq uint64) {
	n.mu.Lock()
	if n.seq != seq {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.mu.Unlock()

	n.fireChange()
}

// Current returns a copy of the visible notification, or nil.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.current == nil {
		return nil
	}
	cp := *n.current
	return &cp
}
