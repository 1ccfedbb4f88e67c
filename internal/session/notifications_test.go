package session

import "testing"

func TestNotifyShowsMessage(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	n.Notify("Route calculated successfully!", KindSuccess)

	cur := n.Current()
	if cur == nil {
		t.Fatal("no notification visible after Notify")
	}
	if cur.Message != "Route calculated successfully!" || cur.Kind != KindSuccess {
		t.Errorf("got %+v", cur)
	}
	if cur.Leaving {
		t.Error("fresh notification already leaving")
	}
}

func TestNotifyAutoDismisses(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	n.Notify("hello", KindInfo)

	// After the lifetime the message enters its exit transition.
	sched.Advance(notificationLifetime)
	cur := n.Current()
	if cur == nil || !cur.Leaving {
		t.Fatalf("expected leaving notification after lifetime, got %+v", cur)
	}

	// After the exit window it is gone.
	sched.Advance(notificationExit)
	if n.Current() != nil {
		t.Error("notification still visible after exit transition")
	}
}

func TestNotifyReplacesCurrent(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	n.Notify("first", KindInfo)
	n.Notify("second", KindError)

	cur := n.Current()
	if cur == nil || cur.Message != "second" {
		t.Fatalf("got %+v, want the replacing message", cur)
	}

	// The first message's dismissal timer must not touch the replacement
	// early: after the first lifetime elapses only the second timer fires,
	// and it fires for the right message.
	sched.Advance(notificationLifetime + notificationExit)
	if n.Current() != nil {
		t.Error("replacement not dismissed by its own timer")
	}
}

func TestDismissDuringExit(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	n.Notify("hello", KindInfo)
	sched.Advance(notificationLifetime)

	// Already leaving; a manual dismiss must be a harmless no-op.
	n.Dismiss()

	sched.Advance(notificationExit)
	if n.Current() != nil {
		t.Error("notification still visible")
	}
}

func TestDismissStartsExitEarly(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	n.Notify("hello", KindInfo)
	n.Dismiss()

	cur := n.Current()
	if cur == nil || !cur.Leaving {
		t.Fatalf("expected leaving notification after Dismiss, got %+v", cur)
	}

	sched.Advance(notificationExit)
	if n.Current() != nil {
		t.Error("notification still visible after early dismissal")
	}
}

func TestOnChangeFires(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	changes := 0
	n.SetOnChange(func() { changes++ })

	n.Notify("hello", KindInfo)
	if changes != 1 {
		t.Fatalf("changes = %d after Notify, want 1", changes)
	}

	sched.Advance(notificationLifetime + notificationExit)
	// One change for entering the exit transition, one for removal.
	if changes != 3 {
		t.Errorf("changes = %d after full lifecycle, want 3", changes)
	}
}

func TestCurrentReturnsCopy(t *testing.T) {
	sched := NewManualScheduler()
	n := NewNotifier(sched)

	n.Notify("hello", KindInfo)
	cp := n.Current()
	cp.Leaving = true

	if cur := n.Current(); cur.Leaving {
		t.Error("mutating the returned copy leaked into the notifier")
	}
}
