package tui

// planDoneMsg signals that a submission finished. The controller has
// already applied state, layers, and notifications by the time it
// arrives; the model only releases its spinner.
type planDoneMsg struct {
	err error
}

// notifyChangedMsg is sent whenever the notification center's visible
// message changes (shown, entered its exit transition, or removed).
type notifyChangedMsg struct{}
