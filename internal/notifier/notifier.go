package notifier

// Notifier sends a text message through an external channel. Sends are
// best-effort: callers log failures and move on.
type Notifier interface {
	Send(text string) error
}

// NoopNotifier is used when notifications are disabled.
type NoopNotifier struct{}

func NewNoopNotifier() *NoopNotifier { return &NoopNotifier{} }

func (n *NoopNotifier) Send(_ string) error { return nil }
