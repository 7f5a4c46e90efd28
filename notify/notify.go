package notify

// Notifier delivers one message to a chat channel. Send reports delivery
// success; failures are logged where they happen and never returned as
// errors.
type Notifier interface {
	Send(text string) bool
}

// Fanout sends to a primary channel plus any number of mirrors. The
// reported outcome is the primary's; mirrors are best-effort.
type Fanout struct {
	Primary Notifier
	Mirrors []Notifier
}

func (f *Fanout) Send(text string) bool {
	ok := f.Primary.Send(text)
	for _, m := range f.Mirrors {
		m.Send(text)
	}
	return ok
}
