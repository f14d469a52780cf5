package tray

// Noop stands in for the tray when the platform has none.
type Noop struct{}

func (Noop) Render(string, bool) error { return nil }

func (Noop) Shutdown() {}
