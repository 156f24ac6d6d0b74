package sessions

import "context"

const flashKey = "flash"

// Flash is a one-time message rendered on the next page.
type Flash struct {
	Kind    string // "success", "warning" or "error"
	Message string
}

// PutFlash stores a message for the next request of this visitor.
func (m *Manager) PutFlash(ctx context.Context, kind, message string) {
	m.Put(ctx, flashKey+"_kind", kind)
	m.Put(ctx, flashKey, message)
}

// PopFlash returns and clears the pending message, if any.
func (m *Manager) PopFlash(ctx context.Context) *Flash {
	message := m.PopString(ctx, flashKey)
	if message == "" {
		return nil
	}
	return &Flash{Kind: m.PopString(ctx, flashKey+"_kind"), Message: message}
}
