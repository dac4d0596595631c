package bootstrap

import "context"

type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

// AuditLogger is the injected audit port. The default implementation writes
// to stdout via zap; a real deployment can swap in a persistent sink.
type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
