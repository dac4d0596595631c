package bootstrap

import (
	"context"
	"time"

	"go-leaveledger/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger is the default AuditLogger; it writes structured audit
// lines through the global zap logger, tagged with the acting identity.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("actor", contextutil.Actor(ctx)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
