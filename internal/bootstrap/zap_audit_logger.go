package bootstrap

import (
	"context"

	"hrbuddy/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit entries through the application logger, one
// info record per action.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger ...*zap.Logger) *ZapAuditLogger {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	return &ZapAuditLogger{logger: l.Named("audit")}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := make([]zap.Field, 0, len(entry.Meta)+3)
	fields = append(fields, zap.String("action", entry.Action))
	if entry.Message != "" {
		fields = append(fields, zap.String("message", entry.Message))
	}
	if rid := contextutil.GetRequestID(ctx); rid != "" {
		fields = append(fields, zap.String("request_id", rid))
	}
	for key, value := range entry.Meta {
		fields = append(fields, zap.Any(key, value))
	}

	l.logger.Info("audit event", fields...)
}
