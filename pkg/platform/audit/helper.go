package audit

import (
	"context"
	"log/slog"

	"accreditation/pkg/requestcontext"
)

// Emitter is the interface for audit event emission.
// Satisfied by publisher.Publisher.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Logger writes an audit line and emits the event. Emission is best-effort:
// failures are logged and never returned.
type Logger struct {
	textLogger *slog.Logger
	emitter    Emitter
}

// NewLogger creates an audit logger. Both arguments are optional.
func NewLogger(textLogger *slog.Logger, emitter Emitter) *Logger {
	return &Logger{
		textLogger: textLogger,
		emitter:    emitter,
	}
}

// Log records the event, filling RequestID from ctx when unset.
func (l *Logger) Log(ctx context.Context, event Event) {
	if l == nil {
		return
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	l.logToText(ctx, event)
	l.emitToAudit(ctx, event)
}

func (l *Logger) logToText(ctx context.Context, event Event) {
	if l.textLogger == nil {
		return
	}
	l.textLogger.InfoContext(ctx, event.Action,
		"log_type", "audit",
		"tenant_id", event.TenantID.String(),
		"event_id", event.EventID.String(),
		"participant_id", event.ParticipantID.String(),
		"decision", event.Decision,
		"risk", event.Risk,
		"request_id", event.RequestID,
	)
}

func (l *Logger) emitToAudit(ctx context.Context, event Event) {
	if l.emitter == nil {
		return
	}
	if err := l.emitter.Emit(ctx, event); err != nil && l.textLogger != nil {
		l.textLogger.ErrorContext(ctx, "failed to emit audit event",
			"error", err,
			"event", event.Action,
			"participant_id", event.ParticipantID.String(),
		)
	}
}
