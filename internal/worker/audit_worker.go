package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/identity-service/internal/events"
)

// StartAuditWorker subscribes a structured audit log to identity events.
func StartAuditWorker(dispatcher events.Dispatcher, logger *zap.Logger) {
	if dispatcher == nil || logger == nil {
		return
	}
	audit := logger.Named("audit")

	handler := func(_ context.Context, e events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("event", string(e.Type)),
			zap.String("kind", string(e.Kind)),
			zap.String("identity_id", e.IdentityID),
			zap.String("transport", e.Transport),
			zap.Time("at", e.Timestamp),
		}
		if e.Actor != nil {
			fields = append(fields, zap.String("actor_id", e.Actor.ID), zap.String("actor_type", string(e.Actor.Type)))
		}
		audit.Info("identity event", fields...)
		return nil
	}

	dispatcher.Subscribe(events.EventIdentityRegistered, handler)
	dispatcher.Subscribe(events.EventIdentityLoggedIn, handler)
}
