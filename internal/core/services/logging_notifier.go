package services

import (
	"context"
	"log/slog"

	portssvc "github.com/atlasvoyage/travel_accounting_app/internal/core/ports/services"
	"github.com/atlasvoyage/travel_accounting_app/internal/middleware"
)

// loggingNotifier is the default notification sink: it logs the event and
// delivers nothing. A real delivery channel can replace it without touching
// the services that emit notifications.
type loggingNotifier struct{}

// NewLoggingNotifier creates a notification sink that only logs.
func NewLoggingNotifier() portssvc.NotificationSink {
	return &loggingNotifier{}
}

func (n *loggingNotifier) Notify(ctx context.Context, event string, referenceID string, message string) error {
	middleware.GetLoggerFromCtx(ctx).Info("Notification",
		slog.String("event", event),
		slog.String("reference_id", referenceID),
		slog.String("message", message))
	return nil
}
