package services

import "context"

// NotificationSink receives fire-and-forget notifications about financial
// events. Delivery failures are logged by callers and never abort the
// operation that triggered them.
type NotificationSink interface {
	Notify(ctx context.Context, event string, referenceID string, message string) error
}
