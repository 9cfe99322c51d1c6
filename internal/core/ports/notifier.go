package ports

import "context"

// NotificationSink delivers best-effort outbound messages on registration,
// booking and roster events. Callers log and swallow errors; a failed
// delivery never fails the operation that triggered it.
type NotificationSink interface {
	Notify(ctx context.Context, subject, body string) error
}
