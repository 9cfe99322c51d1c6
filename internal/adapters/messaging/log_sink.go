package messaging

import (
	"context"
	"log"

	"github.com/nextgen-care/clinic-service/internal/core/ports"
)

// LogSink is the fallback sink used when no broker is configured. Deliveries
// go to the process log, which keeps the fire-and-forget contract observable
// in development.
type LogSink struct{}

var _ ports.NotificationSink = LogSink{}

func (LogSink) Notify(ctx context.Context, subject, body string) error {
	log.Printf("notification [%s]: %s", subject, body)
	return nil
}
