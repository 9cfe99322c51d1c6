package services

import (
	"context"
	"log"

	"github.com/nextgen-care/clinic-service/internal/core/ports"
	"github.com/nextgen-care/clinic-service/internal/observability"
)

// notify delivers a best-effort message to the sink. Failures are logged and
// counted, never returned: the triggering operation already succeeded.
func notify(ctx context.Context, sink ports.NotificationSink, subject, body string) {
	if sink == nil {
		return
	}
	if err := sink.Notify(ctx, subject, body); err != nil {
		log.Printf("notify: dropped %q: %v", subject, err)
		observability.NotificationFailures.Inc()
	}
}
