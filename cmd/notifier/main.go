package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/nextgen-care/clinic-service/internal/adapters/messaging"
	"github.com/nextgen-care/clinic-service/internal/config"
)

// The notifier drains the best-effort notification queue. Deliveries land in
// the process log; a real deployment would fan out to mail or SMS from here.
// Nothing upstream waits on it, so it can lag or restart freely.
func main() {
	log.Println("Starting notification worker...")

	cfg := config.LoadNotifierConfig()

	broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.NotifyQueueName)
	if err != nil {
		log.Fatalf("notifier: failed to connect to RabbitMQ: %v", err)
	}
	defer broker.Close()
	log.Println("notifier: connected to RabbitMQ")

	deliveries, err := broker.Consume()
	if err != nil {
		log.Fatalf("notifier: failed to start consuming: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Health endpoint for liveness probes
	healthMux := http.NewServeMux()
	healthMux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status":    "UP",
			"component": "notifier",
		})
	})
	go func() {
		if err := http.ListenAndServe(":"+cfg.HealthPort, healthMux); err != nil {
			log.Printf("notifier: health server stopped: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			log.Println("notifier: shutting down...")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				log.Println("notifier: delivery channel closed, exiting")
				return
			}

			var n messaging.Notification
			if err := json.Unmarshal(delivery.Body, &n); err != nil {
				log.Printf("notifier: discarding malformed message: %v", err)
				_ = delivery.Nack(false, false)
				continue
			}

			log.Printf("notifier: [%s] %s (sent %s)", n.Subject, n.Body, n.SentAt.Format("2006-01-02 15:04:05"))
			_ = delivery.Ack(false)
		}
	}
}
