package main

import (
	"context"
	"log"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/nextgen-care/clinic-service/internal/adapters/handler"
	"github.com/nextgen-care/clinic-service/internal/adapters/messaging"
	"github.com/nextgen-care/clinic-service/internal/adapters/middleware"
	"github.com/nextgen-care/clinic-service/internal/adapters/session"
	"github.com/nextgen-care/clinic-service/internal/adapters/store/dynamo"
	"github.com/nextgen-care/clinic-service/internal/adapters/store/memory"
	"github.com/nextgen-care/clinic-service/internal/config"
	"github.com/nextgen-care/clinic-service/internal/core/domain"
	"github.com/nextgen-care/clinic-service/internal/core/ports"
	"github.com/nextgen-care/clinic-service/internal/core/services"
)

func main() {
	// .env is optional; deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()
	validate := validator.New()

	var store ports.RecordStore
	switch cfg.StoreBackend {
	case config.StoreBackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			log.Fatalf("failed to load AWS configuration: %v", err)
		}
		store = dynamo.New(dynamodb.NewFromConfig(awsCfg))
		log.Printf("record store: dynamodb (%s)", cfg.AWSRegion)
	default:
		store = memory.New()
		log.Println("record store: in-memory (data lives for the process lifetime)")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	log.Println("Authenticated with Redis successfully")

	var sink ports.NotificationSink = messaging.LogSink{}
	if cfg.RabbitMQURL != "" {
		broker, err := messaging.NewRabbitMQBroker(cfg.RabbitMQURL, cfg.NotifyQueueName)
		if err != nil {
			// Notifications are best-effort; a dead broker never blocks startup.
			log.Printf("WARNING: notification broker unavailable, using log sink: %v", err)
		} else {
			defer broker.Close()
			sink = broker
			log.Println("Connected to RabbitMQ notification queue")
		}
	}

	sessions := services.NewSessionService(session.NewRedisStore(redisClient), cfg.SessionSecret)
	identity := services.NewIdentityService(store, sink, validate, cfg.AdminEmail, cfg.AdminPasswordHash)
	roster := services.NewRosterService(store, sink, validate)
	appointments := services.NewAppointmentService(store, sink, validate)
	contacts := services.NewContactService(store, validate)

	gate := middleware.NewSessionMiddleware(sessions)
	authHandler := handler.NewAuthHandler(identity, sessions)
	patientHandler := handler.NewPatientHandler(identity)
	rosterHandler := handler.NewRosterHandler(roster)
	apptHandler := handler.NewAppointmentHandler(appointments)
	contactHandler := handler.NewContactHandler(contacts)
	adminHandler := handler.NewAdminHandler(identity, appointments, contacts)
	tipsHandler := handler.NewTipsHandler()
	healthHandler := handler.NewHealthHandler(store, redisClient)

	patientOnly := []domain.Role{domain.RolePatient}
	adminOnly := []domain.Role{domain.RoleAdmin}
	anyRole := []domain.Role{domain.RolePatient, domain.RoleAdmin}

	mux := http.NewServeMux()

	// Health endpoints (OpenShift compatible)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /health/ready", healthHandler.Ready)
	mux.HandleFunc("GET /health/live", healthHandler.Live)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Public surface
	mux.HandleFunc("GET /tips", tipsHandler.Tips)
	mux.HandleFunc("POST /contact", contactHandler.Submit)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /doctors", rosterHandler.List)
	mux.HandleFunc("GET /doctors/{id}", rosterHandler.Get)

	// Authenticated surface
	mux.HandleFunc("POST /logout", gate.RequireRole(anyRole, authHandler.Logout))
	mux.HandleFunc("GET /me", gate.RequireRole(patientOnly, patientHandler.Me))
	mux.HandleFunc("PUT /me", gate.RequireRole(patientOnly, patientHandler.UpdateMe))
	mux.HandleFunc("GET /appointments", gate.RequireRole(patientOnly, apptHandler.ListMine))
	mux.HandleFunc("POST /appointments", gate.RequireRole(patientOnly, apptHandler.Book))
	mux.HandleFunc("POST /appointments/{id}/cancel", gate.RequireRole(anyRole, apptHandler.Cancel))

	// Administrator surface
	mux.HandleFunc("POST /admin/doctors", gate.RequireRole(adminOnly, rosterHandler.Add))
	mux.HandleFunc("PUT /admin/doctors/{id}", gate.RequireRole(adminOnly, rosterHandler.Update))
	mux.HandleFunc("DELETE /admin/doctors/{id}", gate.RequireRole(adminOnly, rosterHandler.Remove))
	mux.HandleFunc("GET /admin/patients", gate.RequireRole(adminOnly, adminHandler.ListPatients))
	mux.HandleFunc("GET /admin/appointments", gate.RequireRole(adminOnly, adminHandler.ListAppointments))
	mux.HandleFunc("GET /admin/contacts", gate.RequireRole(adminOnly, adminHandler.ListContacts))

	root := middleware.CORS(cfg.AllowedOrigins)(mux)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, root); err != nil {
		log.Fatalf("Could not start server: %s\n", err)
	}
}
