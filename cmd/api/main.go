package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabifranca/studio-gestao/internal/infra/database"
	"github.com/gabifranca/studio-gestao/internal/infra/http/handlers"
	"github.com/gabifranca/studio-gestao/internal/infra/http/middleware"
	"github.com/gabifranca/studio-gestao/internal/infra/integration/asaas"
	"github.com/gabifranca/studio-gestao/internal/infra/integration/whatsapp"
	"github.com/gabifranca/studio-gestao/internal/infra/mail"
	"github.com/gabifranca/studio-gestao/internal/infra/queue"
	"github.com/gabifranca/studio-gestao/internal/infra/worker"
	"github.com/gabifranca/studio-gestao/internal/usecase"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		panic(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	contactRepo := database.NewContactRepository(db)
	settingsRepo := database.NewSettingsRepository(db)
	paymentRepo := database.NewPaymentRepository(db)

	// 2. Gateways e Adapters
	gateway := asaas.NewClient(os.Getenv("ASAAS_API_KEY"), os.Getenv("ASAAS_URL"))
	waClient := whatsapp.NewClient(os.Getenv("WHATSAPP_API_TOKEN"), os.Getenv("WHATSAPP_URL"))
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Workers (dispatcher de automação + expiração de PIX)
	automationWorker := queue.NewWorker(rabbitMQ.Ch, settingsRepo, waClient)
	go automationWorker.Start(queue.QueueName)

	expirationWorker := worker.NewPaymentExpirationWorker(db)
	go expirationWorker.Start(context.Background())

	// 4. UseCases
	reconcileUC := usecase.NewReconcilePaymentUseCase(
		paymentRepo, contactRepo, settingsRepo, producer, mailSender,
	)
	checkoutUC := usecase.NewCheckoutUseCase(settingsRepo, paymentRepo, gateway, reconcileUC)
	enrollUC := usecase.NewEnrollUseCase(contactRepo, settingsRepo, producer, mailSender)
	moveUC := usecase.NewMoveContactUseCase(contactRepo, settingsRepo)
	captureUC := usecase.NewCaptureLeadUseCase(contactRepo, producer)
	registerSaleUC := usecase.NewRegisterSaleUseCase(settingsRepo, paymentRepo)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(captureUC)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutUC)
	webhookHandler := handlers.NewWebhookHandler(paymentRepo, reconcileUC)
	contactHandler := handlers.NewContactHandler(contactRepo, moveUC, enrollUC)
	stateHandler := handlers.NewStateHandler(settingsRepo, contactRepo)
	broadcastHandler := handlers.NewBroadcastHandler(waClient, settingsRepo, contactRepo)
	saleHandler := handlers.NewSaleHandler(registerSaleUC)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn, waClient)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
	}))

	r.Post("/leads/capture", leadHandler.CaptureLead)
	r.Post("/checkout", checkoutHandler.Handle)
	r.Post("/webhook", webhookHandler.Handle)

	r.Get("/state", stateHandler.GetState)
	r.Put("/settings/{key}", stateHandler.SaveField)

	r.Get("/contacts", contactHandler.List)
	r.Put("/contacts", contactHandler.Upsert)
	r.Delete("/contacts/{id}", contactHandler.Delete)
	r.Post("/contacts/{id}/move", contactHandler.Move)
	r.Post("/contacts/{id}/enroll", contactHandler.Enroll)

	r.Post("/broadcast", broadcastHandler.Handle)
	r.Post("/sales", saleHandler.Handle)

	r.Get("/health", healthHandler.Handle)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	port := ":8080"
	log.Printf("🔥 Server Studio Gestão rodando na porta %s", port)
	http.ListenAndServe(port, r)
}
