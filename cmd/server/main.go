// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/minicrm/campaign-backend/internal/config"
	"github.com/minicrm/campaign-backend/internal/db"
	"github.com/minicrm/campaign-backend/internal/delivery"
	"github.com/minicrm/campaign-backend/internal/handler"
	"github.com/minicrm/campaign-backend/internal/identity"
	"github.com/minicrm/campaign-backend/internal/queue"
	"github.com/minicrm/campaign-backend/internal/repository"
	"github.com/minicrm/campaign-backend/internal/service"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ No .env file found, relying on OS environment variables")
	}

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	conn, err := db.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	customerRepo := &repository.CustomerRepository{DB: conn}
	campaignRepo := &repository.CampaignRepository{DB: conn}
	logRepo := &repository.LogRepository{DB: conn}
	userRepo := &repository.UserRepository{DB: conn}

	backend, err := buildBackend(&cfg.Delivery)
	if err != nil {
		log.Fatalf("failed to set up delivery backend: %v", err)
	}

	q := queue.NewInMemoryQueue()
	queue.StartVendorDispatchSubscriber(q, backend)

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		CustomerRepo: customerRepo,
		LogRepo:      logRepo,
		Queue:        q,
	}
	customerService := service.NewCustomerService(customerRepo)
	authService := &service.AuthService{
		Provider: identity.NewGoogleProvider(&cfg.Google),
		UserRepo: userRepo,
	}

	authHandler := &handler.AuthHandler{AuthService: authService}
	customerHandler := &handler.CustomerHandler{CustomerService: customerService}
	campaignHandler := &handler.CampaignHandler{CampaignService: campaignService}
	deliveryHandler := &handler.DeliveryHandler{
		Backend:         backend,
		CampaignService: campaignService,
	}

	r := chi.NewRouter()

	r.Post("/auth/google", authHandler.GoogleSignIn)
	r.Post("/customers", customerHandler.BulkCreate)
	r.Post("/upload-csv", customerHandler.UploadCSV)
	r.Post("/campaigns/preview", campaignHandler.Preview)
	r.Post("/campaigns", campaignHandler.Create)
	r.Get("/campaigns", campaignHandler.List)
	r.Get("/campaigns/{id}/logs", campaignHandler.Logs)
	r.Post("/vendor/send", deliveryHandler.VendorSend)
	r.Post("/delivery/receipt", deliveryHandler.Receipt)
	r.Handle("/metrics", promhttp.Handler())

	log.Println("🚀 Server running on", cfg.Server.Addr())
	log.Fatal(http.ListenAndServe(cfg.Server.Addr(), r))
}

// buildBackend selects the vendor implementation: in-process simulated
// timers by default, RabbitMQ + cmd/worker when DELIVERY_BACKEND=amqp.
func buildBackend(cfg *config.DeliveryConfig) (delivery.Backend, error) {
	if cfg.Backend == "amqp" {
		return delivery.NewAMQPBackend(cfg.AMQPURL, queue.TopicVendorDispatch)
	}

	sink := delivery.NewHTTPReceiptSink(cfg.ReceiptURL)
	return delivery.NewSimulatedBackend(
		time.Duration(cfg.MinDelayMs)*time.Millisecond,
		time.Duration(cfg.MaxDelayMs)*time.Millisecond,
		cfg.SuccessRate,
		sink,
	), nil
}
