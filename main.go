package main

import (
	"net/http"
	"os"
	"time"

	"tableside/config"
	httpapi "tableside/internal/api/http"
	"tableside/internal/service"
	"tableside/internal/storage"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
)

func main() {
	config.InitLogger()

	db := config.MustInitPostgres()
	defer db.Close()

	rdb := config.MustInitRedis()
	defer rdb.Close()

	kafkaWriter := config.NewKafkaWriter("orders")
	defer kafkaWriter.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure schema")
	}

	carts := storage.NewRedisCartRepository(rdb, 24*time.Hour)
	sessions := storage.NewRedisSessionStore(rdb, 12*time.Hour)
	blockBus := storage.NewRedisBlockBus(rdb)
	analytics := storage.NewRedisAnalytics(rdb)
	publisher := storage.NewKafkaPublisher(kafkaWriter)

	ids := service.UUIDGenerator{}
	qr := service.DefaultQRGenerator{BaseURL: config.PublicBaseURL()}

	restaurantSvc := service.NewRestaurantService(repo)
	catalogSvc := service.NewCatalogService(repo, qr)
	cartSvc := service.NewCartService(carts, repo)
	checkoutSvc := service.NewCheckoutService(repo, repo, carts, publisher, service.NewPDFReceiptRenderer(), ids)
	subscriptionSvc := service.NewSubscriptionService(repo)
	entitlementSvc := service.NewEntitlementService(repo, sessions, blockBus, ids)
	notificationSvc := service.NewNotificationService(repo, repo)

	handler := httpapi.NewHandler(restaurantSvc, catalogSvc, cartSvc, checkoutSvc,
		subscriptionSvc, entitlementSvc, notificationSvc)
	handler.Analytics = service.NewAnalyticsService(analytics)
	handler.OperatorToken = os.Getenv("OPERATOR_TOKEN")

	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info().Str("port", port).Msg("Tableside platform starting")
	if err := http.ListenAndServe(":"+port, handler.CORSHandler(r)); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
}
