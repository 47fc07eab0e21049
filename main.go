package main

import (
	"log"
	"strings"

	v1 "github.com/clientdesk/portal/api/v1"
	"github.com/clientdesk/portal/config"
	"github.com/clientdesk/portal/database"
	"github.com/clientdesk/portal/lib/notify"
	"github.com/clientdesk/portal/lib/storage"
	"github.com/clientdesk/portal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load environment variables
	config.LoadEnv()

	// Set Gin mode
	gin.SetMode(config.GetEnv("GIN_MODE", gin.ReleaseMode))

	// Initialize database
	database.Initialize()

	// Connect object store
	store, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:        config.GetEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKeyID:     config.GetEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretAccessKey: config.GetEnv("MINIO_SECRET_KEY", "minioadmin"),
		Bucket:          config.GetEnv("MINIO_BUCKET", "clientdesk"),
		UseSSL:          config.GetEnv("MINIO_USE_SSL", "false") == "true",
	})
	if err != nil {
		log.Fatalf("Failed to connect object store: %v", err)
	}
	log.Println("✅ Connected to object store")

	// Pick the notifier: Kafka when brokers are configured, log fallback otherwise
	var notifier notify.Notifier
	if brokers := config.GetEnv("KAFKA_BROKERS", ""); brokers != "" {
		notifier = notify.NewKafkaNotifier(strings.Split(brokers, ","), config.GetEnv("KAFKA_NOTIFY_TOPIC", "deliverable-sent"))
		log.Println("✅ Kafka notifications enabled")
	} else {
		notifier = &notify.LogNotifier{}
		log.Println("⚠️ KAFKA_BROKERS not set, notifications are log-only")
	}

	// Initialize router
	router := gin.Default()

	// CORS configuration
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	}))

	// Register API routes
	api := router.Group("/api/v1")
	v1.RegisterRoutes(api, v1.Deps{
		DeliverableService: services.NewDeliverableService(store, notifier),
		IntegrityService:   services.NewIntegrityService(store),
		FileService:        services.NewFileService(store),
	})

	// Start server
	port := config.GetEnv("PORT", "8080")
	log.Printf("🚀 ClientDesk portal starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
