// ================== cmd/api/main.go ==================
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/goil-app/notification-read-service/internal/config"
	"github.com/goil-app/notification-read-service/internal/database"
	"github.com/goil-app/notification-read-service/internal/features/business"
	"github.com/goil-app/notification-read-service/internal/features/notification"
	"github.com/goil-app/notification-read-service/internal/features/readlog"
	"github.com/goil-app/notification-read-service/internal/features/session"
	"github.com/goil-app/notification-read-service/internal/features/user"
	"github.com/goil-app/notification-read-service/internal/middleware"
	"github.com/goil-app/notification-read-service/internal/pkg/chatclient"
	"github.com/goil-app/notification-read-service/internal/pkg/queue"
	"github.com/goil-app/notification-read-service/internal/pkg/response"
	"github.com/goil-app/notification-read-service/internal/pkg/signer"
	"github.com/goil-app/notification-read-service/internal/pkg/trackingclient"
	"github.com/goil-app/notification-read-service/internal/routes"
)

// trackerAdapter satisfies notification.Tracker on top of
// trackingclient.Dispatcher, translating between the two packages'
// near-identical header structs so neither has to import the other.
type trackerAdapter struct {
	dispatcher *trackingclient.Dispatcher
}

func (t *trackerAdapter) Dispatch(notificationID, businessID string, headers notification.TrackingHeaders) {
	t.dispatcher.Dispatch(notificationID, businessID, trackingclient.Headers{
		Authorization:  headers.Authorization,
		ClientPlatform: headers.ClientPlatform,
		ClientOS:       headers.ClientOS,
		ClientDevice:   headers.ClientDevice,
		ClientID:       headers.ClientID,
		SessionID:      headers.SessionID,
	})
}

func main() {
	cfg := config.Load()

	mongoDB, err := database.Connect(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer mongoDB.Disconnect(context.Background())

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS("*"))

	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{"status": "ok"})
	})

	sessions := session.NewRepository(mongoDB.ClientDB)
	businesses := business.NewRepository(mongoDB.ClientDB)
	users := user.NewRepository(mongoDB.Account)
	readLog := readlog.NewRepository(mongoDB.Analytics)
	notifications := notification.NewRepository(mongoDB.Notifications)

	chat := chatclient.New(cfg.GetstreamAPIKey, cfg.GetstreamSecret)

	urlSigner, err := signer.New(
		"s3."+cfg.AWSRegion+".amazonaws.com",
		cfg.AWSAccessKey,
		cfg.AWSSecretKey,
		cfg.PublicBucket,
		true,
		time.Duration(cfg.S3URLExpiresIn)*time.Second,
	)
	if err != nil {
		log.Fatal("Failed to initialize URL signer:", err)
	}

	var producer *queue.Producer
	if cfg.QueueRedisURI != "" {
		opts, err := redis.ParseURL(cfg.QueueRedisURI)
		if err != nil {
			log.Fatal("Invalid QUEUE_REDIS_URI:", err)
		}
		producer = queue.NewProducer(redis.NewClient(opts), "notifications")
	}
	tracker := &trackerAdapter{dispatcher: trackingclient.New(cfg.QueueURL, producer)}

	notificationService := notification.NewService(notifications, chat, users, businesses, readLog, urlSigner, tracker)
	notificationHandler := notification.NewHandler(notificationService)

	routes.RegisterRoutes(router, cfg, sessions, notificationHandler)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
