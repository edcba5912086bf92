package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds every environment-sourced setting the service needs at boot.
type Config struct {
	Port string

	MongoURI             string
	MongoDBNotifications string
	MongoDBAccount       string
	MongoDBAnalytics     string
	MongoDBClient        string

	JWTSecret string

	GetstreamAPIKey string
	GetstreamSecret string

	QueueURL      string
	QueueRedisURI string

	PublicBucket   string
	AWSRegion      string
	AWSAccessKey   string
	AWSSecretKey   string
	S3URLExpiresIn int

	Workers int
}

// Load reads configuration from the environment, falling back to a
// .env file in development.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	s3Expires, err := strconv.Atoi(getEnv("S3_URL_EXPIRES_IN", "600"))
	if err != nil || s3Expires <= 0 {
		s3Expires = 600
	}

	workers, err := strconv.Atoi(getEnv("WORKERS", "4"))
	if err != nil || workers <= 0 {
		workers = 4
	}

	return &Config{
		Port: getEnv("PORT", "8080"),

		MongoURI:             getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBNotifications: getEnv("MONGO_DB_NOTIFICATIONS", "notifications"),
		MongoDBAccount:       getEnv("MONGO_DB_ACCOUNT", "account"),
		MongoDBAnalytics:     getEnv("MONGO_DB_ANALYTICS", "analytics"),
		MongoDBClient:        getEnv("MONGO_DB_CLIENT", "client"),

		JWTSecret: getEnv("JWT_SECRET", "dev-secret"),

		GetstreamAPIKey: getEnv("GETSTREAM_API_KEY", ""),
		GetstreamSecret: getEnv("GETSTREAM_SECRET", ""),

		QueueURL:      getEnv("QUEUE_URL", "https://community.goil.app/api/v2/queue"),
		QueueRedisURI: getEnv("QUEUE_REDIS_URI", ""),

		PublicBucket: getEnv("PUBLIC_BUCKET", ""),
		AWSRegion:    getEnv("AWS_REGION", "eu-west-3"),
		AWSAccessKey: getEnv("AWS_ACCESS_KEY", ""),
		AWSSecretKey: getEnv("AWS_SECRET_KEY", ""),

		S3URLExpiresIn: s3Expires,
		Workers:        workers,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
