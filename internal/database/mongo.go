// ================== internal/database/mongo.go ==================
package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/goil-app/notification-read-service/internal/config"
)

// MongoDB wraps the shared client plus the four database handles the
// notification read path spans: notifications, account, analytics
// (where NotificationRead lives) and client (Business, Session).
type MongoDB struct {
	Client *mongo.Client

	Notifications *mongo.Database
	Account       *mongo.Database
	Analytics     *mongo.Database
	ClientDB      *mongo.Database // business/session collections
}

// Connect dials the primary store and sizes the connection pool per
// worker count: max(25, min(150, 500/workers)) connections, with the
// min pool held at a quarter of that.
func Connect(cfg *config.Config) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	maxPool := uint64(500 / cfg.Workers)
	if maxPool > 150 {
		maxPool = 150
	}
	if maxPool < 25 {
		maxPool = 25
	}
	minPool := maxPool / 4

	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(maxPool).
		SetMinPoolSize(minPool).
		SetMaxConnIdleTime(30 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoDB{
		Client:        client,
		Notifications: client.Database(cfg.MongoDBNotifications),
		Account:       client.Database(cfg.MongoDBAccount),
		Analytics:     client.Database(cfg.MongoDBAnalytics),
		ClientDB:      client.Database(cfg.MongoDBClient),
	}, nil
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
