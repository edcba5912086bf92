// Package readlog reads NotificationRead documents: the link between
// an end-user (keyed by a SHA-512 phone hash) and the notifications
// they've already observed. It lives in the analytics database, not
// the primary notification store.
package readlog

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("NotificationRead")}
}

// FindNotificationIDsByPhoneHash returns the deduplicated set of
// notification ids phoneHash has already read within businessIDs,
// bounded at 1000 to keep the aggregator's set-difference cheap.
func (r *Repository) FindNotificationIDsByPhoneHash(ctx context.Context, phoneHash string, businessIDs []string) ([]string, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}

	bids := make([]primitive.ObjectID, 0, len(businessIDs))
	for _, b := range businessIDs {
		oid, err := primitive.ObjectIDFromHex(b)
		if err != nil {
			return nil, err
		}
		bids = append(bids, oid)
	}

	filter := bson.M{"phone": phoneHash, "businessId": bson.M{"$in": bids}}
	opts := options.Find().
		SetProjection(bson.M{"notificationId": 1}).
		SetLimit(1000).
		SetBatchSize(100)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	seen := make(map[string]struct{})
	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			NotificationID primitive.ObjectID `bson:"notificationId"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		hex := row.NotificationID.Hex()
		if hex == "" {
			continue
		}
		if _, ok := seen[hex]; ok {
			continue
		}
		seen[hex] = struct{}{}
		ids = append(ids, hex)
	}
	return ids, cursor.Err()
}
