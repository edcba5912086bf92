package session

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("session not found")

// Repository resolves AccountSessionInfo documents for the session
// guard.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("AccountSessionInfo")}
}

// FindByID looks up a session by sessionId scoped to businessId, the
// same pair the original session_guard validates on every request.
func (r *Repository) FindByID(ctx context.Context, sessionID, businessID string) (*Session, error) {
	bid, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := bson.M{
		"sessionId":  sessionID,
		"businessId": bid,
	}
	opts := options.FindOne().SetProjection(bson.M{"language": 1})

	var doc struct {
		ID       primitive.ObjectID `bson:"_id"`
		Language string             `bson:"language"`
	}
	if err := r.collection.FindOne(ctx, filter, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	lang := doc.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	return &Session{ID: doc.ID.Hex(), Language: lang}, nil
}
