package business

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("business not found")

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("Business")}
}

// FindByID fetches a business by id, projecting only its name.
func (r *Repository) FindByID(ctx context.Context, id string) (*Business, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOne().SetProjection(bson.M{"name": 1})

	var d struct {
		ID   primitive.ObjectID `bson:"_id"`
		Name string             `bson:"name"`
	}
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	name := d.Name
	if name == "" {
		name = DefaultName
	}
	return &Business{ID: d.ID.Hex(), Name: name}, nil
}
