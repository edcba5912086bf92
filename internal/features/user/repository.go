package user

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("user not found")

type doc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Phone        string             `bson:"phone"`
	CreationDate interface{}        `bson:"creationDate"`
	AccountType  primitive.ObjectID `bson:"accountType"`
}

var projection = bson.M{"_id": 1, "phone": 1, "creationDate": 1, "accountType": 1}

func (d *doc) toDomain(businessID string) SimplifiedUser {
	su := SimplifiedUser{
		ID:          d.ID.Hex(),
		Phone:       d.Phone,
		AccountType: d.AccountType.Hex(),
		BusinessID:  businessID,
	}
	if dt, ok := d.CreationDate.(primitive.DateTime); ok {
		su.CreationDate = dt.Time().UTC()
	}
	return su
}

// Repository reads Account documents projected down to
// SimplifiedUser.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("Account")}
}

// FindByID fetches the caller's account scoped to a single businessId.
func (r *Repository) FindByID(ctx context.Context, id, businessID string) (*SimplifiedUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	bid, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOne().SetProjection(projection)
	var d doc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid, "businessId": bid}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	su := d.toDomain(businessID)
	return &su, nil
}

// FindByIDAndBusinessIDs fetches the caller's account scoped to any of
// an explicit set of businessIds (the query-param case).
func (r *Repository) FindByIDAndBusinessIDs(ctx context.Context, id string, businessIDs []string) (*SimplifiedUser, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	bids, err := toObjectIDs(businessIDs)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOne().SetProjection(projection)
	var d doc
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid, "businessId": bson.M{"$in": bids}}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	businessID := ""
	if len(businessIDs) > 0 {
		businessID = businessIDs[0]
	}
	su := d.toDomain(businessID)
	return &su, nil
}

// FindCohortByPhone finds every account sharing phone within
// businessIDs, bounded and hinted the way the analytics-heavy read
// path requires.
func (r *Repository) FindCohortByPhone(ctx context.Context, phone string, businessIDs []string) ([]SimplifiedUser, error) {
	if len(businessIDs) == 0 {
		return nil, nil
	}
	bids, err := toObjectIDs(businessIDs)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"phone": phone, "businessId": bson.M{"$in": bids}}
	opts := options.Find().
		SetProjection(projection).
		SetLimit(20).
		SetBatchSize(50).
		SetHint(bson.D{{Key: "phone", Value: 1}, {Key: "businessId", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var users []SimplifiedUser
	for cursor.Next(ctx) {
		var d doc
		if err := cursor.Decode(&d); err != nil {
			continue
		}
		users = append(users, d.toDomain(""))
	}
	return users, cursor.Err()
}

func toObjectIDs(ids []string) ([]primitive.ObjectID, error) {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, err
		}
		out = append(out, oid)
	}
	return out, nil
}
