package notification

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("notification not found")

// doc is the raw Notification collection shape, decoded before
// localization and id rendering.
type doc struct {
	ID           primitive.ObjectID `bson:"_id"`
	Title        string             `bson:"title"`
	Body         string             `bson:"body"`
	I18nTitle    []I18nText         `bson:"i18nTitle"`
	I18nBody     []I18nText         `bson:"i18nBody"`
	ImagePath    []string           `bson:"imagePath"`
	URL          string             `bson:"url"`
	Type         int                `bson:"type"`
	PayloadType  int                `bson:"payloadType"`
	CreationDate time.Time          `bson:"creationDate"`
	Topic        string             `bson:"topic"`
	UserTargets  []string           `bson:"userTargets"`
	Browser      int                `bson:"browser"`
	Linked       *linkedDoc         `bson:"linked"`
}

type linkedDoc struct {
	Type     int                 `bson:"type"`
	ObjectID *primitive.ObjectID `bson:"objectId"`
	Object   bson.Raw            `bson:"object"`
}

func (d *doc) toDomain(language string) *Notification {
	n := &Notification{
		ID:           d.ID.Hex(),
		Title:        localize(d.I18nTitle, language, d.Title),
		Body:         localize(d.I18nBody, language, d.Body),
		ImagePaths:   d.ImagePath,
		URL:          d.URL,
		Type:         d.Type,
		PayloadType:  d.PayloadType,
		CreationDate: d.CreationDate,
		HasCreation:  !d.CreationDate.IsZero(),
		Topic:        d.Topic,
		UserTargets:  d.UserTargets,
		Browser:      d.Browser,
	}
	if d.Browser == 0 {
		n.Browser = 2
	}
	if d.Linked != nil {
		n.HasLinked = true
		n.Linked.Type = d.Linked.Type
		if d.Linked.ObjectID != nil {
			n.Linked.ObjectID = d.Linked.ObjectID.Hex()
		}
		if len(d.Linked.Object) > 0 {
			var raw bson.M
			if err := bson.Unmarshal(d.Linked.Object, &raw); err == nil {
				if out, err := json.Marshal(raw); err == nil {
					n.Linked.Object = out
				}
			}
		}
	}
	return n
}

// Repository reads notifications and computes the cohort reachability
// set against the primary store.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection("Notification")}
}

// FindByID fetches one notification scoped to businessId, excluding
// soft-deleted documents, localized for language.
func (r *Repository) FindByID(ctx context.Context, id, businessID, language string) (*Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	bid, err := primitive.ObjectIDFromHex(businessID)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := bson.M{
		"_id":        oid,
		"businessId": bid,
		"deleted":    false,
	}

	var d doc
	if err := r.collection.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return d.toDomain(language), nil
}

// ReachabilityParams bundles the cohort-derived inputs to the
// reachability query.
type ReachabilityParams struct {
	BusinessIDs         []string
	OldestCreationDate  time.Time
	AccountTypes        []string
	UserIDs             []string
	HashedPhones        []string
}

// FindReachable returns the deduplicated set of notification ids
// visible to the cohort described by params, excluding type-17
// (external-hidden) and soft-deleted documents, capped at ~1000.
func (r *Repository) FindReachable(ctx context.Context, params ReachabilityParams) ([]string, error) {
	businessOIDs := make([]primitive.ObjectID, 0, len(params.BusinessIDs))
	topicAllClauses := make(bson.A, 0, len(params.BusinessIDs))
	for _, b := range params.BusinessIDs {
		oid, err := primitive.ObjectIDFromHex(b)
		if err != nil {
			continue
		}
		businessOIDs = append(businessOIDs, oid)
		topicAllClauses = append(topicAllClauses, "all_"+b)
	}
	if len(businessOIDs) == 0 {
		return nil, nil
	}

	var or bson.A
	if len(params.AccountTypes) > 0 {
		or = append(or, bson.M{"topic": bson.M{"$in": toAny(params.AccountTypes)}})
	}
	if len(topicAllClauses) > 0 {
		or = append(or, bson.M{"topic": bson.M{"$in": topicAllClauses}})
	}
	if len(params.UserIDs) > 0 {
		or = append(or, bson.M{"userTargets": bson.M{"$in": toAny(params.UserIDs)}})
		or = append(or, bson.M{"userTargetsChannel": bson.M{"$in": toAny(params.UserIDs)}})
	}
	if len(params.AccountTypes) > 0 {
		or = append(or, bson.M{"accountTypeTargets": bson.M{"$in": toAny(params.AccountTypes)}})
	}
	if len(params.HashedPhones) > 0 {
		or = append(or, bson.M{"phones": bson.M{"$in": toAny(params.HashedPhones)}})
	}

	if len(or) == 0 {
		return nil, nil
	}

	filter := bson.M{
		"businessId":   bson.M{"$in": businessOIDs},
		"creationDate": bson.M{"$gt": params.OldestCreationDate},
		"deleted":      false,
		"type":         bson.M{"$ne": ExternalHiddenType},
		"$or":          or,
	}

	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetLimit(1000)

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	seen := make(map[string]struct{})
	var ids []string
	for cursor.Next(ctx) {
		var row struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			continue
		}
		hex := row.ID.Hex()
		if _, ok := seen[hex]; ok {
			continue
		}
		seen[hex] = struct{}{}
		ids = append(ids, hex)
	}
	return ids, cursor.Err()
}

func toAny[T any](in []T) bson.A {
	out := make(bson.A, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
