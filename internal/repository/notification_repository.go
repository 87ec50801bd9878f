package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
)

// MongoNotificationRepo implements NotificationRepository
type MongoNotificationRepo struct {
	c mongoCollection
}

// NewMongoNotificationRepo creates the notification repository
func NewMongoNotificationRepo(db *mongo.Database) *MongoNotificationRepo {
	return &MongoNotificationRepo{c: newMongoCollection(db, config.CollectionNotification)}
}

func (r *MongoNotificationRepo) ListForUser(ctx context.Context, userID string, unreadOnly bool, limit int) ([]domain.Notification, error) {
	q := bson.M{"kullaniciId": userID}
	if unreadOnly {
		q["okundu"] = false
	}
	opts := options.Find().SetSort(bson.D{{Key: "tarih", Value: -1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	var items []domain.Notification
	if err := r.c.find(ctx, q, opts, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoNotificationRepo) InsertMany(ctx context.Context, items []domain.Notification) error {
	docs := make([]interface{}, len(items))
	for i := range items {
		if items[i].ID.IsZero() {
			items[i].ID = primitive.NewObjectID()
		}
		docs[i] = items[i]
	}
	return r.c.insertMany(ctx, docs)
}

// MarkRead only touches the notification when it belongs to userID.
func (r *MongoNotificationRepo) MarkRead(ctx context.Context, userID, id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := r.c.coll.UpdateOne(ctx,
		bson.M{"_id": oid, "kullaniciId": userID},
		bson.M{"$set": bson.M{"okundu": true}},
	)
	if err != nil {
		return translate("notification mark read", err)
	}
	if res.MatchedCount == 0 {
		return translate("notification mark read "+id, mongo.ErrNoDocuments)
	}
	return nil
}

func (r *MongoNotificationRepo) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	res, err := r.c.coll.UpdateMany(ctx,
		bson.M{"kullaniciId": userID, "okundu": false},
		bson.M{"$set": bson.M{"okundu": true}},
	)
	if err != nil {
		return 0, translate("notification mark all read", err)
	}
	return res.ModifiedCount, nil
}
