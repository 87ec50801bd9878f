// internal/repository/mongo_repository.go
// Shared collection helpers for the Mongo repositories

package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/pkg/logger"
)

// mongoCollection wraps one collection with the find/insert/delete
// plumbing every repository repeats.
type mongoCollection struct {
	coll *mongo.Collection
	name string
}

func newMongoCollection(db *mongo.Database, name string) mongoCollection {
	return mongoCollection{coll: db.Collection(name), name: name}
}

// find decodes every match into out, which must be a pointer to a slice.
func (c mongoCollection) find(ctx context.Context, query bson.M, opts *options.FindOptions, out interface{}) error {
	cursor, err := c.coll.Find(ctx, query, opts)
	if err != nil {
		logger.Error(fmt.Sprintf("❌ %s query failed: %v", c.name, err))
		return translate(c.name+" find", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		logger.Error(fmt.Sprintf("❌ %s cursor decode failed: %v", c.name, err))
		return translate(c.name+" decode", err)
	}
	return nil
}

func (c mongoCollection) findByID(ctx context.Context, id string, out interface{}) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	if err := c.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(out); err != nil {
		return translate(c.name+" get "+id, err)
	}
	return nil
}

func (c mongoCollection) findOne(ctx context.Context, query bson.M, out interface{}) error {
	if err := c.coll.FindOne(ctx, query).Decode(out); err != nil {
		return translate(c.name+" find one", err)
	}
	return nil
}

// insert stores doc and returns the generated id.
func (c mongoCollection) insert(ctx context.Context, doc interface{}) (interface{}, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		if !mongo.IsDuplicateKeyError(err) {
			logger.Error(fmt.Sprintf("❌ %s insert failed: %v", c.name, err))
		}
		return nil, translate(c.name+" insert", err)
	}
	logger.Debug(fmt.Sprintf("✓ Inserted document into %s", c.name))
	return res.InsertedID, nil
}

func (c mongoCollection) insertMany(ctx context.Context, docs []interface{}) error {
	if len(docs) == 0 {
		return nil
	}
	opts := options.InsertMany().SetOrdered(false)
	res, err := c.coll.InsertMany(ctx, docs, opts)
	if err != nil {
		inserted := 0
		if res != nil {
			inserted = len(res.InsertedIDs)
		}
		logger.Error(fmt.Sprintf("❌ %s InsertMany failed: %v (inserted: %d/%d)", c.name, err, inserted, len(docs)))
		return translate(c.name+" insert many", err)
	}
	return nil
}

func (c mongoCollection) replace(ctx context.Context, id string, doc interface{}) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		logger.Error(fmt.Sprintf("❌ %s replace %s failed: %v", c.name, id, err))
		return translate(c.name+" replace", err)
	}
	if res.MatchedCount == 0 {
		return translate(c.name+" replace "+id, mongo.ErrNoDocuments)
	}
	return nil
}

func (c mongoCollection) update(ctx context.Context, id string, update bson.M) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		logger.Error(fmt.Sprintf("❌ %s update %s failed: %v", c.name, id, err))
		return translate(c.name+" update", err)
	}
	if res.MatchedCount == 0 {
		return translate(c.name+" update "+id, mongo.ErrNoDocuments)
	}
	return nil
}

func (c mongoCollection) deleteByID(ctx context.Context, id string) error {
	oid, err := toObjectID(id)
	if err != nil {
		return err
	}
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		logger.Error(fmt.Sprintf("❌ %s delete %s failed: %v", c.name, id, err))
		return translate(c.name+" delete", err)
	}
	if res.DeletedCount == 0 {
		return translate(c.name+" delete "+id, mongo.ErrNoDocuments)
	}
	return nil
}
