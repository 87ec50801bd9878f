package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
)

// MongoStockRepo implements StockRepository
type MongoStockRepo struct {
	c mongoCollection
}

// NewMongoStockRepo creates the stock repository
func NewMongoStockRepo(db *mongo.Database) *MongoStockRepo {
	return &MongoStockRepo{c: newMongoCollection(db, config.CollectionStock)}
}

func (r *MongoStockRepo) List(ctx context.Context, filter domain.StockFilter) ([]domain.StockItem, error) {
	var items []domain.StockItem
	opts := options.Find().SetSort(bson.D{{Key: "ad", Value: 1}})
	if err := r.c.find(ctx, stockQuery(filter), opts, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *MongoStockRepo) Get(ctx context.Context, id string) (*domain.StockItem, error) {
	var s domain.StockItem
	if err := r.c.findByID(ctx, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoStockRepo) Insert(ctx context.Context, item *domain.StockItem) error {
	if item.ID.IsZero() {
		item.ID = primitive.NewObjectID()
	}
	_, err := r.c.insert(ctx, item)
	return err
}

func (r *MongoStockRepo) Update(ctx context.Context, item *domain.StockItem) error {
	return r.c.replace(ctx, item.ID.Hex(), item)
}

// Adjust changes the quantity atomically and returns the updated item.
// The quantity never goes below zero.
func (r *MongoStockRepo) Adjust(ctx context.Context, id string, delta float64) (*domain.StockItem, error) {
	oid, err := toObjectID(id)
	if err != nil {
		return nil, err
	}

	query := bson.M{"_id": oid}
	if delta < 0 {
		query["miktar"] = bson.M{"$gte": -delta}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var item domain.StockItem
	err = r.c.coll.FindOneAndUpdate(ctx, query, bson.M{
		"$inc": bson.M{"miktar": delta},
		"$set": bson.M{"guncellenmeTarihi": time.Now()},
	}, opts).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) && delta < 0 {
			if _, getErr := r.Get(ctx, id); getErr == nil {
				return nil, domain.NewValidationError("miktar", "Stok miktarı yetersiz")
			}
		}
		return nil, translate("stock adjust", err)
	}
	return &item, nil
}

func (r *MongoStockRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
