package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
	"edeon_enerji/pkg/logger"
)

// MongoProductionRepo implements ProductionRepository
type MongoProductionRepo struct {
	c mongoCollection
}

// NewMongoProductionRepo creates the production repository
func NewMongoProductionRepo(db *mongo.Database) *MongoProductionRepo {
	return &MongoProductionRepo{c: newMongoCollection(db, config.CollectionProduction)}
}

func (r *MongoProductionRepo) List(ctx context.Context, filter domain.ProductionFilter) ([]domain.Production, error) {
	var records []domain.Production
	if err := r.c.find(ctx, productionQuery(filter), productionFindOptions(filter), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *MongoProductionRepo) Get(ctx context.Context, id string) (*domain.Production, error) {
	var p domain.Production
	if err := r.c.findByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Insert relies on the santral_gun_unique index to reject a second
// record for the same plant and day.
func (r *MongoProductionRepo) Insert(ctx context.Context, record *domain.Production) error {
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	_, err := r.c.insert(ctx, record)
	return err
}

func (r *MongoProductionRepo) ExistsForDay(ctx context.Context, santralID, gun string) (bool, error) {
	n, err := r.c.coll.CountDocuments(ctx, bson.M{"santralId": santralID, "gun": gun})
	if err != nil {
		return false, translate("production exists", err)
	}
	return n > 0, nil
}

func (r *MongoProductionRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

func (r *MongoProductionRepo) DeleteByPlant(ctx context.Context, santralID string) (int64, error) {
	res, err := r.c.coll.DeleteMany(ctx, bson.M{"santralId": santralID})
	if err != nil {
		logger.Error(fmt.Sprintf("❌ Production delete for plant %s failed: %v", santralID, err))
		return 0, translate("production delete by plant", err)
	}
	return res.DeletedCount, nil
}
