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

// MongoPlantRepo implements PlantRepository
type MongoPlantRepo struct {
	c mongoCollection
}

// NewMongoPlantRepo creates the plant repository
func NewMongoPlantRepo(db *mongo.Database) *MongoPlantRepo {
	return &MongoPlantRepo{c: newMongoCollection(db, config.CollectionPlants)}
}

func (r *MongoPlantRepo) List(ctx context.Context, filter domain.PlantFilter) ([]domain.Plant, error) {
	opts := options.Find().SetSort(bson.D{{Key: "olusturmaTarihi", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	var plants []domain.Plant
	if err := r.c.find(ctx, plantQuery(filter), opts, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

func (r *MongoPlantRepo) Get(ctx context.Context, id string) (*domain.Plant, error) {
	var p domain.Plant
	if err := r.c.findByID(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoPlantRepo) Insert(ctx context.Context, plant *domain.Plant) error {
	if plant.ID.IsZero() {
		plant.ID = primitive.NewObjectID()
	}
	_, err := r.c.insert(ctx, plant)
	return err
}

func (r *MongoPlantRepo) Update(ctx context.Context, plant *domain.Plant) error {
	return r.c.replace(ctx, plant.ID.Hex(), plant)
}

func (r *MongoPlantRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
