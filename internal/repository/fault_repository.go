package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
)

// MongoFaultRepo implements FaultRepository
type MongoFaultRepo struct {
	c mongoCollection
}

// NewMongoFaultRepo creates the fault repository
func NewMongoFaultRepo(db *mongo.Database) *MongoFaultRepo {
	return &MongoFaultRepo{c: newMongoCollection(db, config.CollectionFaults)}
}

func (r *MongoFaultRepo) List(ctx context.Context, filter domain.FaultFilter) ([]domain.Fault, error) {
	var faults []domain.Fault
	if err := r.c.find(ctx, faultQuery(filter), faultFindOptions(filter), &faults); err != nil {
		return nil, err
	}
	return faults, nil
}

func (r *MongoFaultRepo) Get(ctx context.Context, id string) (*domain.Fault, error) {
	var f domain.Fault
	if err := r.c.findByID(ctx, id, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *MongoFaultRepo) Insert(ctx context.Context, fault *domain.Fault) error {
	if fault.ID.IsZero() {
		fault.ID = primitive.NewObjectID()
	}
	_, err := r.c.insert(ctx, fault)
	return err
}

func (r *MongoFaultRepo) Update(ctx context.Context, fault *domain.Fault) error {
	return r.c.replace(ctx, fault.ID.Hex(), fault)
}

// AddComment appends to the thread without rewriting the document.
func (r *MongoFaultRepo) AddComment(ctx context.Context, id string, comment domain.Comment) error {
	return r.c.update(ctx, id, bson.M{
		"$push": bson.M{"yorumlar": comment},
		"$set":  bson.M{"guncellenmeTarihi": time.Now()},
	})
}

func (r *MongoFaultRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
