package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
)

// MongoMaintenanceRepo implements MaintenanceRepository over the
// mechanical and electrical collections.
type MongoMaintenanceRepo struct {
	mechanical mongoCollection
	electrical mongoCollection
}

// NewMongoMaintenanceRepo creates the maintenance repository
func NewMongoMaintenanceRepo(db *mongo.Database) *MongoMaintenanceRepo {
	return &MongoMaintenanceRepo{
		mechanical: newMongoCollection(db, config.CollectionMechanical),
		electrical: newMongoCollection(db, config.CollectionElectrical),
	}
}

func (r *MongoMaintenanceRepo) collection(kind domain.MaintenanceKind) (mongoCollection, error) {
	switch kind {
	case domain.KindMechanical:
		return r.mechanical, nil
	case domain.KindElectrical:
		return r.electrical, nil
	}
	return mongoCollection{}, fmt.Errorf("maintenance kind %q: %w", kind, domain.ErrValidation)
}

func (r *MongoMaintenanceRepo) List(ctx context.Context, filter domain.MaintenanceFilter) ([]domain.Maintenance, error) {
	c, err := r.collection(filter.Kind)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "tarih", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	var records []domain.Maintenance
	if err := c.find(ctx, maintenanceQuery(filter), opts, &records); err != nil {
		return nil, err
	}
	// older documents carry no kind field
	for i := range records {
		records[i].Tur = filter.Kind
	}
	return records, nil
}

func (r *MongoMaintenanceRepo) Get(ctx context.Context, kind domain.MaintenanceKind, id string) (*domain.Maintenance, error) {
	c, err := r.collection(kind)
	if err != nil {
		return nil, err
	}
	var m domain.Maintenance
	if err := c.findByID(ctx, id, &m); err != nil {
		return nil, err
	}
	m.Tur = kind
	return &m, nil
}

func (r *MongoMaintenanceRepo) Insert(ctx context.Context, record *domain.Maintenance) error {
	c, err := r.collection(record.Tur)
	if err != nil {
		return err
	}
	if record.ID.IsZero() {
		record.ID = primitive.NewObjectID()
	}
	_, err = c.insert(ctx, record)
	return err
}

func (r *MongoMaintenanceRepo) Delete(ctx context.Context, kind domain.MaintenanceKind, id string) error {
	c, err := r.collection(kind)
	if err != nil {
		return err
	}
	return c.deleteByID(ctx, id)
}
