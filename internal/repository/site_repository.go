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

// MongoSiteRepo implements SiteRepository
type MongoSiteRepo struct {
	c mongoCollection
}

// NewMongoSiteRepo creates the site repository
func NewMongoSiteRepo(db *mongo.Database) *MongoSiteRepo {
	return &MongoSiteRepo{c: newMongoCollection(db, config.CollectionSites)}
}

func (r *MongoSiteRepo) List(ctx context.Context, scope domain.Scope) ([]domain.Site, error) {
	q := bson.M{}
	scopeInObjectIDs(q, scope)

	var sites []domain.Site
	opts := options.Find().SetSort(bson.D{{Key: "ad", Value: 1}})
	if err := r.c.find(ctx, q, opts, &sites); err != nil {
		return nil, err
	}
	return sites, nil
}

func (r *MongoSiteRepo) Get(ctx context.Context, id string) (*domain.Site, error) {
	var s domain.Site
	if err := r.c.findByID(ctx, id, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *MongoSiteRepo) Insert(ctx context.Context, site *domain.Site) error {
	if site.ID.IsZero() {
		site.ID = primitive.NewObjectID()
	}
	_, err := r.c.insert(ctx, site)
	return err
}

func (r *MongoSiteRepo) Update(ctx context.Context, site *domain.Site) error {
	return r.c.replace(ctx, site.ID.Hex(), site)
}

func (r *MongoSiteRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
