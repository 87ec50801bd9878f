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

// MongoWorkReportRepo implements WorkReportRepository
type MongoWorkReportRepo struct {
	c mongoCollection
}

// NewMongoWorkReportRepo creates the work report repository
func NewMongoWorkReportRepo(db *mongo.Database) *MongoWorkReportRepo {
	return &MongoWorkReportRepo{c: newMongoCollection(db, config.CollectionWorkReports)}
}

func (r *MongoWorkReportRepo) List(ctx context.Context, filter domain.WorkReportFilter) ([]domain.WorkReport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "tarih", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	var reports []domain.WorkReport
	if err := r.c.find(ctx, workReportQuery(filter), opts, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *MongoWorkReportRepo) Get(ctx context.Context, id string) (*domain.WorkReport, error) {
	var w domain.WorkReport
	if err := r.c.findByID(ctx, id, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *MongoWorkReportRepo) Insert(ctx context.Context, report *domain.WorkReport) error {
	if report.ID.IsZero() {
		report.ID = primitive.NewObjectID()
	}
	_, err := r.c.insert(ctx, report)
	return err
}

func (r *MongoWorkReportRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}
