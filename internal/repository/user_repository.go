package repository

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/internal/config"
	"edeon_enerji/internal/domain"
)

// MongoUserRepo implements UserRepository
type MongoUserRepo struct {
	c mongoCollection
}

// NewMongoUserRepo creates the user repository
func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{c: newMongoCollection(db, config.CollectionUsers)}
}

// List returns users, optionally only those with role.
func (r *MongoUserRepo) List(ctx context.Context, role domain.Role) ([]domain.User, error) {
	q := bson.M{}
	if role != "" {
		q["rol"] = role
	}
	var users []domain.User
	opts := options.Find().SetSort(bson.D{{Key: "ad", Value: 1}})
	if err := r.c.find(ctx, q, opts, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *MongoUserRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	if err := r.c.findByID(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	if err := r.c.findOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(email))}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepo) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	var u domain.User
	if err := r.c.findOne(ctx, bson.M{"firebaseUid": uid}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *MongoUserRepo) Insert(ctx context.Context, user *domain.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	_, err := r.c.insert(ctx, user)
	return err
}

func (r *MongoUserRepo) Update(ctx context.Context, user *domain.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.c.replace(ctx, user.ID.Hex(), user)
}

func (r *MongoUserRepo) Delete(ctx context.Context, id string) error {
	return r.c.deleteByID(ctx, id)
}

func (r *MongoUserRepo) AddSite(ctx context.Context, userID, siteID string) error {
	return r.c.update(ctx, userID, bson.M{"$addToSet": bson.M{"sahalar": siteID}})
}

func (r *MongoUserRepo) RemoveSite(ctx context.Context, userID, siteID string) error {
	return r.c.update(ctx, userID, bson.M{"$pull": bson.M{"sahalar": siteID}})
}

func (r *MongoUserRepo) PullSite(ctx context.Context, siteID string) (int64, error) {
	res, err := r.c.coll.UpdateMany(ctx,
		bson.M{"sahalar": siteID},
		bson.M{"$pull": bson.M{"sahalar": siteID}},
	)
	if err != nil {
		return 0, translate("users pull site", err)
	}
	return res.ModifiedCount, nil
}
