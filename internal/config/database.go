package config

import (
	"context"
	"fmt"
	"time"

	influxdb3 "github.com/InfluxCommunity/influxdb3-go/v2/influxdb3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/pkg/logger"
)

// Collection names. They match the collections the dashboard has always
// used so existing exports can be imported as-is.
const (
	CollectionPlants       = "santraller"
	CollectionProduction   = "uretimVerileri"
	CollectionFaults       = "arizalar"
	CollectionMechanical   = "mekanikBakimlar"
	CollectionElectrical   = "elektrikBakimlar"
	CollectionSites        = "sahalar"
	CollectionUsers        = "kullanicilar"
	CollectionStock        = "stoklar"
	CollectionWorkReports  = "isRaporlari"
	CollectionNotification = "bildirimler"
)

// MongoDatabase wraps MongoDB client
type MongoDatabase struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// InfluxDatabase wraps InfluxDB v3 client
type InfluxDatabase struct {
	Client   *influxdb3.Client
	Database string
}

// InitMongo connects, pings, and makes sure indexes exist.
func InitMongo(cfg *Config) (*MongoDatabase, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(50).
		SetMinPoolSize(5)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	database := client.Database(cfg.MongoDB)

	if err := createMongoIndexes(ctx, database); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Infof("✓ MongoDB connected: %s", cfg.MongoDB)

	return &MongoDatabase{
		Client:   client,
		Database: database,
	}, nil
}

func createMongoIndexes(ctx context.Context, db *mongo.Database) error {
	for name, models := range mongoIndexes() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// mongoIndexes lists the indexes per collection. The day uniqueness of
// production records only covers documents that carry a string gun, so
// older records without it do not collide.
func mongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollectionPlants: {
			{Keys: bson.D{{Key: "olusturmaTarihi", Value: -1}}},
			{Keys: bson.D{{Key: "musteriId", Value: 1}}},
		},
		CollectionProduction: {
			{Keys: bson.D{{Key: "santralId", Value: 1}, {Key: "tarih", Value: -1}}},
			{
				Keys:    bson.D{{Key: "santralId", Value: 1}, {Key: "gun", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("santral_gun_unique").
					SetPartialFilterExpression(bson.M{"gun": bson.M{"$type": "string"}}),
			},
		},
		CollectionFaults: {
			{Keys: bson.D{{Key: "olusturmaTarihi", Value: -1}}},
			{Keys: bson.D{{Key: "saha", Value: 1}, {Key: "durum", Value: 1}}},
		},
		CollectionMechanical: {
			{Keys: bson.D{{Key: "sahaId", Value: 1}, {Key: "tarih", Value: -1}}},
		},
		CollectionElectrical: {
			{Keys: bson.D{{Key: "sahaId", Value: 1}, {Key: "tarih", Value: -1}}},
		},
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "sahalar", Value: 1}}},
			{
				Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
				Options: options.Index().SetUnique(true).SetSparse(true),
			},
		},
		CollectionStock: {
			{Keys: bson.D{{Key: "sahaId", Value: 1}}},
		},
		CollectionWorkReports: {
			{Keys: bson.D{{Key: "saha", Value: 1}, {Key: "tarih", Value: -1}}},
		},
		CollectionNotification: {
			{Keys: bson.D{{Key: "kullaniciId", Value: 1}, {Key: "tarih", Value: -1}}},
		},
	}
}

// Close disconnects the client
func (m *MongoDatabase) Close() error {
	if m.Client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return m.Client.Disconnect(ctx)
	}
	return nil
}

// Collection returns a handle to the named collection.
func (m *MongoDatabase) Collection(name string) *mongo.Collection {
	return m.Database.Collection(name)
}

// InitInflux creates the InfluxDB v3 client used by the production mirror.
func InitInflux(cfg *Config) (*InfluxDatabase, error) {
	logger.Infof("⚡ Initializing InfluxDB v3 connection: %s / %s (token %s)",
		cfg.InfluxURL, cfg.InfluxDatabase, maskToken(cfg.InfluxToken))

	clientConfig := influxdb3.ClientConfig{
		Host:     cfg.InfluxURL,
		Database: cfg.InfluxDatabase,
		WriteOptions: &influxdb3.WriteOptions{
			DefaultTags: map[string]string{
				"source": "edeon_enerji",
			},
		},
	}
	if cfg.InfluxToken != "" {
		clientConfig.Token = cfg.InfluxToken
	}

	client, err := influxdb3.New(clientConfig)
	if err != nil {
		return nil, fmt.Errorf("influx client creation failed: %w", err)
	}
	if client == nil {
		return nil, fmt.Errorf("influx client is nil after creation")
	}

	logger.Infof("✓ InfluxDB client ready: %s", cfg.InfluxDatabase)

	return &InfluxDatabase{
		Client:   client,
		Database: cfg.InfluxDatabase,
	}, nil
}

// Close closes the client
func (i *InfluxDatabase) Close() error {
	if i.Client != nil {
		return i.Client.Close()
	}
	return nil
}

// Helper to mask token in logs
func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
