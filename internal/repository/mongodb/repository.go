package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/avolkov/marketsync/internal/domain/models"
)

// Repository defines the interface for sync-run history storage.
type Repository interface {
	SaveRun(ctx context.Context, report models.SyncRunReport) error
	LatestRuns(ctx context.Context, limit int64) ([]models.SyncRunReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: "sync_runs",
	}, nil
}

// SaveRun appends one run report to the history collection.
func (r *MongoDBRepository) SaveRun(ctx context.Context, report models.SyncRunReport) error {
	collection := r.client.Database(r.dbName).Collection(r.collName)
	if _, err := collection.InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert run report: %w", err)
	}
	return nil
}

// LatestRuns returns the most recent run reports, newest first.
func (r *MongoDBRepository) LatestRuns(ctx context.Context, limit int64) ([]models.SyncRunReport, error) {
	collection := r.client.Database(r.dbName).Collection(r.collName)

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(limit)
	cursor, err := collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query run reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.SyncRunReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode run reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
