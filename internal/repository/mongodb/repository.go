package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

const quotesCollection = "quotes"

// MongoDBRepository archives quotes in a MongoDB collection.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository connects, pings and ensures the created_at index exists.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	repo := &MongoDBRepository{
		client:   client,
		dbName:   dbName,
		collName: quotesCollection,
	}

	index := mongo.IndexModel{Keys: bson.D{{Key: "created_at", Value: 1}}}
	if _, err := repo.collection().Indexes().CreateOne(ctx, index); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to create quotes index: %w", err)
	}

	return repo, nil
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveQuote archives one computed quote.
func (r *MongoDBRepository) SaveQuote(ctx context.Context, record models.QuoteRecord) error {
	if _, err := r.collection().InsertOne(ctx, record); err != nil {
		return fmt.Errorf("failed to insert quote: %w", err)
	}
	return nil
}

// ListQuotes returns quotes created in [start, end), oldest first.
func (r *MongoDBRepository) ListQuotes(ctx context.Context, start, end time.Time) ([]models.QuoteRecord, error) {
	filter := bson.M{"created_at": bson.M{"$gte": start, "$lt": end}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.QuoteRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("failed to decode quotes: %w", err)
	}
	return records, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
