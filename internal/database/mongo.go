package database

import (
	"context"
	"fmt"
	"time"

	"agricert/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const batchSize = 1000

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
	logger   *zap.Logger
}

func NewMongoDB(uri, dbName string, logger *zap.Logger) (*MongoDB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", dbName))

	return &MongoDB{
		Client:   client,
		Database: client.Database(dbName),
		logger:   logger,
	}, nil
}

func (m *MongoDB) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.Client.Disconnect(ctx)
}

// InsertRecords writes records in batches, optionally dropping the collection
// first. It returns the number of inserted documents.
func (m *MongoDB) InsertRecords(collectionName string, records []models.Record, dropExisting bool) (int, error) {
	collection := m.Database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if dropExisting {
		if err := collection.Drop(ctx); err != nil {
			return 0, fmt.Errorf("failed to drop collection %s: %w", collectionName, err)
		}
		m.logger.Warn("Dropped collection", zap.String("collection", collectionName))
	}

	inserted := 0
	for start := 0; start < len(records); start += batchSize {
		end := start + batchSize
		if end > len(records) {
			end = len(records)
		}

		documents := make([]interface{}, 0, end-start)
		for _, r := range records[start:end] {
			documents = append(documents, r)
		}

		res, err := collection.InsertMany(ctx, documents)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert batch: %w", err)
		}
		inserted += len(res.InsertedIDs)
		m.logger.Debug("Inserted batch", zap.Int("documents", len(res.InsertedIDs)))
	}

	m.logger.Info("Insert completed", zap.String("collection", collectionName), zap.Int("documents", inserted))
	return inserted, nil
}

// FindRecords reads every document of the collection and derives the
// address parts and certification dates, as the spreadsheet loader does.
func (m *MongoDB) FindRecords(collectionName string) ([]models.Record, error) {
	collection := m.Database.Collection(collectionName)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cursor, err := collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to find documents: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.Record
	for cursor.Next(ctx) {
		var r models.Record
		if err := cursor.Decode(&r); err != nil {
			return nil, fmt.Errorf("failed to decode document: %w", err)
		}
		if err := r.Derive(); err != nil {
			return nil, fmt.Errorf("document %d: %w", len(records)+1, err)
		}
		records = append(records, r)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	m.logger.Info("Loaded records", zap.String("collection", collectionName), zap.Int("documents", len(records)))
	return records, nil
}
