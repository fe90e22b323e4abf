package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoTestDB is a throwaway database on the MongoDB named by BUILDEX_MONGO_URI.
type MongoTestDB struct {
	Client *mongo.Client
	DBName string
}

// NewMongoTestDB skips the test unless BUILDEX_MONGO_URI points at a reachable server.
func NewMongoTestDB(t *testing.T) *MongoTestDB {
	t.Helper()

	uri := os.Getenv("BUILDEX_MONGO_URI")
	if uri == "" {
		t.Skip("BUILDEX_MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		t.Skipf("MongoDB not available for testing: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		t.Skipf("MongoDB not responding: %v", err)
	}

	db := &MongoTestDB{
		Client: client,
		DBName: "buildex_test_" + time.Now().UTC().Format("20060102_150405_000000"),
	}
	t.Cleanup(func() { db.cleanup(t) })
	return db
}

func (m *MongoTestDB) cleanup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.Client.Database(m.DBName).Drop(ctx); err != nil {
		t.Logf("Warning: failed to drop test database %s: %v", m.DBName, err)
	}
	if err := m.Client.Disconnect(ctx); err != nil {
		t.Logf("Warning: failed to disconnect from MongoDB: %v", err)
	}
}
