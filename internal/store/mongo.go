package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/parlakisik/buildex-matching/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoClaimStore struct {
	claims *mongo.Collection
}

func NewMongoClaimStore(client *mongo.Client, dbName string, collName string) *MongoClaimStore {
	return &MongoClaimStore{
		claims: client.Database(dbName).Collection(collName),
	}
}

func (s *MongoClaimStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.claims.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "contractor_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	})
	return err
}

func (s *MongoClaimStore) CreateClaim(ctx context.Context, claim model.GuaranteeClaim) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	_, err := s.claims.InsertOne(ctx, toDocument(claim))
	return err
}

func (s *MongoClaimStore) GetClaim(ctx context.Context, claimID string) (model.GuaranteeClaim, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc claimDocument
	err := s.claims.FindOne(ctx, bson.M{"_id": claimID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.GuaranteeClaim{}, fmt.Errorf("%w: %s", model.ErrClaimNotFound, claimID)
		}
		return model.GuaranteeClaim{}, err
	}
	return doc.toClaim()
}

func (s *MongoClaimStore) ListClaimsByBooking(ctx context.Context, bookingID string) ([]model.GuaranteeClaim, error) {
	return s.find(ctx, bson.M{"booking_id": bookingID}, 0)
}

func (s *MongoClaimStore) ListClaimsByContractor(ctx context.Context, contractorID string, limit int) ([]model.GuaranteeClaim, error) {
	return s.find(ctx, bson.M{"contractor_id": contractorID}, limit)
}

func (s *MongoClaimStore) find(ctx context.Context, filter bson.M, limit int) ([]model.GuaranteeClaim, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cur, err := s.claims.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []claimDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	return fromDocuments(docs)
}

func (s *MongoClaimStore) Close() error {
	// MongoDB client is shared, no need to close here
	return nil
}
