package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/parlakisik/buildex-matching/internal/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type FirestoreClaimStore struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreClaimStore(ctx context.Context, projectID, collection string) (*FirestoreClaimStore, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreClaimStore{
		client:     client,
		collection: collection,
	}, nil
}

// CreateClaim uses Create so an existing document is never overwritten.
func (s *FirestoreClaimStore) CreateClaim(ctx context.Context, claim model.GuaranteeClaim) error {
	_, err := s.client.Collection(s.collection).Doc(claim.ID).Create(ctx, toDocument(claim))
	if err != nil {
		return fmt.Errorf("create claim: %w", err)
	}
	return nil
}

func (s *FirestoreClaimStore) GetClaim(ctx context.Context, claimID string) (model.GuaranteeClaim, error) {
	doc, err := s.client.Collection(s.collection).Doc(claimID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.GuaranteeClaim{}, fmt.Errorf("%w: %s", model.ErrClaimNotFound, claimID)
		}
		return model.GuaranteeClaim{}, fmt.Errorf("get claim: %w", err)
	}

	var d claimDocument
	if err := doc.DataTo(&d); err != nil {
		return model.GuaranteeClaim{}, fmt.Errorf("decode claim: %w", err)
	}
	return d.toClaim()
}

func (s *FirestoreClaimStore) ListClaimsByBooking(ctx context.Context, bookingID string) ([]model.GuaranteeClaim, error) {
	query := s.client.Collection(s.collection).
		Where("booking_id", "==", bookingID).
		OrderBy("created_at", firestore.Desc)
	return s.collect(ctx, query)
}

func (s *FirestoreClaimStore) ListClaimsByContractor(ctx context.Context, contractorID string, limit int) ([]model.GuaranteeClaim, error) {
	query := s.client.Collection(s.collection).
		Where("contractor_id", "==", contractorID).
		OrderBy("created_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}
	return s.collect(ctx, query)
}

func (s *FirestoreClaimStore) collect(ctx context.Context, query firestore.Query) ([]model.GuaranteeClaim, error) {
	iter := query.Documents(ctx)
	defer iter.Stop()

	var docs []claimDocument
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("iterate claims: %w", err)
		}

		var d claimDocument
		if err := doc.DataTo(&d); err != nil {
			return nil, fmt.Errorf("decode claim: %w", err)
		}
		docs = append(docs, d)
	}
	return fromDocuments(docs)
}

func (s *FirestoreClaimStore) Close() error {
	return s.client.Close()
}
