package clients

import (
	"context"

	"github.com/parlakisik/buildex-matching/internal/model"
)

// CandidateSource supplies the candidate pool for a resource request. The pool
// may contain providers of other categories; ranking filters them out.
type CandidateSource interface {
	Candidates(ctx context.Context, req model.ResourceRequest) ([]model.CandidateProvider, error)
}
