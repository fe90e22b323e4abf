package matching

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/parlakisik/buildex-matching/internal/model"
)

const DefaultTopN = 4

type RankingService struct {
	scorer *Scorer
	topN   int
	now    func() time.Time
}

func NewRankingService(scorer *Scorer, topN int) (*RankingService, error) {
	if scorer == nil {
		return nil, fmt.Errorf("%w: scorer is required", model.ErrInvalidInput)
	}
	if topN <= 0 {
		return nil, fmt.Errorf("%w: top-N must be positive, got %d", model.ErrInvalidInput, topN)
	}
	return &RankingService{
		scorer: scorer,
		topN:   topN,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (r *RankingService) TopN() int { return r.topN }

// Rank scores every candidate in pool whose category matches the request and
// returns at most TopN of them, best first. Equal scores keep pool order.
// An empty pool, or one with no matching category, yields an empty ranking.
// Candidates that cannot be scored are listed in Disqualified.
func (r *RankingService) Rank(req model.ResourceRequest, pool []model.CandidateProvider) (model.Ranking, error) {
	rt, ok := model.ParseResourceType(string(req.ResourceType))
	if !ok {
		return model.Ranking{}, fmt.Errorf("%w: unknown resource type %q", model.ErrInvalidInput, req.ResourceType)
	}
	if !req.Budget.IsPositive() {
		return model.Ranking{}, fmt.Errorf("%w: budget must be positive, got %s", model.ErrInvalidInput, req.Budget)
	}

	ranking := model.Ranking{
		ResourceType:    rt,
		Location:        req.Location,
		Budget:          req.Budget,
		TotalCandidates: len(pool),
		Providers:       []model.ScoredProvider{},
		RankedAt:        r.now(),
	}

	scored := make([]model.ScoredProvider, 0, len(pool))
	for _, c := range pool {
		if !strings.EqualFold(string(c.Category), string(rt)) {
			continue
		}
		if reason := checkCandidate(c); reason != "" {
			ranking.Disqualified = append(ranking.Disqualified, model.DisqualifiedCandidate{ProviderID: c.ID, Reason: reason})
			continue
		}
		sp, err := r.scorer.Score(c, req.Budget)
		if err != nil {
			return model.Ranking{}, err
		}
		scored = append(scored, sp)
	}
	ranking.Matched = len(scored)

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > r.topN {
		scored = scored[:r.topN]
	}
	ranking.Providers = append(ranking.Providers, scored...)
	return ranking, nil
}
