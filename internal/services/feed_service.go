package services

import (
	"context"
	"log"
	"sort"

	"github.com/koewave/koewave-backend/internal/models"
	"github.com/koewave/koewave-backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// maxFanOutConcurrency bounds the number of per-author reads in flight.
const maxFanOutConcurrency = 8

// FeedResult distinguishes "viewer follows nobody" (HasFeeds false) from
// "viewer follows authors who published nothing" (HasFeeds true, empty
// Works).
type FeedResult struct {
	HasFeeds bool          `json:"has_feeds"`
	Works    []models.Work `json:"works"`
}

// FeedService assembles the follow feed: fan out across followed authors'
// recent works, merge, sort and truncate. It only reads; no feed state is
// materialized between calls.
type FeedService struct {
	workRepository   repositories.WorkRepository
	followRepository repositories.FollowRepository
}

// NewFeedService creates a new FeedService
func NewFeedService(workRepo repositories.WorkRepository, followRepo repositories.FollowRepository) *FeedService {
	return &FeedService{
		workRepository:   workRepo,
		followRepository: followRepo,
	}
}

// AssembleFeed builds the viewer's feed. Each followed author contributes at
// most perAuthorLimit works so one prolific author cannot starve the rest;
// the merged result is trimmed to totalLimit and then filtered by allowed
// content ratings. A failed per-author fetch contributes zero works instead
// of aborting the assembly.
func (s *FeedService) AssembleFeed(ctx context.Context, viewerID string, perAuthorLimit, totalLimit int, allowedRatings []string) (*FeedResult, error) {
	authorIDs, err := s.followRepository.GetFollowingIDs(ctx, viewerID, 0)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return &FeedResult{HasFeeds: false, Works: []models.Work{}}, nil
	}

	perAuthor := make([][]models.Work, len(authorIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxFanOutConcurrency)
	for i, authorID := range authorIDs {
		g.Go(func() error {
			works, err := s.workRepository.GetRecentWorksByUserID(gctx, authorID, int64(perAuthorLimit))
			if err != nil {
				log.Printf("feed: fetching works of %s failed, skipping: %v", authorID, err)
				return nil
			}
			perAuthor[i] = works
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := []models.Work{}
	for _, works := range perAuthor {
		merged = append(merged, works...)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})
	if totalLimit > 0 && len(merged) > totalLimit {
		merged = merged[:totalLimit]
	}

	return &FeedResult{HasFeeds: true, Works: filterByRating(merged, allowedRatings)}, nil
}

// filterByRating keeps works whose content rating is in the allowed set. An
// empty set means the caller accepts everything.
func filterByRating(works []models.Work, allowedRatings []string) []models.Work {
	if len(allowedRatings) == 0 {
		return works
	}
	allowed := make(map[string]bool, len(allowedRatings))
	for _, r := range allowedRatings {
		allowed[r] = true
	}
	filtered := []models.Work{}
	for _, w := range works {
		if allowed[w.ContentRating] {
			filtered = append(filtered, w)
		}
	}
	return filtered
}
