// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/montanaflynn/stats"

	"github.com/hemanthp-txst/profile-stats/internal/cache"
	"github.com/hemanthp-txst/profile-stats/internal/domain"
	"github.com/hemanthp-txst/profile-stats/internal/gateway"
)

// Aggregator is the use case for collecting a user's badge statistics.
// It orchestrates the profile, contribution, and LOC fetches and keeps the
// LOC cache current. All fetches run sequentially; the GitHub rate budget is
// the bottleneck, not wall time.
type Aggregator struct {
	fetcher    gateway.Fetcher
	store      *cache.Store
	logger     *log.Logger
	maxCommits int
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, store *cache.Store, logger *log.Logger, maxCommits int) *Aggregator {
	return &Aggregator{
		fetcher:    fetcher,
		store:      store,
		logger:     logger,
		maxCommits: maxCommits,
	}
}

// Aggregate fetches everything the badge needs for one run.
func (a *Aggregator) Aggregate(ctx context.Context, user string, contributionsSince time.Time) (domain.Stats, error) {
	a.logger.Println("Usecase: Starting stats aggregation...")

	profile, err := a.fetcher.FetchProfileStats(ctx, user)
	if err != nil {
		return domain.Stats{}, err
	}

	contributions, err := a.fetcher.FetchContributions(ctx, user, contributionsSince, time.Now().UTC())
	if err != nil {
		return domain.Stats{}, err
	}

	loc, err := a.TotalLOC(ctx, user)
	if err != nil {
		return domain.Stats{}, err
	}

	a.logger.Println("Usecase: Aggregation complete.")
	return domain.Stats{
		ProfileStats:  profile,
		Contributions: contributions,
		LOCStats:      loc,
	}, nil
}

// TotalLOC sums LOC totals across every repository the user owns, reusing
// cached per-repository entries whose pushed_at fingerprint is unchanged and
// recomputing the rest. The cache file is rewritten only when at least one
// entry changed, and only after every repository has been processed.
func (a *Aggregator) TotalLOC(ctx context.Context, user string) (domain.LOCStats, error) {
	entries, err := a.store.Load()
	if err != nil {
		return domain.LOCStats{}, err
	}

	repos, err := a.fetcher.ListOwnedRepos(ctx, user)
	if err != nil {
		return domain.LOCStats{}, err
	}

	var total domain.LOCStats
	updated := false

	for _, repo := range repos {
		id := strconv.FormatInt(repo.ID, 10)

		entry, ok := entries[id]
		if !ok || entry.PushedAt != repo.PushedAt {
			a.logger.Printf("  Recomputing LOC for %s (stale or missing cache entry)...\n", repo.Name)
			fresh, err := a.computeRepoLOC(ctx, user, repo.Name)
			if err != nil {
				return domain.LOCStats{}, err
			}
			// Overwrite the whole entry; stale fields are never merged.
			fresh.PushedAt = repo.PushedAt
			entries[id] = fresh
			entry = fresh
			updated = true
		}

		total.Additions += entry.Additions
		total.Deletions += entry.Deletions
		total.TotalCommits += entry.TotalCommits
		total.MyCommits += entry.MyCommits
	}
	total.Total = total.Additions + total.Deletions

	if updated {
		if err := a.store.Save(entries); err != nil {
			return domain.LOCStats{}, err
		}
		a.logger.Println("  Cache file updated.")
	}
	return total, nil
}

// computeRepoLOC walks up to maxCommits most-recent commits of one repository,
// summing the addition/deletion counts each commit reports and counting the
// commits whose author login matches the repository owner.
//
// NOTE: authorship is matched against the owner login, which equals the
// tracked user only because this tool runs against the user's own profile.
func (a *Aggregator) computeRepoLOC(ctx context.Context, owner, repo string) (cache.Entry, error) {
	shas, err := a.fetcher.ListCommitSHAs(ctx, owner, repo, a.maxCommits)
	if err != nil {
		return cache.Entry{}, err
	}

	var entry cache.Entry
	for _, sha := range shas {
		cs, err := a.fetcher.FetchCommitStats(ctx, owner, repo, sha)
		if err != nil {
			return cache.Entry{}, err
		}
		entry.Additions += cs.Additions
		entry.Deletions += cs.Deletions
		entry.TotalCommits++
		if cs.AuthorLogin == owner {
			entry.MyCommits++
		}
	}
	return entry, nil
}

// Summary describes how commits and LOC are distributed across repositories.
type Summary struct {
	Repos            int     `json:"repos"`
	MeanCommits      float64 `json:"mean_commits"`
	MedianCommits    float64 `json:"median_commits"`
	MeanLOCPerRepo   float64 `json:"mean_loc_per_repo"`
	MedianLOCPerRepo float64 `json:"median_loc_per_repo"`
}

// Summarize computes distribution figures over the cached per-repository
// entries. An empty cache yields a zero Summary.
func Summarize(entries map[string]cache.Entry) (Summary, error) {
	if len(entries) == 0 {
		return Summary{}, nil
	}

	commits := make([]float64, 0, len(entries))
	locs := make([]float64, 0, len(entries))
	for _, e := range entries {
		commits = append(commits, float64(e.TotalCommits))
		locs = append(locs, float64(e.Additions+e.Deletions))
	}

	s := Summary{Repos: len(entries)}
	var err error
	if s.MeanCommits, err = stats.Mean(commits); err != nil {
		return Summary{}, fmt.Errorf("failed to compute commit mean: %w", err)
	}
	if s.MedianCommits, err = stats.Median(commits); err != nil {
		return Summary{}, fmt.Errorf("failed to compute commit median: %w", err)
	}
	if s.MeanLOCPerRepo, err = stats.Mean(locs); err != nil {
		return Summary{}, fmt.Errorf("failed to compute LOC mean: %w", err)
	}
	if s.MedianLOCPerRepo, err = stats.Median(locs); err != nil {
		return Summary{}, fmt.Errorf("failed to compute LOC median: %w", err)
	}
	return s, nil
}
