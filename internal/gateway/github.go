// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"

	"github.com/hemanthp-txst/profile-stats/internal/domain"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchProfileStats returns public repo count, followers, and the star
	// total across the user's owned, non-fork, public repositories.
	FetchProfileStats(ctx context.Context, user string) (domain.ProfileStats, error)
	// FetchContributions returns the total contribution count for the
	// calendar window [from, to].
	FetchContributions(ctx context.Context, user string, from, to time.Time) (int, error)
	// ListOwnedRepos lists the user's repositories with their freshness
	// fingerprints.
	ListOwnedRepos(ctx context.Context, user string) ([]domain.Repo, error)
	// ListCommitSHAs returns up to max most-recent commit SHAs for a
	// repository. An empty repository yields an empty slice, not an error.
	ListCommitSHAs(ctx context.Context, owner, repo string, max int) ([]string, error)
	// FetchCommitStats returns additions, deletions, and author login for
	// one commit.
	FetchCommitStats(ctx context.Context, owner, repo, sha string) (domain.CommitStats, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
}

// profileStatsQuery pages through the user's owned public repositories,
// collecting star counts. Follower and repository totals are reported on
// every page; only the star sum needs accumulation.
type profileStatsQuery struct {
	User struct {
		Repositories struct {
			TotalCount githubv4.Int
			PageInfo struct {
				HasNextPage githubv4.Boolean
				EndCursor   githubv4.String
			}
			Edges []struct {
				Node struct {
					Stargazers struct {
						TotalCount githubv4.Int
					}
				}
			}
		} `graphql:"repositories(first: 100, after: $cursor, ownerAffiliations: OWNER, isFork: false, privacy: PUBLIC)"`
		Followers struct {
			TotalCount githubv4.Int
		}
	} `graphql:"user(login: $login)"`
}

// contributionsQuery asks GitHub for the server-side aggregated contribution
// total over a window; no pagination is involved.
type contributionsQuery struct {
	User struct {
		ContributionsCollection struct {
			ContributionCalendar struct {
				TotalContributions githubv4.Int
			}
		} `graphql:"contributionsCollection(from: $from, to: $to)"`
	} `graphql:"user(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchProfileStats(ctx context.Context, user string) (domain.ProfileStats, error) {
	g.logger.Println("Fetching profile stats using GraphQL API...")
	variables := map[string]interface{}{
		"login":  githubv4.String(user),
		"cursor": (*githubv4.String)(nil),
	}

	var stats domain.ProfileStats
	for {
		var q profileStatsQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return domain.ProfileStats{}, fmt.Errorf("failed to execute profile stats query: %w", err)
		}

		repos := q.User.Repositories
		stats.Repos = int(repos.TotalCount)
		stats.Followers = int(q.User.Followers.TotalCount)
		for _, edge := range repos.Edges {
			stats.Stars += int(edge.Node.Stargazers.TotalCount)
		}

		if !repos.PageInfo.HasNextPage {
			break
		}
		variables["cursor"] = githubv4.NewString(repos.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Println("Completed fetching profile stats.")
	return stats, nil
}

func (g *GitHubGateway) FetchContributions(ctx context.Context, user string, from, to time.Time) (int, error) {
	g.logger.Println("Fetching contribution count using GraphQL API...")
	variables := map[string]interface{}{
		"login": githubv4.String(user),
		"from":  githubv4.DateTime{Time: from},
		"to":    githubv4.DateTime{Time: to},
	}

	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return 0, fmt.Errorf("failed to execute contributions query: %w", err)
	}
	return int(q.User.ContributionsCollection.ContributionCalendar.TotalContributions), nil
}

func (g *GitHubGateway) ListOwnedRepos(ctx context.Context, user string) ([]domain.Repo, error) {
	g.logger.Println("Listing repositories using REST API...")
	opts := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var repos []domain.Repo
	for {
		page, resp, err := g.restClient.Repositories.ListByUser(ctx, user, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories for %s: %w", user, err)
		}
		for _, r := range page {
			repos = append(repos, domain.Repo{
				ID:       r.GetID(),
				Name:     r.GetName(),
				PushedAt: r.GetPushedAt().Format(time.RFC3339),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of repositories...")
	}
	g.logger.Printf("Completed listing %d repositories.\n", len(repos))
	return repos, nil
}

func (g *GitHubGateway) ListCommitSHAs(ctx context.Context, owner, repo string, max int) ([]string, error) {
	perPage := max
	if perPage > 100 {
		perPage = 100
	}
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: perPage}}

	var shas []string
	for len(shas) < max {
		commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, repo, opts)
		if err != nil {
			// GitHub answers 409 for repositories with no commits.
			if resp != nil && resp.StatusCode == http.StatusConflict {
				return nil, nil
			}
			return nil, fmt.Errorf("failed to list commits for %s/%s: %w", owner, repo, err)
		}
		for _, c := range commits {
			shas = append(shas, c.GetSHA())
			if len(shas) == max {
				break
			}
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return shas, nil
}

func (g *GitHubGateway) FetchCommitStats(ctx context.Context, owner, repo, sha string) (domain.CommitStats, error) {
	commit, _, err := g.restClient.Repositories.GetCommit(ctx, owner, repo, sha, nil)
	if err != nil {
		return domain.CommitStats{}, fmt.Errorf("failed to fetch commit %s/%s@%s: %w", owner, repo, sha, err)
	}
	return domain.CommitStats{
		Additions:   commit.GetStats().GetAdditions(),
		Deletions:   commit.GetStats().GetDeletions(),
		AuthorLogin: commit.GetAuthor().GetLogin(),
	}, nil
}
