// Package domain contains the core data structures and domain logic for the application.
package domain

// ProfileStats holds the counts read from the user's public profile.
type ProfileStats struct {
	Repos     int `json:"repos"`
	Followers int `json:"followers"`
	Stars     int `json:"stars"`
}

// LOCStats holds line-of-code totals accumulated across all owned repositories.
// Additions and deletions are the per-commit counts reported by the API, not a
// static line count of current files.
type LOCStats struct {
	Additions    int `json:"loc_add"`
	Deletions    int `json:"loc_del"`
	Total        int `json:"loc_total"`
	TotalCommits int `json:"total_commits"`
	MyCommits    int `json:"my_commits"`
}

// Stats is the full set of badge values for one run.
type Stats struct {
	ProfileStats
	Contributions int `json:"contributions"`
	LOCStats
}

// Repo is one repository from the owned-repositories listing. PushedAt is the
// last-push timestamp used as the cache freshness fingerprint.
type Repo struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	PushedAt string `json:"pushed_at"`
}

// CommitStats is the detail fetched for a single commit. AuthorLogin is empty
// when the API reports no linked author account.
type CommitStats struct {
	Additions   int
	Deletions   int
	AuthorLogin string
}
