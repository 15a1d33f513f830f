// Package cache persists per-repository LOC totals between runs as a flat
// text file, one record per line. Entries are keyed by repository id and
// fingerprinted by the repository's last-push timestamp; an entry is reused
// only while the fingerprint still matches.
package cache

import (
	"bufio"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// header names the column order for anyone reading the file by hand.
const header = "# repository_id total_commits my_commits loc_add loc_del pushed_at"

// Entry holds the cached totals for one repository.
type Entry struct {
	TotalCommits int
	MyCommits    int
	Additions    int
	Deletions    int
	// PushedAt is the freshness fingerprint. Any mismatch with the live
	// repository forces a full recompute and overwrite of the entry.
	PushedAt string
}

// Store reads and writes one cache file. Single-writer, single-process;
// concurrent runs against the same file are not supported.
type Store struct {
	path string
}

// NewStore creates a Store bound to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// FileFor returns the deterministic cache file path for a user and scope,
// derived from a short hash so the filename stays stable across runs.
func FileFor(dir, user, scope string) string {
	sum := sha256.Sum256([]byte(user + ":" + scope))
	return filepath.Join(dir, fmt.Sprintf("%s_%x.txt", scope, sum[:4]))
}

// Path returns the file path this store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Load reads the cache file into a map keyed by repository id. A missing file
// yields an empty map. Blank lines and lines starting with '#' are ignored.
// Malformed lines are skipped rather than failing the whole load.
func (s *Store) Load() (map[string]Entry, error) {
	entries := make(map[string]Entry)

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, fmt.Errorf("failed to open cache file %s: %w", s.path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		id, entry, ok := parseLine(line)
		if !ok {
			continue
		}
		entries[id] = entry
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read cache file %s: %w", s.path, err)
	}
	return entries, nil
}

// parseLine decodes one record. Fields are whitespace-separated in the order
// the header documents; missing trailing fields default to zero or empty.
// A line with no counts at all, or with an unparsable count, is rejected.
func parseLine(line string) (string, Entry, bool) {
	parts := strings.Fields(line)
	if len(parts) < 2 {
		return "", Entry{}, false
	}

	var entry Entry
	counts := []*int{&entry.TotalCommits, &entry.MyCommits, &entry.Additions, &entry.Deletions}
	for i, field := range counts {
		if i+1 >= len(parts) {
			break
		}
		n, err := strconv.Atoi(parts[i+1])
		if err != nil || n < 0 {
			return "", Entry{}, false
		}
		*field = n
	}
	if len(parts) > 5 {
		entry.PushedAt = parts[5]
	}
	return parts[0], entry, true
}

// Save writes every entry back to disk, sorted by repository id so the file
// is deterministic for a given map. The parent directory is created if needed.
func (s *Store) Save(entries map[string]Entry) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create cache directory %s: %w", dir, err)
		}
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var b strings.Builder
	b.WriteString(header)
	b.WriteByte('\n')
	for _, id := range ids {
		e := entries[id]
		fmt.Fprintf(&b, "%s %d %d %d %d %s\n",
			id, e.TotalCommits, e.MyCommits, e.Additions, e.Deletions, e.PushedAt)
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write cache file %s: %w", s.path, err)
	}
	return nil
}
