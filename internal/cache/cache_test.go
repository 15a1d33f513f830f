package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Load(t *testing.T) {
	testCases := []struct {
		name     string
		content  string
		expected map[string]Entry
	}{
		{
			name: "happy path - full records load",
			content: "# repository_id total_commits my_commits loc_add loc_del pushed_at\n" +
				"101 10 7 1200 300 2025-02-03T04:05:06Z\n" +
				"202 0 0 0 0 2025-01-01T00:00:00Z\n",
			expected: map[string]Entry{
				"101": {TotalCommits: 10, MyCommits: 7, Additions: 1200, Deletions: 300, PushedAt: "2025-02-03T04:05:06Z"},
				"202": {PushedAt: "2025-01-01T00:00:00Z"},
			},
		},
		{
			name: "malformed line - single token is skipped, rest still loads",
			content: "101\n" +
				"202 5 3 10 2 2025-01-01T00:00:00Z\n",
			expected: map[string]Entry{
				"202": {TotalCommits: 5, MyCommits: 3, Additions: 10, Deletions: 2, PushedAt: "2025-01-01T00:00:00Z"},
			},
		},
		{
			name: "malformed line - non-numeric count is skipped",
			content: "101 ten 7 1200 300 2025-02-03T04:05:06Z\n" +
				"202 5 3 10 2 2025-01-01T00:00:00Z\n",
			expected: map[string]Entry{
				"202": {TotalCommits: 5, MyCommits: 3, Additions: 10, Deletions: 2, PushedAt: "2025-01-01T00:00:00Z"},
			},
		},
		{
			name: "missing trailing fields default to zero and empty",
			content: "101 10 7\n" +
				"202 5 3 10 2\n",
			expected: map[string]Entry{
				"101": {TotalCommits: 10, MyCommits: 7},
				"202": {TotalCommits: 5, MyCommits: 3, Additions: 10, Deletions: 2},
			},
		},
		{
			name:     "comments and blank lines are ignored",
			content:  "# header\n\n   \n# another comment\n",
			expected: map[string]Entry{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "loc_test.txt")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o644))

			entries, err := NewStore(path).Load()

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, entries)
		})
	}
}

func TestStore_Load_MissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	entries, err := store.Load()

	assert.NoError(t, err)
	assert.Empty(t, entries)
}

// TestStore_RoundTrip verifies that saving and reloading yields an identical
// in-memory mapping.
func TestStore_RoundTrip(t *testing.T) {
	original := map[string]Entry{
		"101": {TotalCommits: 10, MyCommits: 7, Additions: 1200, Deletions: 300, PushedAt: "2025-02-03T04:05:06Z"},
		"202": {TotalCommits: 1, MyCommits: 1, Additions: 5, Deletions: 0, PushedAt: "2025-01-01T00:00:00Z"},
		"303": {}, // zero entry with no fingerprint survives the trip too
	}
	store := NewStore(filepath.Join(t.TempDir(), "loc_roundtrip.txt"))

	require.NoError(t, store.Save(original))
	reloaded, err := store.Load()

	assert.NoError(t, err)
	assert.Equal(t, original, reloaded)
}

func TestStore_Save_Deterministic(t *testing.T) {
	entries := map[string]Entry{
		"300": {TotalCommits: 3},
		"100": {TotalCommits: 1},
		"200": {TotalCommits: 2},
	}
	path := filepath.Join(t.TempDir(), "loc_order.txt")
	store := NewStore(path)

	require.NoError(t, store.Save(entries))
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "#"), "first line should be the column header")
	assert.True(t, strings.HasPrefix(lines[1], "100 "))
	assert.True(t, strings.HasPrefix(lines[2], "200 "))
	assert.True(t, strings.HasPrefix(lines[3], "300 "))
}

func TestStore_Save_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "loc.txt")
	store := NewStore(path)

	require.NoError(t, store.Save(map[string]Entry{"1": {TotalCommits: 1}}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileFor(t *testing.T) {
	a := FileFor("cache", "octocat", "loc")
	b := FileFor("cache", "octocat", "loc")
	c := FileFor("cache", "someone-else", "loc")

	assert.Equal(t, a, b, "same user and scope must map to the same file")
	assert.NotEqual(t, a, c, "different users must map to different files")
	assert.True(t, strings.HasPrefix(filepath.Base(a), "loc_"))
	assert.True(t, strings.HasSuffix(a, ".txt"))
}
