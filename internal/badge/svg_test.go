package badge

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hemanthp-txst/profile-stats/internal/domain"
)

const testSVG = `<?xml version="1.0" encoding="utf-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="400" height="200">
  <text x="10" y="20">Stars: <tspan id="star_data">0</tspan></text>
  <text x="10" y="40">Repos: <tspan id="repo_data">0</tspan></text>
  <text x="10" y="60">Untouched: <tspan id="custom_field">keep me</tspan></text>
  <rect x="0" y="0" width="400" height="200" fill="none"/>
</svg>`

func parseDoc(t *testing.T, svg string) *etree.Document {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(svg))
	return doc
}

func TestPatch(t *testing.T) {
	t.Run("replaces text of recognized tspan ids", func(t *testing.T) {
		doc := parseDoc(t, testSVG)
		stats := domain.Stats{
			ProfileStats: domain.ProfileStats{Repos: 12, Stars: 42},
		}

		patched := Patch(doc, stats)

		assert.Equal(t, 2, patched)
		assert.Equal(t, "42", doc.FindElement("//tspan[@id='star_data']").Text())
		assert.Equal(t, "12", doc.FindElement("//tspan[@id='repo_data']").Text())
		// Unrecognized ids stay untouched.
		assert.Equal(t, "keep me", doc.FindElement("//tspan[@id='custom_field']").Text())
	})

	t.Run("document without matching ids is left unchanged", func(t *testing.T) {
		const plain = `<svg xmlns="http://www.w3.org/2000/svg"><text><tspan id="other">x</tspan></text></svg>`
		doc := parseDoc(t, plain)

		patched := Patch(doc, domain.Stats{ProfileStats: domain.ProfileStats{Stars: 42}})

		assert.Equal(t, 0, patched)
		assert.Equal(t, "x", doc.FindElement("//tspan").Text())
	})

	t.Run("all eight badge fields are wired", func(t *testing.T) {
		const full = `<svg xmlns="http://www.w3.org/2000/svg"><text>
			<tspan id="repo_data">-</tspan><tspan id="contrib_data">-</tspan>
			<tspan id="star_data">-</tspan><tspan id="commit_data">-</tspan>
			<tspan id="follower_data">-</tspan><tspan id="loc_data">-</tspan>
			<tspan id="loc_add">-</tspan><tspan id="loc_del">-</tspan>
		</text></svg>`
		doc := parseDoc(t, full)
		stats := domain.Stats{
			ProfileStats:  domain.ProfileStats{Repos: 1, Followers: 2, Stars: 3},
			Contributions: 4,
			LOCStats:      domain.LOCStats{Additions: 5, Deletions: 6, Total: 11, TotalCommits: 7},
		}

		patched := Patch(doc, stats)

		assert.Equal(t, 8, patched)
		assert.Equal(t, "11", doc.FindElement("//tspan[@id='loc_data']").Text())
		assert.Equal(t, "7", doc.FindElement("//tspan[@id='commit_data']").Text())
	})
}

func TestPatchFile(t *testing.T) {
	t.Run("patches in place and preserves the namespace", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "badge.svg")
		require.NoError(t, os.WriteFile(path, []byte(testSVG), 0o644))

		patched, err := PatchFile(path, domain.Stats{ProfileStats: domain.ProfileStats{Stars: 42}})

		assert.NoError(t, err)
		assert.Equal(t, 1, patched)

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `<tspan id="star_data">42</tspan>`)
		assert.Contains(t, string(content), `xmlns="http://www.w3.org/2000/svg"`)
		assert.Contains(t, string(content), "keep me")
	})

	t.Run("unparsable document fails before writing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "badge.svg")
		original := []byte(`<svg><text><tspan id="star_data">0</tspan></svg>`) // mismatched tags
		require.NoError(t, os.WriteFile(path, original, 0o644))

		_, err := PatchFile(path, domain.Stats{})

		assert.Error(t, err)
		content, readErr := os.ReadFile(path)
		require.NoError(t, readErr)
		assert.Equal(t, original, content, "a parse failure must leave the file untouched")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := PatchFile(filepath.Join(t.TempDir(), "missing.svg"), domain.Stats{})
		assert.Error(t, err)
	})
}
