// Package badge rewrites the stat text nodes of the profile-badge SVG.
package badge

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/hemanthp-txst/profile-stats/internal/domain"
)

// values maps the tspan id attributes recognized in the badge to their stat.
func values(stats domain.Stats) map[string]int {
	return map[string]int{
		"repo_data":     stats.Repos,
		"contrib_data":  stats.Contributions,
		"star_data":     stats.Stars,
		"commit_data":   stats.TotalCommits,
		"follower_data": stats.Followers,
		"loc_data":      stats.Total,
		"loc_add":       stats.Additions,
		"loc_del":       stats.Deletions,
	}
}

// Patch replaces the text of every tspan whose id names a known stat and
// returns how many nodes were updated. Unrecognized ids, and stats with no
// matching node, are left alone.
func Patch(doc *etree.Document, stats domain.Stats) int {
	vals := values(stats)
	patched := 0
	for _, el := range doc.FindElements("//tspan") {
		v, ok := vals[el.SelectAttrValue("id", "")]
		if !ok {
			continue
		}
		el.SetText(strconv.Itoa(v))
		patched++
	}
	return patched
}

// PatchFile patches the SVG at path in place. A parse failure aborts before
// anything is written, leaving the previous file intact.
func PatchFile(path string, stats domain.Stats) (int, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return 0, fmt.Errorf("failed to parse SVG %s: %w", path, err)
	}

	patched := Patch(doc, stats)

	if err := doc.WriteToFile(path); err != nil {
		return 0, fmt.Errorf("failed to write SVG %s: %w", path, err)
	}
	return patched, nil
}
