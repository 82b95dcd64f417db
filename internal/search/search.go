// Package search ranks loaded items against a free-text query.
package search

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/purse/internal/domain"
)

// Filter returns the items matching query, best match first.
// Items that rank equally keep their original order. An empty query returns
// items unchanged.
func Filter(items []domain.Item, query string) []domain.Item {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return items
	}

	type rankedItem struct {
		item  domain.Item
		score int
	}

	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		if score, ok := matchScore(item, query); ok {
			ranked = append(ranked, rankedItem{item: item, score: score})
		}
	}

	// Lower is better
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Item, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// matchScore scores the title first and falls back to the detail line
func matchScore(item domain.Item, query string) (int, bool) {
	if score, ok := scoreText(strings.ToLower(item.TitleText), query); ok {
		return score, true
	}
	if score, ok := scoreText(strings.ToLower(item.DetailText), query); ok {
		return 1000 + score, true
	}
	return 0, false
}

func scoreText(text, query string) (int, bool) {
	switch {
	case text == query:
		return 0, true
	case strings.HasPrefix(text, query):
		return 10, true
	case strings.Contains(text, query):
		return 50, true
	case fuzzy.MatchNormalizedFold(query, text):
		return 100 + fuzzy.LevenshteinDistance(query, text), true
	default:
		return 0, false
	}
}
