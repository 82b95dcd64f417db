package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/search"
)

func friend(name, phone string) domain.Item {
	return domain.NewItem(name, phone, domain.Friend{Name: name, Phone: phone}, nil)
}

func titles(items []domain.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.TitleText
	}
	return out
}

func TestFilter_EmptyQueryReturnsAll(t *testing.T) {
	items := []domain.Item{friend("Ana", "111"), friend("Bo", "222")}
	assert.Equal(t, []string{"Ana", "Bo"}, titles(search.Filter(items, "  ")))
}

func TestFilter_RanksExactPrefixContainsFuzzy(t *testing.T) {
	items := []domain.Item{
		friend("Diana Ross", "1"),
		friend("Anabel", "2"),
		friend("A. N. Adams", "3"),
		friend("Ana", "4"),
		friend("Bo", "5"),
	}

	got := titles(search.Filter(items, "ana"))
	assert.Equal(t, []string{"Ana", "Anabel", "Diana Ross", "A. N. Adams"}, got)
}

func TestFilter_MatchesDetailAfterTitles(t *testing.T) {
	items := []domain.Item{
		friend("Bo", "+46 555 0101"),
		friend("555 Club", "none"),
	}

	got := titles(search.Filter(items, "555"))
	assert.Equal(t, []string{"555 Club", "Bo"}, got)
}

func TestFilter_IsCaseInsensitiveAndStable(t *testing.T) {
	items := []domain.Item{friend("Coffee", "a"), friend("coffee", "b")}

	got := search.Filter(items, "COFFEE")
	if assert.Len(t, got, 2) {
		assert.Equal(t, "a", got[0].DetailText)
		assert.Equal(t, "b", got[1].DetailText)
	}
}

func TestFilter_NoMatches(t *testing.T) {
	assert.Empty(t, search.Filter([]domain.Item{friend("Ana", "1")}, "zzz"))
}
