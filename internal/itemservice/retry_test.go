package itemservice_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/purse/internal/domain"
	"github.com/mmcdole/purse/internal/itemservice"
)

func TestRetry_ZeroReturnsSourceItself(t *testing.T) {
	source := &scriptedService{}
	assert.Same(t, source, itemservice.NewRetry(source, 0, nil))
}

func TestRetry_FailuresAgainstBudget(t *testing.T) {
	for n := uint(0); n <= 4; n++ {
		for k := 0; k <= 6; k++ {
			t.Run(fmt.Sprintf("retries=%d/failures=%d", n, k), func(t *testing.T) {
				source := &scriptedService{failures: k, items: []domain.Item{item("ok")}}

				items, err := itemservice.NewRetry(source, n, nil).LoadItems(context.Background())

				if k <= int(n) {
					require.NoError(t, err)
					assert.Equal(t, []string{"ok"}, titles(items))
					assert.Equal(t, k+1, source.Calls())
				} else {
					require.Error(t, err)
					assert.Nil(t, items)
					assert.Same(t, source.lastErr(), err, "last failure is returned")
					assert.Equal(t, int(n)+1, source.Calls())
				}
				assert.LessOrEqual(t, source.Calls(), int(n)+1)
			})
		}
	}
}

func TestRetry_OneRetryFailThenSucceed(t *testing.T) {
	source := &scriptedService{failures: 1, items: []domain.Item{item("a"), item("b")}}

	items, err := itemservice.NewRetry(source, 1, nil).LoadItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, titles(items))
	assert.Equal(t, 2, source.Calls())
}

func TestRetry_MatchesNestedSelfFallbacks(t *testing.T) {
	nested := func(source domain.ItemService, times int) domain.ItemService {
		svc := source
		for i := 0; i < times; i++ {
			svc = itemservice.NewFallback(svc, source, nil)
		}
		return svc
	}

	for n := 0; n <= 3; n++ {
		for k := 0; k <= 5; k++ {
			looped := &scriptedService{failures: k, items: []domain.Item{item("ok")}}
			folded := &scriptedService{failures: k, items: []domain.Item{item("ok")}}

			_, loopErr := itemservice.NewRetry(looped, uint(n), nil).LoadItems(context.Background())
			_, foldErr := nested(folded, n).LoadItems(context.Background())

			assert.Equal(t, foldErr == nil, loopErr == nil, "retries=%d failures=%d", n, k)
			assert.Equal(t, folded.Calls(), looped.Calls(), "retries=%d failures=%d", n, k)
		}
	}
}

func TestRetry_IsReusable(t *testing.T) {
	source := &scriptedService{failures: 2, items: []domain.Item{item("ok")}}
	svc := itemservice.NewRetry(source, 1, nil)

	_, err := svc.LoadItems(context.Background())
	require.Error(t, err)

	// the source has now used up its failures
	items, err := svc.LoadItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, titles(items))
	assert.Equal(t, 3, source.Calls())
}
