package pager

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
)

func TestWalk_FollowsCursorsUntilEmpty(t *testing.T) {
	t.Parallel()

	pages := map[string]struct {
		items []int
		next  string
	}{
		"":  {items: []int{1, 2}, next: "a"},
		"a": {items: []int{3}, next: "b"},
		"b": {items: []int{4, 5}, next: ""},
	}

	got := Walk(context.Background(), "test", 10, 0, func(ctx context.Context, cursor string) ([]int, string, error) {
		p := pages[cursor]
		return p.items, p.next, nil
	})

	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestWalk_TerminatesAtPageCap(t *testing.T) {
	t.Parallel()

	var calls int
	got := Walk(context.Background(), "test", 5, 0, func(ctx context.Context, cursor string) ([]int, string, error) {
		calls++
		// Always claims there is another page.
		return []int{calls}, "more", nil
	})

	assert.Equal(t, 5, calls)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, got)
}

func TestWalk_ReturnsPartialOnError(t *testing.T) {
	t.Parallel()

	var calls int
	got := Walk(context.Background(), "test", 10, 0, func(ctx context.Context, cursor string) ([]int, string, error) {
		calls++
		if calls == 3 {
			return nil, "", eris.New("boom")
		}
		return []int{calls}, "next", nil
	})

	assert.Equal(t, []int{1, 2}, got)
}

func TestWalk_EmptyFirstPage(t *testing.T) {
	t.Parallel()

	got := Walk(context.Background(), "test", 10, 0, func(ctx context.Context, cursor string) ([]int, string, error) {
		return nil, "", nil
	})

	assert.Empty(t, got)
}

func TestWalk_CancelledContextStopsBetweenPages(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())

	got := Walk(ctx, "test", 10, time.Minute, func(ctx context.Context, cursor string) ([]int, string, error) {
		cancel()
		return []int{1}, "more", nil
	})

	assert.Equal(t, []int{1}, got)
}
