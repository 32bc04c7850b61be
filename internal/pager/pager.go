// Package pager implements the cursor walk shared by every paginated source.
package pager

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PageFunc fetches one page for the given cursor and returns the items, the
// next cursor (empty when the listing is exhausted) and any transport error.
type PageFunc[T any] func(ctx context.Context, cursor string) ([]T, string, error)

// Walk follows cursors until the source reports no next page or maxPages is
// reached. maxPages is a hard bound against misbehaving APIs that keep
// returning cursors. Between pages it sleeps for delay.
//
// A failure mid-walk is logged and the walk stops; whatever was accumulated
// is returned. Retries are the page function's concern, not the walker's.
func Walk[T any](ctx context.Context, source string, maxPages int, delay time.Duration, fetch PageFunc[T]) []T {
	var all []T
	cursor := ""

	for page := 0; page < maxPages; page++ {
		items, next, err := fetch(ctx, cursor)
		if err != nil {
			zap.L().Warn("page walk aborted",
				zap.String("source", source),
				zap.Int("page", page),
				zap.Int("accumulated", len(all)),
				zap.Error(err),
			)
			return all
		}

		all = append(all, items...)

		if next == "" {
			break
		}
		cursor = next

		if delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return all
			case <-t.C:
			}
		}
	}

	return all
}
