// Package paginate drives page-based vendor listings to exhaustion.
package paginate

import (
	"context"
	"errors"
	"fmt"
)

// ErrTooManyPages is returned when a fetch loop exceeds Options.MaxPages.
// It usually means the provider's last-page signal is broken.
var ErrTooManyPages = errors.New("pagination exceeded page limit")

// Page is one page of results. Last reports the provider's own "no more
// pages" signal; an empty Items slice is not terminal by itself.
type Page[T any] struct {
	Items []T
	Last  bool
}

// Options tunes a pagination run.
type Options struct {
	// MaxPages caps the number of requests issued. 0 means no cap.
	MaxPages int
}

// Run fetches pages starting at start (0 or 1, provider-dependent and
// always explicit) until the provider signals the last page, returning the
// order-preserving concatenation of every page's items. A fetch error
// aborts the run and discards pages accumulated so far.
func Run[T any](ctx context.Context, start int, fetch func(ctx context.Context, page int) (Page[T], error), opts Options) ([]T, error) {
	var items []T

	page := start
	fetched := 0
	for {
		if opts.MaxPages > 0 && fetched >= opts.MaxPages {
			return nil, fmt.Errorf("%w (%d pages)", ErrTooManyPages, fetched)
		}

		result, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", page, err)
		}

		items = append(items, result.Items...)
		fetched++
		page++

		if result.Last {
			return items, nil
		}
	}
}
