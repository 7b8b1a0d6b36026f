package gcloud

import (
	"context"
)

// Page is one listing response: the items of that page in server order plus
// the cursor for the next page. An empty NextPageToken ends iteration.
type Page[T any] struct {
	Items         []T    `json:"items"                   yaml:"items"`
	NextPageToken string `json:"nextPageToken,omitempty" yaml:"nextPageToken,omitempty"`
}

// PageFetcher fetches one page given the cursor of the previous one. An empty
// token requests the first page.
type PageFetcher[T any] func(ctx context.Context, pageToken string) (*Page[T], error)

// PageIterator lazily walks a paginated listing, fetching pages on demand. An
// iterator is finite and forward-only; exhausting it requires a new listing
// call to start over. Stopping early is fine, no cleanup is needed.
type PageIterator[T any] struct {
	ctx       context.Context
	fetch     PageFetcher[T]
	buffer    []T
	nextToken string
	exhausted bool
	err       error
}

// NewPageIterator creates an iterator over the pages produced by fetch.
func NewPageIterator[T any](ctx context.Context, fetch PageFetcher[T]) *PageIterator[T] {
	return &PageIterator[T]{ctx: ctx, fetch: fetch}
}

// HasNext reports whether another item is available, fetching pages as
// needed. A page with no items but a present cursor does not end iteration;
// the iterator keeps advancing until it finds items or runs out of pages.
func (it *PageIterator[T]) HasNext() bool {
	if it.err != nil {
		return true // surface the error from Next
	}

	for len(it.buffer) == 0 && !it.exhausted {
		if err := it.advance(); err != nil {
			it.err = err

			return true
		}
	}

	return len(it.buffer) > 0
}

// Next returns the next item. It returns ErrNoMoreItems once the sequence is
// exhausted.
func (it *PageIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		return zero, ErrNoMoreItems
	}

	if it.err != nil {
		err := it.err
		it.err = nil

		return zero, err
	}

	item := it.buffer[0]
	it.buffer = it.buffer[1:]

	return item, nil
}

// All drains the remaining items into a slice.
func (it *PageIterator[T]) All() ([]T, error) {
	var items []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return items, err
		}

		items = append(items, item)
	}

	return items, nil
}

// ForEach applies fn to each remaining item, stopping at the first error.
func (it *PageIterator[T]) ForEach(fn func(item T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		if err := fn(item); err != nil {
			return err
		}
	}

	return nil
}

// advance fetches the next page and refills the buffer.
func (it *PageIterator[T]) advance() error {
	page, err := it.fetch(it.ctx, it.nextToken)
	if err != nil {
		return err
	}

	it.buffer = page.Items
	it.nextToken = page.NextPageToken

	if page.NextPageToken == "" {
		it.exhausted = true
	}

	return nil
}

// PaginationOptions bound eager page fetching.
type PaginationOptions struct {
	// MaxPages caps how many pages are fetched. Zero means all pages.
	MaxPages int
}

// FetchAllPages eagerly drains a paginated listing into a slice.
func FetchAllPages[T any](ctx context.Context, fetch PageFetcher[T], opts *PaginationOptions) ([]T, error) {
	var (
		items []T
		token string
		pages int
	)

	for {
		page, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}

		items = append(items, page.Items...)
		pages++

		if page.NextPageToken == "" {
			return items, nil
		}

		if opts != nil && opts.MaxPages > 0 && pages >= opts.MaxPages {
			return items, nil
		}

		token = page.NextPageToken
	}
}

// PageResult is one streamed page or the error that ended the stream.
type PageResult[T any] struct {
	Items []T
	Err   error
}

// StreamPages fetches pages in the background and delivers them on the
// returned channel. The channel closes after the last page or the first
// error; cancelling ctx stops the stream.
func StreamPages[T any](ctx context.Context, fetch PageFetcher[T], opts *PaginationOptions) <-chan PageResult[T] {
	results := make(chan PageResult[T])

	go func() {
		defer close(results)

		var (
			token string
			pages int
		)

		for {
			page, err := fetch(ctx, token)
			if err != nil {
				select {
				case results <- PageResult[T]{Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: page.Items}:
			case <-ctx.Done():
				return
			}

			pages++

			if page.NextPageToken == "" {
				return
			}

			if opts != nil && opts.MaxPages > 0 && pages >= opts.MaxPages {
				return
			}

			token = page.NextPageToken
		}
	}()

	return results
}
