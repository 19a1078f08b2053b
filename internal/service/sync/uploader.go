package sync

import (
	"context"
	"fmt"
)

// uploadBatches splits items into batches of at most size and sends them one
// after another. It stops at the first failed batch; batches already sent
// stay applied upstream. Returns the number of batches delivered.
func uploadBatches[T any](ctx context.Context, items []T, size int, send func(context.Context, []T) error) (int, error) {
	batches := Chunk(items, size)
	for i, batch := range batches {
		if err := send(ctx, batch); err != nil {
			return i, fmt.Errorf("batch %d of %d: %w", i+1, len(batches), err)
		}
	}
	return len(batches), nil
}
