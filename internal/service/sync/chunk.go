package sync

// Chunk partitions items into contiguous, order-preserving batches of at most
// size elements; the last batch may be smaller. An empty input yields no
// batches. Batches alias the input slice, they are not copies.
func Chunk[T any](items []T, size int) [][]T {
	if size <= 0 || len(items) == 0 {
		return nil
	}
	batches := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}
	return batches
}
