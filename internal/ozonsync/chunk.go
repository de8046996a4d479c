package ozonsync

import "errors"

// ErrInvalidChunkSize reports a chunk request with a non-positive size.
// This is a programmer error, not a data condition.
var ErrInvalidChunkSize = errors.New("chunk size must be positive")

// Chunk splits items into sub-slices of length size; only the last chunk
// may be shorter. The chunks alias the input slice.
func Chunk[T any](items []T, size int) ([][]T, error) {
	if size <= 0 {
		return nil, ErrInvalidChunkSize
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks, nil
}
