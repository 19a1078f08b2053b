package sync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	syncsvc "github.com/avolkov/marketsync/internal/service/sync"
)

func TestChunkEven(t *testing.T) {
	got := syncsvc.Chunk([]int{1, 2, 3, 4, 5, 6}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5, 6}}, got)
}

func TestChunkRemainder(t *testing.T) {
	got := syncsvc.Chunk([]int{1, 2, 3}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3}}, got)
}

func TestChunkEmpty(t *testing.T) {
	assert.Empty(t, syncsvc.Chunk([]int{}, 4))
	assert.Empty(t, syncsvc.Chunk[int](nil, 4))
}

func TestChunkSizeLargerThanInput(t *testing.T) {
	got := syncsvc.Chunk([]string{"a", "b"}, 10)
	assert.Equal(t, [][]string{{"a", "b"}}, got)
}

func TestChunkNonPositiveSize(t *testing.T) {
	assert.Empty(t, syncsvc.Chunk([]int{1, 2}, 0))
	assert.Empty(t, syncsvc.Chunk([]int{1, 2}, -1))
}
