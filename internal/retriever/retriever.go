package retriever

import (
	"container/heap"
	"fmt"

	"github.com/futig/docqa/internal/entity"
	"github.com/futig/docqa/internal/index"
)

type candidate struct {
	pos   int
	score float64
}

// worse reports whether a ranks below b: lower score, or equal score and later insertion
func worse(a, b candidate) bool {
	if a.score != b.score {
		return a.score < b.score
	}
	return a.pos > b.pos
}

// minHeap keeps the weakest of the current top K at the root
type minHeap []candidate

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return worse(h[i], h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	*h = old[:n-1]
	return c
}

// Retrieve scores every node against query and returns the k best, highest first.
// k is clamped to the index size; equal scores keep insertion order.
func Retrieve(idx *index.Index, query []float32, k int) ([]entity.ScoredNode, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: top K must be at least 1, got %d", entity.ErrInvalidConfig, k)
	}
	if idx == nil || idx.Size() == 0 {
		return nil, fmt.Errorf("%w: index is empty", entity.ErrRetrieval)
	}
	if len(query) != idx.Dimension {
		return nil, fmt.Errorf("%w: query dimension %d does not match index dimension %d",
			entity.ErrRetrieval, len(query), idx.Dimension)
	}

	k = min(k, idx.Size())
	h := make(minHeap, 0, k)

	for i, node := range idx.All() {
		c := candidate{pos: i, score: CosineSimilarity(query, node.Embedding)}
		if h.Len() < k {
			heap.Push(&h, c)
			continue
		}
		if worse(h[0], c) {
			h[0] = c
			heap.Fix(&h, 0)
		}
	}

	results := make([]entity.ScoredNode, h.Len())
	for i := len(results) - 1; i >= 0; i-- {
		c := heap.Pop(&h).(candidate)
		results[i] = entity.ScoredNode{Node: idx.NodeAt(c.pos), Score: c.score}
	}

	return results, nil
}
