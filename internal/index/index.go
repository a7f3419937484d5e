package index

import (
	"crypto/sha256"
	"fmt"
	"iter"

	"github.com/futig/docqa/internal/entity"
	"github.com/google/uuid"
)

// nodeNamespace scopes node ids so identical inputs always produce identical ids
var nodeNamespace = uuid.MustParse("6f1d3c2a-9b1e-5c47-8a0e-2d4b7f6a1c35")

// Index is an immutable, flat collection of nodes built for one document/config pair
type Index struct {
	ID           string
	Dimension    int
	ChunkSize    int
	ChunkOverlap int
	nodes        []*entity.Node
}

// Build pairs every chunk with its embedding. Chunks and embeddings must have equal
// length and all vectors must share one non-zero dimension.
func Build(document string, chunks []entity.Chunk, embeddings [][]float32, chunkSize, chunkOverlap int) (*Index, error) {
	if len(chunks) != len(embeddings) {
		return nil, fmt.Errorf("%w: %d chunks but %d embeddings", entity.ErrIndex, len(chunks), len(embeddings))
	}

	docHash := sha256.Sum256([]byte(document))
	nodes := make([]*entity.Node, len(chunks))
	for i, chunk := range chunks {
		key := fmt.Sprintf("%x:%d:%d:%d", docHash, chunkSize, chunkOverlap, chunk.StartToken)
		nodes[i] = &entity.Node{
			ID:        uuid.NewSHA1(nodeNamespace, []byte(key)).String(),
			Chunk:     chunk,
			Embedding: embeddings[i],
		}
	}

	idx, err := newIndex(nodes)
	if err != nil {
		return nil, err
	}
	idx.ChunkSize = chunkSize
	idx.ChunkOverlap = chunkOverlap

	return idx, nil
}

// FromNodes rebuilds an index from nodes previously returned to a client
func FromNodes(nodes []*entity.Node) (*Index, error) {
	for i, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("%w: node %d is null", entity.ErrIndex, i)
		}
	}
	return newIndex(nodes)
}

func newIndex(nodes []*entity.Node) (*Index, error) {
	dim := 0
	for i, n := range nodes {
		if len(n.Embedding) == 0 {
			return nil, fmt.Errorf("%w: node %d has an empty embedding", entity.ErrIndex, i)
		}
		if dim == 0 {
			dim = len(n.Embedding)
		} else if len(n.Embedding) != dim {
			return nil, fmt.Errorf("%w: node %d has dimension %d, expected %d",
				entity.ErrIndex, i, len(n.Embedding), dim)
		}
	}

	return &Index{
		ID:        uuid.New().String(),
		Dimension: dim,
		nodes:     nodes,
	}, nil
}

// Size returns the number of nodes
func (idx *Index) Size() int {
	return len(idx.nodes)
}

// NodeAt returns the i-th node in insertion order
func (idx *Index) NodeAt(i int) *entity.Node {
	return idx.nodes[i]
}

// All iterates nodes in insertion order
func (idx *Index) All() iter.Seq2[int, *entity.Node] {
	return func(yield func(int, *entity.Node) bool) {
		for i, n := range idx.nodes {
			if !yield(i, n) {
				return
			}
		}
	}
}

// Nodes returns a copy of the node slice; the nodes themselves are shared and must not be mutated
func (idx *Index) Nodes() []*entity.Node {
	out := make([]*entity.Node, len(idx.nodes))
	copy(out, idx.nodes)
	return out
}
