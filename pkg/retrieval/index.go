package retrieval

import (
	"log"
)

// Index is the read-only set of retrievable content chunks, held in
// memory for the lifetime of the process. Content authoring is an
// offline process; no turn ever mutates the index.
type Index struct {
	chunks []Chunk
	dim    int
}

// NewIndex builds an index over the given chunks. Chunks without an
// embedding, or whose embedding does not match the index dimensionality,
// are skipped with a warning here at load time so queries never have to
// deal with them.
func NewIndex(dim int, chunks []Chunk, logger *log.Logger) *Index {
	kept := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			logf(logger, "[INDEX] Skipping chunk %s: no embedding", c.ID)
			continue
		}
		if len(c.Embedding) != dim {
			logf(logger, "[INDEX] Skipping chunk %s: embedding dim %d, want %d", c.ID, len(c.Embedding), dim)
			continue
		}
		kept = append(kept, c)
	}
	logf(logger, "[INDEX] Loaded %d/%d chunks (dim %d)", len(kept), len(chunks), dim)
	return &Index{chunks: kept, dim: dim}
}

// Len returns the number of queryable chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// Dim returns the embedding dimensionality the index was built with.
func (ix *Index) Dim() int {
	return ix.dim
}

func logf(logger *log.Logger, format string, args ...interface{}) {
	if logger != nil {
		logger.Printf(format, args...)
	}
}
