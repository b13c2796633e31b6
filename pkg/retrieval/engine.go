package retrieval

import (
	"context"
	"log"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"shadowwork-be/pkg/embedding"
	"shadowwork-be/pkg/stage"
)

// Query selects and ranks content for one turn.
type Query struct {
	Text     string
	Stage    *stage.Stage // nil = no stage filter
	Symptom  *string      // nil = no symptom filter
	Language string       // exact match, always required
}

// Match is one ranked result.
type Match struct {
	Chunk Chunk
	Score float64
}

// Engine ranks index chunks against a query embedding. Ranking itself is
// CPU-bound and deterministic; the only suspension point is the embedding
// call, which is bounded by timeout and degrades to an empty result.
type Engine struct {
	mu         sync.RWMutex
	index      *Index
	embedder   embedding.Provider
	embedCache *cache.Cache // query embedding TTL cache, injected (never a process singleton)
	timeout    time.Duration
	logger     *log.Logger
}

// DefaultTopK is the conversational path's result count. Debug and
// preview surfaces may ask for more.
const DefaultTopK = 1

func NewEngine(index *Index, embedder embedding.Provider, embedCache *cache.Cache, timeout time.Duration, logger *log.Logger) *Engine {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Engine{
		index:      index,
		embedder:   embedder,
		embedCache: embedCache,
		timeout:    timeout,
		logger:     logger,
	}
}

// Retrieve returns up to topK chunks ordered by cosine similarity
// descending, ties broken by chunk ID ascending. An embedding failure or
// an empty candidate set yields an empty slice, never an error: "no
// context found" is a valid state the orchestrator knows how to phrase.
func (e *Engine) Retrieve(ctx context.Context, q Query, topK int) []Match {
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryEmbedding := e.embedQuery(ctx, q.Text)
	if len(queryEmbedding) == 0 {
		return nil
	}

	e.mu.RLock()
	index := e.index
	e.mu.RUnlock()

	var matches []Match
	for _, c := range index.chunks {
		if c.Language != q.Language {
			continue
		}
		if q.Stage != nil && !c.HasStageTag(*q.Stage) {
			continue
		}
		if q.Symptom != nil && !c.HasSymptomTag(*q.Symptom) {
			continue
		}
		matches = append(matches, Match{
			Chunk: c,
			Score: cosineSimilarity(queryEmbedding, c.Embedding),
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Chunk.ID < matches[j].Chunk.ID
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	logf(e.logger, "[RETRIEVAL] %d candidates for lang=%s (topK=%d)", len(matches), q.Language, topK)
	return matches
}

// SwapIndex replaces the index atomically. In-flight queries finish
// against the index they started with.
func (e *Engine) SwapIndex(index *Index) {
	e.mu.Lock()
	e.index = index
	e.mu.Unlock()
}

// embedQuery returns the query vector, consulting the TTL cache first.
// Any provider failure is logged and reported as "no vector".
func (e *Engine) embedQuery(ctx context.Context, text string) []float32 {
	if e.embedCache != nil {
		if cached, found := e.embedCache.Get(text); found {
			return cached.([]float32)
		}
	}

	embedCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	res, err := e.embedder.Generate(embedCtx, text, embedding.TaskRetrievalQuery)
	if err != nil {
		logf(e.logger, "[RETRIEVAL] Embedding failed, returning empty result: %v", err)
		return nil
	}
	if res == nil || len(res.Values) == 0 {
		logf(e.logger, "[RETRIEVAL] Embedding returned no vector, returning empty result")
		return nil
	}

	if e.embedCache != nil {
		e.embedCache.Set(text, res.Values, cache.DefaultExpiration)
	}
	return res.Values
}

// cosineSimilarity is dot(a,b) / (|a|*|b|). Mismatched lengths and zero
// norms are defined as 0, not NaN and not an error.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
