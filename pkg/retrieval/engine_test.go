package retrieval

import (
	"context"
	"errors"
	"testing"
	"time"

	"shadowwork-be/pkg/embedding"
	"shadowwork-be/pkg/stage"
)

// fakeEmbedder returns fixed vectors per text so similarity ordering is
// fully controlled by the test.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (f *fakeEmbedder) Generate(_ context.Context, text string, _ string) (*embedding.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.Result{Values: f.vectors[text]}, nil
}

func testChunks() []Chunk {
	return []Chunk{
		{
			ID:          "avoidance-001",
			Title:       "Naming the avoidance",
			StageTags:   []stage.Stage{stage.Shadow, stage.Truth},
			SymptomTags: []string{"procrastination"},
			Language:    "en",
			Text:        NewPlainText("Avoidance grows in the dark."),
			Embedding:   []float32{1, 0, 0},
		},
		{
			ID:          "avoidance-002",
			Title:       "The same pattern again",
			StageTags:   []stage.Stage{stage.Shadow},
			SymptomTags: []string{"procrastination"},
			Language:    "en",
			Text:        NewPlainText("Patterns repeat until named."),
			Embedding:   []float32{1, 0, 0},
		},
		{
			ID:          "anger-001",
			Title:       "Anger as a messenger",
			StageTags:   []stage.Stage{stage.Truth},
			SymptomTags: []string{"anger"},
			Language:    "en",
			Text:        NewPlainText("Anger points at a boundary."),
			Embedding:   []float32{0, 1, 0},
		},
		{
			ID:          "avoidance-ru-001",
			Title:       "Избегание",
			StageTags:   []stage.Stage{stage.Shadow},
			SymptomTags: []string{"procrastination"},
			Language:    "ru",
			Text:        NewPlainText("Избегание растёт в темноте."),
			Embedding:   []float32{1, 0, 0},
		},
	}
}

func newTestEngine(embedder embedding.Provider) *Engine {
	index := NewIndex(3, testChunks(), nil)
	return NewEngine(index, embedder, nil, time.Second, nil)
}

func TestRetrieveOrdering(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"why do I keep avoiding this": {0.9, 0.1, 0},
	}}
	e := newTestEngine(embedder)

	matches := e.Retrieve(context.Background(), Query{
		Text:     "why do I keep avoiding this",
		Language: "en",
	}, 3)

	if len(matches) != 3 {
		t.Fatalf("got %d matches, want 3", len(matches))
	}
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Score < matches[i].Score {
			t.Fatalf("scores not descending: %v then %v", matches[i-1].Score, matches[i].Score)
		}
	}
	// avoidance-001 and avoidance-002 have identical embeddings; the tie
	// breaks on ID ascending.
	if matches[0].Chunk.ID != "avoidance-001" || matches[1].Chunk.ID != "avoidance-002" {
		t.Fatalf("tie-break violated: got %s then %s", matches[0].Chunk.ID, matches[1].Chunk.ID)
	}
	if matches[2].Chunk.ID != "anger-001" {
		t.Fatalf("least similar chunk should rank last, got %s", matches[2].Chunk.ID)
	}
}

func TestRetrieveFilters(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
	}}
	e := newTestEngine(embedder)

	truth := stage.Truth
	symptom := "anger"

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{
			name:    "language filter is exact",
			query:   Query{Text: "query", Language: "ru"},
			wantIDs: []string{"avoidance-ru-001"},
		},
		{
			name:    "stage filter keeps any chunk tagged with the stage",
			query:   Query{Text: "query", Language: "en", Stage: &truth},
			wantIDs: []string{"avoidance-001", "anger-001"},
		},
		{
			name:    "symptom filter",
			query:   Query{Text: "query", Language: "en", Symptom: &symptom},
			wantIDs: []string{"anger-001"},
		},
		{
			name:    "no candidates yields empty, not error",
			query:   Query{Text: "query", Language: "de"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matches := e.Retrieve(context.Background(), tt.query, 10)
			if len(matches) != len(tt.wantIDs) {
				t.Fatalf("got %d matches, want %d", len(matches), len(tt.wantIDs))
			}
			got := make(map[string]bool, len(matches))
			for _, m := range matches {
				got[m.Chunk.ID] = true
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Errorf("missing expected chunk %s", id)
				}
			}
		})
	}
}

func TestRetrieveTopK(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
	}}
	e := newTestEngine(embedder)

	matches := e.Retrieve(context.Background(), Query{Text: "query", Language: "en"}, 0)
	if len(matches) != DefaultTopK {
		t.Fatalf("topK<=0 should use default %d, got %d", DefaultTopK, len(matches))
	}
}

func TestRetrieveEmbeddingFailure(t *testing.T) {
	e := newTestEngine(&fakeEmbedder{err: errors.New("provider down")})

	matches := e.Retrieve(context.Background(), Query{Text: "query", Language: "en"}, 3)
	if matches != nil {
		t.Fatalf("embedding failure should yield empty result, got %d matches", len(matches))
	}
}

func TestRetrieveZeroNormQuery(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"query": {0, 0, 0},
	}}
	e := newTestEngine(embedder)

	matches := e.Retrieve(context.Background(), Query{Text: "query", Language: "en"}, 3)
	for _, m := range matches {
		if m.Score != 0 {
			t.Fatalf("zero-norm query must score 0, got %v for %s", m.Score, m.Chunk.ID)
		}
	}
	// All ties at 0: ordering is still deterministic by ID.
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Chunk.ID > matches[i].Chunk.ID {
			t.Fatalf("tie ordering not by ID: %s then %s", matches[i-1].Chunk.ID, matches[i].Chunk.ID)
		}
	}
}

func TestSwapIndex(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"query": {1, 0, 0},
	}}
	e := newTestEngine(embedder)

	e.SwapIndex(NewIndex(3, nil, nil))
	matches := e.Retrieve(context.Background(), Query{Text: "query", Language: "en"}, 3)
	if len(matches) != 0 {
		t.Fatalf("swapped-in empty index should yield no matches, got %d", len(matches))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"zero norm", []float32{0, 0}, []float32{1, 1}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if diff := got - tt.want; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("cosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndexSkipsBadEmbeddings(t *testing.T) {
	chunks := []Chunk{
		{ID: "ok", Language: "en", Embedding: []float32{1, 0, 0}},
		{ID: "missing", Language: "en"},
		{ID: "wrong-dim", Language: "en", Embedding: []float32{1, 0}},
	}
	index := NewIndex(3, chunks, nil)
	if index.Len() != 1 {
		t.Fatalf("index kept %d chunks, want 1", index.Len())
	}
}
