package embedding

import "context"

// Task types hint providers that distinguish query and document
// embeddings. Providers that do not are free to ignore them.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// Result carries one embedding vector.
type Result struct {
	Values []float32
}

// Provider defines the interface for generating text embeddings.
// Calls are expected to hit the network; callers bound them with the
// context deadline.
type Provider interface {
	Generate(ctx context.Context, text string, taskType string) (*Result, error)
}
