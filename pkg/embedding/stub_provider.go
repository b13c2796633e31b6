package embedding

import (
	"context"
	"hash/fnv"
	"math"
)

// StubProvider is a deterministic, offline Provider for tests and demo
// deployments. The vector for a given text never changes, identical
// texts collide on purpose, and no network is involved. Selected by
// configuration, never by runtime feature detection.
type StubProvider struct {
	Dim int

	// Err, when set, is returned from every call. Lets tests exercise
	// the degraded-retrieval path.
	Err error
}

var _ Provider = &StubProvider{}

func NewStubProvider(dim int) *StubProvider {
	if dim <= 0 {
		dim = 1536
	}
	return &StubProvider{Dim: dim}
}

func (p *StubProvider) Generate(ctx context.Context, text string, taskType string) (*Result, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Seed a cheap xorshift PRNG from the FNV-1a hash of the text so the
	// whole vector is a pure function of the input.
	h := fnv.New64a()
	h.Write([]byte(text))
	state := h.Sum64()
	if state == 0 {
		state = 1
	}

	values := make([]float32, p.Dim)
	for i := range values {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		// Map to [-1, 1).
		values[i] = float32(int64(state)) / float32(math.MaxInt64)
	}

	return &Result{Values: normalizeVector(values)}, nil
}
