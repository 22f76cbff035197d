package mock

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
)

// MockConsolidator is a test double for ai.Consolidator.
// It allows custom behavior injection via function fields and is safe for
// concurrent use.
type MockConsolidator struct {
	// ConsolidateFunc is called by Consolidate if set.
	// If nil, echoes the raw lists with a generated summary.
	ConsolidateFunc func(ctx context.Context, raw ai.EntitySet) (*ai.Consolidated, error)

	callCount atomic.Int64
}

// NewMockConsolidator creates a mock consolidator with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockConsolidator().
func NewMockConsolidator() *MockConsolidator {
	return &MockConsolidator{}
}

// Consolidate returns the raw lists unchanged plus a summary derived from
// the entity counts.
func (m *MockConsolidator) Consolidate(ctx context.Context, raw ai.EntitySet) (*ai.Consolidated, error) {
	m.callCount.Add(1)

	if m.ConsolidateFunc != nil {
		return m.ConsolidateFunc(ctx, raw)
	}

	total := len(raw.Companies) + len(raw.Persons) + len(raw.Events)
	return &ai.Consolidated{
		Summary:   fmt.Sprintf("Documento con %d entidades identificadas.", total),
		Companies: raw.Companies,
		Persons:   raw.Persons,
		Events:    raw.Events,
	}, nil
}

// CallCount returns the number of times Consolidate was called.
func (m *MockConsolidator) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockConsolidator) Reset() {
	m.callCount.Store(0)
	m.ConsolidateFunc = nil
}
