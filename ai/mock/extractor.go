package mock

import (
	"context"
	"strings"
	"sync/atomic"
	"unicode"
	"unicode/utf8"

	"github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"
)

// MockEntityExtractor is a test double for ai.EntityExtractor.
// It allows custom behavior injection via function fields and is safe for
// concurrent use, matching the interface contract.
type MockEntityExtractor struct {
	// ExtractEntitiesFunc is called by ExtractEntities if set.
	// If nil, uses default capitalized-word collection.
	ExtractEntitiesFunc func(ctx context.Context, text string) (ai.EntitySet, error)

	callCount atomic.Int64
}

// NewMockEntityExtractor creates a mock entity extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockEntityExtractor() *MockEntityExtractor {
	return &MockEntityExtractor{}
}

// ExtractEntities extracts simple mock entities from text.
// Default behavior: capitalized words become companies; runs of two or more
// consecutive capitalized words become persons. At most 5 entries each.
func (m *MockEntityExtractor) ExtractEntities(ctx context.Context, text string) (ai.EntitySet, error) {
	m.callCount.Add(1)

	if m.ExtractEntitiesFunc != nil {
		return m.ExtractEntitiesFunc(ctx, text)
	}

	var set ai.EntitySet
	var run []string

	flush := func() {
		switch {
		case len(run) >= 2 && len(set.Persons) < 5:
			set.Persons = append(set.Persons, strings.Join(run, " "))
		case len(run) == 1 && len(set.Companies) < 5:
			set.Companies = append(set.Companies, run[0])
		}
		run = run[:0]
	}

	for _, word := range strings.Fields(text) {
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		first, _ := utf8.DecodeRuneInString(word)
		if word != "" && unicode.IsUpper(first) {
			run = append(run, word)
			continue
		}
		flush()
	}
	flush()

	return set, nil
}

// CallCount returns the number of times ExtractEntities was called.
func (m *MockEntityExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockEntityExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractEntitiesFunc = nil
}
