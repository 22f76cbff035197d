// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.EntityExtractor,
// ai.Consolidator, and ai.AIProvider for use in unit tests. The mocks allow
// tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	entities, err := mockProvider.EntityExtractor().ExtractEntities(ctx, "test")
//
//	// Custom behavior injection
//	mockExtractor := mock.NewMockEntityExtractor()
//	mockExtractor.ExtractEntitiesFunc = func(ctx context.Context, text string) (ai.EntitySet, error) {
//	    return ai.EntitySet{Companies: []string{"Ecopetrol"}}, nil
//	}
//
//	// Check call counts
//	count := mockExtractor.CallCount()
//
// # Default Behavior
//
// The mock implementations provide sensible defaults:
//
//   - MockEntityExtractor: Collects capitalized words from the text
//   - MockConsolidator: Echoes the raw lists with a generated summary
//   - MockProvider: Aggregates mock extractor and consolidator
package mock
