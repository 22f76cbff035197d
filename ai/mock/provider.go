// Copyright 2025 Observatorio Regulatorio
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package mock

import "github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/ai"

// MockProvider is a test double for ai.AIProvider.
// It aggregates mock extractor and consolidator instances.
type MockProvider struct {
	extractor    *MockEntityExtractor
	consolidator *MockConsolidator
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returns ai.AIProvider interface for consistency with production constructors.
// Use GetMockExtractor()/GetMockConsolidator() to access concrete types for
// test assertions.
func NewMockProvider() ai.AIProvider {
	return &MockProvider{
		extractor:    NewMockEntityExtractor(),
		consolidator: NewMockConsolidator(),
	}
}

// NewMockProviderWithServices creates a mock provider with custom mock services.
// This allows full control over the behavior of each service.
func NewMockProviderWithServices(extractor *MockEntityExtractor, consolidator *MockConsolidator) ai.AIProvider {
	return &MockProvider{
		extractor:    extractor,
		consolidator: consolidator,
	}
}

// EntityExtractor returns the mock entity extractor.
func (p *MockProvider) EntityExtractor() ai.EntityExtractor {
	return p.extractor
}

// Consolidator returns the mock consolidator.
func (p *MockProvider) Consolidator() ai.Consolidator {
	return p.consolidator
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockExtractor returns the underlying mock extractor for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockExtractor() *MockEntityExtractor {
	return p.extractor
}

// GetMockConsolidator returns the underlying mock consolidator for test assertions.
// This allows tests to check call counts and inject custom behavior.
func (p *MockProvider) GetMockConsolidator() *MockConsolidator {
	return p.consolidator
}
