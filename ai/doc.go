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


// Package ai provides abstractions for the AI services the extraction
// pipeline depends on.
//
// This package defines interfaces for per-fragment entity extraction and for
// the optional final consolidation pass. It follows the dependency inversion
// principle: the pipeline depends on these abstractions, never on a concrete
// model client.
//
// The package is designed around three key interfaces:
//
//   - EntityExtractor: turns one text fragment into an EntitySet
//   - Consolidator: cleans and summarizes the union of all EntitySets
//   - AIProvider: aggregates both for convenient initialization
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external dependencies
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert on call counts.
//
// # Category aliases
//
// Models answer with category keys in either Spanish or English ("personas",
// "persons", "empresas", ...). NormalizeCategory resolves any known alias to
// its canonical Category; the normalization lives here, at the extraction
// boundary, so merge logic downstream only ever sees canonical keys.
//
// # Usage Example
//
//	config := ai.NewConfig(ai.WithHost("http://localhost:11434"))
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	entities, err := provider.EntityExtractor().ExtractEntities(ctx, fragment)
package ai
