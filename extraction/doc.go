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

// Package extraction runs entity extraction over chunked documents.
//
// The Pool fans chunks out to an AI extractor with a bounded number of
// concurrent calls and collects per-chunk partial results in chunk order.
// A failing chunk is recorded and skipped; it never aborts the run or
// blocks its siblings.
//
// The Pipeline sequences the full run: load a document, split it into
// chunks, extract entities concurrently, and merge the partial results.
// When a consolidator is configured the merged lists are passed through
// it for cleanup and summarization; a consolidation failure degrades to
// the plain union merge rather than failing the run.
package extraction
