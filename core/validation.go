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


package core

import (
	"fmt"
	"time"
)

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Index must not be negative
//   - Start must not be negative and must be less than End
//   - Text length in runes must equal End - Start
func ValidateChunk(chunk Chunk) error {
	if chunk.Index < 0 {
		return fmt.Errorf("%w: negative index %d", ErrInvalidChunk, chunk.Index)
	}
	if chunk.Start < 0 || chunk.Start >= chunk.End {
		return fmt.Errorf("%w: range [%d, %d)", ErrInvalidChunk, chunk.Start, chunk.End)
	}
	if n := len([]rune(chunk.Text)); n != chunk.End-chunk.Start {
		return fmt.Errorf("%w: text is %d runes, range covers %d", ErrInvalidChunk, n, chunk.End-chunk.Start)
	}
	return nil
}

// ValidateRun validates an ExtractionRun according to domain rules.
//
// Validation rules:
//   - URL must not be empty
//   - CreatedAt must not be in the future
//   - FailedChunks must be between 0 and ChunkCount
//
// NOT validated:
//   - Result (an entirely empty result is a legal, if useless, outcome)
//   - Id (0 is overwritten by the repository from RunID)
func ValidateRun(run *ExtractionRun) error {
	if run == nil {
		return fmt.Errorf("%w: run is nil", ErrInvalidRun)
	}
	if run.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrEmptyURL)
	}
	if !IsValidTimestamp(run.CreatedAt) {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrInvalidTimestamp)
	}
	if run.ChunkCount < 0 || run.FailedChunks < 0 || run.FailedChunks > run.ChunkCount {
		return fmt.Errorf("%w: %w", ErrInvalidRun, ErrNegativeCount)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
