package chunker

import "github.com/gamejiaminenergia/observatorio-regulatorio-test-ia-local/core"

// Semantic splits text like Fixed but prefers natural break points.
// For each chunk it scans backwards from the hard ChunkSize limit looking for
// a paragraph break, then a line break, then a sentence end, then a word
// boundary, and hard-cuts only when none is found in the search window.
type Semantic struct {
	config Config
}

var _ Splitter = (*Semantic)(nil)

// NewSemantic creates a boundary-preferring splitter with the given
// configuration. Returns an error if the configuration is invalid.
func NewSemantic(cfg Config) (*Semantic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Semantic{config: cfg}, nil
}

// MustSemantic creates a boundary-preferring splitter, panicking on invalid
// config. Use for known-good configurations.
func MustSemantic(cfg Config) *Semantic {
	s, err := NewSemantic(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// Split packs text greedily into chunks of up to ChunkSize runes, breaking at
// the best boundary available. Consecutive chunks still share Overlap runes:
// each chunk starts Overlap runes before the previous chunk's end, so the
// coverage and overlap guarantees of Fixed are preserved.
func (s *Semantic) Split(text string) []core.Chunk {
	runes := []rune(text)
	n := len(runes)

	var chunks []core.Chunk
	start := 0
	for start < n {
		end := start + s.config.ChunkSize
		if end >= n {
			end = n
		} else {
			end = s.breakPoint(runes, start, end)
		}

		chunks = append(chunks, core.Chunk{
			Index: len(chunks),
			Text:  string(runes[start:end]),
			Start: start,
			End:   end,
		})

		if end == n {
			break
		}
		start = end - s.config.Overlap
	}
	return chunks
}

// breakPoint returns the best cut position in (floor, limit], scanning for
// boundary kinds in preference order. The floor guarantees forward progress:
// the next chunk starts at end - Overlap, which must stay past start, and a
// cut in the back half of the window keeps chunks reasonably full.
func (s *Semantic) breakPoint(runes []rune, start, limit int) int {
	floor := start + s.config.ChunkSize/2
	if min := start + s.config.Overlap + 1; floor < min {
		floor = min
	}
	if floor >= limit {
		return limit
	}

	// Paragraph: cut before a blank line.
	for i := limit - 1; i > floor; i-- {
		if runes[i] == '\n' && runes[i-1] == '\n' {
			return i - 1
		}
	}

	// Line: cut after a newline.
	for i := limit - 1; i >= floor; i-- {
		if runes[i] == '\n' {
			return i + 1
		}
	}

	// Sentence: cut after terminal punctuation followed by a space.
	for i := limit - 1; i > floor; i-- {
		if runes[i] == ' ' && isSentenceEnd(runes[i-1]) {
			return i + 1
		}
	}

	// Word: cut after a space.
	for i := limit - 1; i >= floor; i-- {
		if runes[i] == ' ' {
			return i + 1
		}
	}

	// No boundary in the window, hard cut.
	return limit
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '?' || r == '!'
}
