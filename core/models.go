package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities, generated from content hashes.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// Identical content always produces the same ID.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Chunk is a bounded, possibly overlapping slice of a source document.
// Start and End are rune offsets into the source text, so overlap arithmetic
// stays correct for accented text. Chunks are immutable once created.
type Chunk struct {
	Index int    // Position in the chunk sequence, starting at 0
	Text  string // The fragment text
	Start int    // Inclusive rune offset of the first rune
	End   int    // Exclusive rune offset past the last rune
}

// Len returns the chunk length in runes.
func (c Chunk) Len() int {
	return c.End - c.Start
}

// PartialResult holds the entities extracted from a single chunk.
// Exactly one PartialResult is produced per chunk; a chunk whose extraction
// failed yields empty lists and Failed=true instead of aborting the run.
type PartialResult struct {
	ChunkIndex int
	Companies  []string
	Persons    []string
	Events     []string
	Failed     bool
}

// ConsolidatedResult is the terminal artifact of a pipeline run: the merged,
// deduplicated entities, optionally refined and summarized by a consolidation
// model pass. Summary is empty when the run degraded to a plain union merge.
type ConsolidatedResult struct {
	Summary   string   `json:"summary,omitempty"`
	Companies []string `json:"companies"`
	Persons   []string `json:"persons"`
	Events    []string `json:"events"`
}

// ExtractionRun records one completed pipeline run for a URL.
// Runs are persisted so past extractions can be listed and compared.
type ExtractionRun struct {
	Id           ID
	URL          string
	CreatedAt    time.Time
	ChunkCount   int // Total chunks the document was split into
	FailedChunks int // Chunks whose extraction failed and were skipped
	Result       ConsolidatedResult
}

// RunID generates the deterministic ID for a run from its URL and timestamp.
func RunID(url string, createdAt time.Time) ID {
	return IDFromContent(url + "@" + createdAt.UTC().Format(time.RFC3339Nano))
}
