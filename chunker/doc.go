// Package chunker splits document text into ordered, overlapping chunks
// sized for a single model inference call.
//
// Two splitters are provided:
//
//   - Fixed: advances through the text with a constant stride of
//     ChunkSize - Overlap runes. Deterministic and cheap.
//   - Semantic: greedily packs up to ChunkSize runes but prefers to break at
//     paragraph, line, sentence and word boundaries, in that order, before
//     falling back to a hard cut.
//
// Both honor the same contract: chunks are emitted in increasing offset
// order, consecutive chunks share Overlap runes of text, and the union of
// chunk ranges covers the entire input. Offsets are rune offsets so the
// arithmetic holds for accented text.
package chunker
