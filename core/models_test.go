package core

import (
	"testing"
	"time"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "test content",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "accented content",
			content: "Resolución MinMinas 40505 de 2025",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestRunID_Deterministic(t *testing.T) {
	at := time.Date(2025, 11, 3, 10, 30, 0, 0, time.UTC)

	id1 := RunID("https://example.com/doc.htm", at)
	id2 := RunID("https://example.com/doc.htm", at)
	if id1 != id2 {
		t.Errorf("RunID() produced different IDs for same inputs: %d vs %d", id1, id2)
	}

	other := RunID("https://example.com/doc.htm", at.Add(time.Second))
	if id1 == other {
		t.Errorf("RunID() produced same ID for different timestamps")
	}
}

func TestChunk_Len(t *testing.T) {
	chunk := Chunk{Index: 0, Text: "señal", Start: 10, End: 15}
	if got := chunk.Len(); got != 5 {
		t.Errorf("Chunk.Len() = %d, want 5", got)
	}
}
