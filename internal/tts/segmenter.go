package tts

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// MaxChunkRunes bounds the size of a single synthesis request.
	MaxChunkRunes = 200
	// boundaryWindow is how far back from the size limit we look for a
	// sentence terminator before giving up and cutting mid-sentence.
	boundaryWindow = 50
)

// Chunk is one bounded segment of the input text, processed as a unit by
// the synthesis pipeline. Chunks are transient; nothing persists them.
type Chunk struct {
	ID             string
	Text           string
	Index          int
	OriginalLength int
}

func isSentenceTerminator(r rune) bool {
	switch r {
	case '。', '．', '！', '？', '　':
		return true
	}
	return false
}

// Split segments text into chunks of at most MaxChunkRunes runes each,
// preferring sentence boundaries over mid-sentence cuts so the synthesized
// prosody stays natural across chunks. Input is split on newlines first and
// blank lines are dropped; indexes are sequential across the whole input.
// Empty or whitespace-only input yields no chunks.
func Split(text string) []Chunk {
	chunks := []Chunk{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		runes := []rune(line)
		for len(runes) > MaxChunkRunes {
			cut := splitPoint(runes)
			chunks = append(chunks, newChunk(string(runes[:cut]), len(chunks)))
			runes = runes[cut:]
		}
		if len(runes) > 0 {
			chunks = append(chunks, newChunk(string(runes), len(chunks)))
		}
	}
	return chunks
}

// splitPoint returns the rune offset to cut an oversized line at: just after
// the last sentence terminator within boundaryWindow runes of the limit, or
// exactly at the limit when no terminator is near enough.
func splitPoint(runes []rune) int {
	for i := MaxChunkRunes - 1; i >= MaxChunkRunes-boundaryWindow; i-- {
		if isSentenceTerminator(runes[i]) {
			return i + 1
		}
	}
	return MaxChunkRunes
}

func newChunk(text string, index int) Chunk {
	return Chunk{
		ID:             uuid.NewString(),
		Text:           text,
		Index:          index,
		OriginalLength: len([]rune(text)),
	}
}
