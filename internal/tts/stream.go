package tts

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Frame chunk id sentinels for the metadata and terminal frames.
const (
	FrameIDInit     = "init"
	FrameIDComplete = "complete"
)

// InitFrame is the metadata frame emitted before any synthesis begins.
type InitFrame struct {
	ChunkID           string  `json:"chunkId"`
	TotalChunks       int     `json:"totalChunks"`
	CharacterCount    int     `json:"characterCount"`
	EstimatedDuration float64 `json:"estimatedDuration"`
}

// ChunkFrame carries one successfully synthesized chunk. AudioData is
// base64-encoded audio.
type ChunkFrame struct {
	ChunkID     string `json:"chunkId"`
	ChunkIndex  int    `json:"chunkIndex"`
	TotalChunks int    `json:"totalChunks"`
	Text        string `json:"text"`
	AudioData   string `json:"audioData"`
	IsComplete  bool   `json:"isComplete"`
}

// ChunkErrorFrame reports a single chunk's failure without ending the
// stream.
type ChunkErrorFrame struct {
	ChunkID    string `json:"chunkId"`
	ChunkIndex int    `json:"chunkIndex"`
	Error      string `json:"error"`
	IsComplete bool   `json:"isComplete"`
}

// CompleteFrame is the terminal sentinel, emitted once all chunks have been
// attempted.
type CompleteFrame struct {
	ChunkID    string `json:"chunkId"`
	ChunkIndex int    `json:"chunkIndex"`
	IsComplete bool   `json:"isComplete"`
}

// Emitter encodes frames as "data: <json>\n\n" records on a push stream,
// flushing after each frame so the client receives chunks incrementally.
type Emitter struct {
	w       io.Writer
	flusher http.Flusher
}

// NewEmitter wraps a response writer. Writers that do not implement
// http.Flusher (buffers in tests) are written without flushing.
func NewEmitter(w io.Writer) *Emitter {
	e := &Emitter{w: w}
	if f, ok := w.(http.Flusher); ok {
		e.flusher = f
	}
	return e
}

// Emit writes one frame and flushes it to the client
func (e *Emitter) Emit(frame interface{}) error {
	encoded, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", encoded); err != nil {
		return err
	}
	if e.flusher != nil {
		e.flusher.Flush()
	}
	return nil
}
