package tts

import (
	"context"
	"encoding/base64"
	"time"
)

const (
	// ChunkTimeout bounds each individual synthesis call. A slow chunk only
	// costs its own deadline; there is no whole-request deadline.
	ChunkTimeout = 30 * time.Second

	// charactersPerSecond approximates Japanese speech rate for the duration
	// estimate in the init frame.
	charactersPerSecond = 8.0
)

// Dispatcher drives the per-request synthesis state machine: one init frame,
// one frame per chunk (success or error), one terminal frame. Chunks are
// dispatched strictly sequentially, which bounds load on the external API
// and keeps the output stream ordered without a reorder buffer.
type Dispatcher struct {
	synthesizer Synthesizer
	timeout     time.Duration
}

// NewDispatcher creates a Dispatcher around a synthesizer
func NewDispatcher(s Synthesizer) *Dispatcher {
	return &Dispatcher{synthesizer: s, timeout: ChunkTimeout}
}

// Stream synthesizes every chunk in order and pushes the result frames to
// the emitter. A chunk's failure is reported in its own frame and the next
// chunk still runs; only a dead client (emit failure or cancelled context)
// stops dispatch early. The terminal frame is emitted whenever all chunks
// have been attempted.
func (d *Dispatcher) Stream(ctx context.Context, chunks []Chunk, params SynthesisParams, emitter *Emitter) error {
	total := len(chunks)
	characterCount := 0
	for _, chunk := range chunks {
		characterCount += chunk.OriginalLength
	}

	if err := emitter.Emit(InitFrame{
		ChunkID:           FrameIDInit,
		TotalChunks:       total,
		CharacterCount:    characterCount,
		EstimatedDuration: float64(characterCount) / charactersPerSecond,
	}); err != nil {
		return err
	}

	for i, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			// Client went away; stop dispatching further chunks.
			return err
		}

		audio, err := d.synthesizeChunk(ctx, chunk.Text, params)
		if err != nil {
			frame := ChunkErrorFrame{
				ChunkID:    chunk.ID,
				ChunkIndex: chunk.Index,
				Error:      err.Error(),
				IsComplete: false,
			}
			if emitErr := emitter.Emit(frame); emitErr != nil {
				return emitErr
			}
			continue
		}

		frame := ChunkFrame{
			ChunkID:     chunk.ID,
			ChunkIndex:  chunk.Index,
			TotalChunks: total,
			Text:        chunk.Text,
			AudioData:   base64.StdEncoding.EncodeToString(audio),
			IsComplete:  i == total-1,
		}
		if err := emitter.Emit(frame); err != nil {
			return err
		}
	}

	return emitter.Emit(CompleteFrame{
		ChunkID:    FrameIDComplete,
		ChunkIndex: total,
		IsComplete: true,
	})
}

func (d *Dispatcher) synthesizeChunk(ctx context.Context, text string, params SynthesisParams) ([]byte, error) {
	cctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	return d.synthesizer.Synthesize(cctx, text, params)
}
