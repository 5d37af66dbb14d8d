package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
)

// Classified synthesis failures. Everything here is surfaced per-chunk in
// the output stream; none of these abort the stream.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInsufficientCredits = errors.New("insufficient credits")
	ErrModelNotFound       = errors.New("model not found")
	ErrRateLimited         = errors.New("rate limited")
	ErrSynthesisTimeout    = errors.New("synthesis timed out")
	ErrNoAudio             = errors.New("no audio produced")
)

// SynthesisParams are the vendor voice parameters forwarded with every
// chunk. The zero value leaves everything to the vendor's defaults.
type SynthesisParams struct {
	ModelUUID              string   `json:"model_uuid,omitempty"`
	SpeakerUUID            string   `json:"speaker_uuid,omitempty"`
	StyleID                *int     `json:"style_id,omitempty"`
	SpeakingRate           *float64 `json:"speaking_rate,omitempty"`
	Pitch                  *float64 `json:"pitch,omitempty"`
	Volume                 *float64 `json:"volume,omitempty"`
	EmotionalIntensity     *float64 `json:"emotional_intensity,omitempty"`
	TempoDynamics          *float64 `json:"tempo_dynamics,omitempty"`
	OutputFormat           string   `json:"output_format,omitempty"`
	OutputSamplingRate     *int     `json:"output_sampling_rate,omitempty"`
	UseSSML                *bool    `json:"use_ssml,omitempty"`
	LeadingSilenceSeconds  *float64 `json:"leading_silence_seconds,omitempty"`
	TrailingSilenceSeconds *float64 `json:"trailing_silence_seconds,omitempty"`
	LineBreakSilenceSecs   *float64 `json:"line_break_silence_seconds,omitempty"`
}

// Synthesizer converts one chunk of text into audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, params SynthesisParams) ([]byte, error)
}

// Client calls the external synthesis REST endpoint. Timeouts come from the
// caller's context; the dispatcher applies the per-chunk deadline.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a synthesis client for the given endpoint
func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

type synthesisRequest struct {
	SynthesisParams
	Text string `json:"text"`
}

// Synthesize posts one chunk to the vendor API and returns the audio bytes,
// classifying failures by HTTP status.
func (c *Client) Synthesize(ctx context.Context, text string, params SynthesisParams) ([]byte, error) {
	body, err := json.Marshal(synthesisRequest{SynthesisParams: params, Text: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrSynthesisTimeout
		}
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, ErrSynthesisTimeout
		}
		return nil, err
	}
	if len(audio) == 0 {
		return nil, ErrNoAudio
	}
	return audio, nil
}

func classifyStatus(code int) error {
	switch code {
	case http.StatusUnauthorized:
		return ErrInvalidCredentials
	case http.StatusPaymentRequired:
		return ErrInsufficientCredits
	case http.StatusNotFound:
		return ErrModelNotFound
	case http.StatusTooManyRequests:
		return ErrRateLimited
	default:
		return fmt.Errorf("synthesis failed with status %d", code)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
