// Package speech reads interview questions aloud by calling an external
// text-to-speech service. It sits outside the session engine: a synthesis
// failure is an ordinary error, not degraded content.
package speech

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultEndpoint is the Google Translate TTS endpoint the original
// deployment used.
const DefaultEndpoint = "https://translate.google.com/translate_tts"

// Synthesizer converts text into MP3 audio via an HTTP TTS service.
type Synthesizer struct {
	endpoint string
	language string
	client   *http.Client
}

// NewSynthesizer creates a synthesizer. An empty endpoint selects
// DefaultEndpoint; language defaults to English.
func NewSynthesizer(endpoint, language string) *Synthesizer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if language == "" {
		language = "en"
	}
	return &Synthesizer{
		endpoint: endpoint,
		language: language,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Synthesize returns MP3 bytes for the given text.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	params := url.Values{}
	params.Set("q", text)
	params.Set("tl", s.language)
	params.Set("client", "tw-ob")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build TTS request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("TTS service unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("TTS service returned status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read TTS response: %w", err)
	}
	return audio, nil
}
