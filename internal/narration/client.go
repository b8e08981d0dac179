// Package narration synthesizes and stores the spoken version of a
// devotional. Narration is optional everywhere: callers treat every error
// here as non-fatal.
package narration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const synthesisModel = "eleven_multilingual_v2"

// Client communicates with the ElevenLabs text-to-speech API over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	voiceID    string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, voiceID string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		voiceID: voiceID,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	UseSpeakerBoost bool    `json:"use_speaker_boost"`
}

// Synthesize returns the mpeg audio for the given narration script.
func (c *Client) Synthesize(ctx context.Context, script string) ([]byte, error) {
	payload, err := json.Marshal(synthesisRequest{
		Text:    script,
		ModelID: synthesisModel,
		VoiceSettings: voiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
			Style:           0.0,
			UseSpeakerBoost: true,
		},
	})
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting speech synthesis: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("speech synthesis failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio stream: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("speech synthesis returned an empty stream")
	}
	return audio, nil
}
