package videoai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
)

// Client talks to the external video-analysis service that turns a recorded
// answer into a numeric mark.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewClient(endpoint, apiKey string) *Client {
	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{},
	}
}

type scoreRequest struct {
	VideoURL string `json:"video_url"`
}

type scoreResponse struct {
	Mark  int    `json:"mark"`
	Error string `json:"error,omitempty"`
}

// Score submits one video reference for analysis. Callers bound the ctx; a
// timeout here is just a failed mark for this one video.
func (c *Client) Score(ctx context.Context, videoURL string) (int, error) {
	b, _ := json.Marshal(scoreRequest{VideoURL: videoURL})
	r, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(b))
	if err != nil {
		return 0, err
	}
	r.Header.Set("Authorization", "Bearer "+c.apiKey)
	r.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(r)
	if err != nil {
		return 0, fmt.Errorf("%w: score call: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: scorer returned status %d", model.ErrUpstream, resp.StatusCode)
	}

	var sr scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return 0, fmt.Errorf("%w: decode scorer response: %v", model.ErrUpstream, err)
	}
	if sr.Error != "" {
		return 0, fmt.Errorf("%w: scorer: %s", model.ErrUpstream, sr.Error)
	}
	return sr.Mark, nil
}
