package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/DeveloperClyde246/ai-interview-portal/pkg/model"
)

// Client uploads answer artifacts to the external media store through its
// unsigned-upload endpoint and returns the durable locator.
type Client struct {
	uploadURL    string
	uploadPreset string
	http         *http.Client
}

func NewClient(uploadURL, uploadPreset string) *Client {
	return &Client{
		uploadURL:    uploadURL,
		uploadPreset: uploadPreset,
		http:         &http.Client{},
	}
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Store uploads one file and returns its URL.
func (c *Client) Store(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := fw.Write(data); err != nil {
		return "", fmt.Errorf("write upload body: %w", err)
	}
	if err := mw.WriteField("upload_preset", c.uploadPreset); err != nil {
		return "", fmt.Errorf("write upload preset: %w", err)
	}
	if contentType != "" {
		if err := mw.WriteField("content_type", contentType); err != nil {
			return "", fmt.Errorf("write content type: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close upload form: %w", err)
	}

	r, err := http.NewRequestWithContext(ctx, "POST", c.uploadURL, &body)
	if err != nil {
		return "", err
	}
	r.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(r)
	if err != nil {
		return "", fmt.Errorf("%w: artifact upload: %v", model.ErrUpstream, err)
	}
	defer resp.Body.Close()

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return "", fmt.Errorf("%w: decode upload response: %v", model.ErrUpstream, err)
	}
	if resp.StatusCode != http.StatusOK || ur.SecureURL == "" {
		msg := "upload rejected"
		if ur.Error != nil {
			msg = ur.Error.Message
		}
		return "", fmt.Errorf("%w: artifact store: %s (status %d)", model.ErrUpstream, msg, resp.StatusCode)
	}
	return ur.SecureURL, nil
}
