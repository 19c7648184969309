package generate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmorgan81/imagegen/internal/log"
)

var ErrNoImage = errors.New("response carried no image url")

// HTTPError reports a non-2xx answer from the image endpoint.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
}

type remoteRequest struct {
	Prompt string `json:"prompt"`
}

type remoteResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Remote asks the image request handler for a URL.
type Remote struct {
	Client   *http.Client
	Endpoint string
}

func NewRemote(client *http.Client, endpoint string) *Remote {
	return &Remote{Client: client, Endpoint: endpoint}
}

func (r *Remote) Resolve(ctx context.Context, prompt string) (string, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("remote").With("endpoint", r.Endpoint)
	logger.Info("requesting image", "prompt", prompt)

	body, err := json.Marshal(remoteRequest{Prompt: prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("requesting image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out remoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding image response: %w", err)
	}
	if out.Message == "" {
		return "", ErrNoImage
	}
	if out.Error != "" {
		// the endpoint still answered with a usable placeholder
		logger.Warn("endpoint reported an internal error", "error", out.Error)
	}

	logger.Info("received image", "url", out.Message)
	return out.Message, nil
}
