package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"roomboard/internal/logger"
	"time"
)

// ErrRemote marks failures of the roster and ledger collaborators: transport
// errors, non-2xx statuses and unusable responses.
var ErrRemote = errors.New("remote service error")

const DefaultRemoteTimeout = 10 * time.Second

func newRemoteClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultRemoteTimeout
	}
	return &http.Client{Timeout: timeout}
}

// doJSON sends body as JSON and decodes the response into out when out is not nil.
func doJSON(
	ctx context.Context,
	client *http.Client,
	log logger.Logger,
	method, url string,
	body, out any,
) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return log.Err("failed to marshal request", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return log.Err("failed to create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", "RoomBoard/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return log.Err("failed to make request", fmt.Errorf("%w: %w", ErrRemote, err), "url", url)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("Failed to close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return log.ErrorWithType(ErrRemote, fmt.Sprintf("unexpected status %d", resp.StatusCode), "url", url)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return log.Err("failed to decode response", fmt.Errorf("%w: %w", ErrRemote, err), "url", url)
	}

	return nil
}
