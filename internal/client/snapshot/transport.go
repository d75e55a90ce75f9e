// Package snapshot keeps a best-effort remote copy of in-progress content.
// A scheduler feeds payloads to a background sender; every failure is
// contained here and surfaced only through an ambient status, never to the
// editing flow.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Payload is the unit sent to the persistence endpoint.
type Payload struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// Transport delivers one payload to the remote endpoint.
type Transport interface {
	Send(ctx context.Context, p Payload) error
}

// HTTPTransport POSTs payloads as JSON. Any transport error or non-2xx
// response counts as a failed snapshot.
type HTTPTransport struct {
	endpoint string
	client   *http.Client
}

func NewHTTPTransport(endpoint string) *HTTPTransport {
	return &HTTPTransport{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *HTTPTransport) Send(ctx context.Context, p Payload) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding snapshot payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building snapshot request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending snapshot: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("snapshot endpoint returned %s", resp.Status)
	}
	return nil
}
