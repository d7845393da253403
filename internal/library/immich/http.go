package immich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// doGetJSON performs a GET request and unmarshals the JSON response
// into the result type.
func doGetJSON[T any](ctx context.Context, im *Immich, pathSegments ...string) (*T, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, im.resolveURL(pathSegments...), nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}

	return do[T](im, req)
}

// doPostJSON performs a POST request with a JSON body and unmarshals
// the JSON response.
func doPostJSON[T any](ctx context.Context, im *Immich, endpoint string, requestBody any) (*T, error) {
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("could not marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, im.resolveURL(endpoint), bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return do[T](im, req)
}

func do[T any](im *Immich, req *http.Request) (*T, error) {
	req.Header.Set("x-api-key", im.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, readErrorBody(resp.Body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("could not unmarshal response: %w", err)
	}

	return &result, nil
}

// readErrorBody reads the response body for error messages. Returns a
// placeholder if reading fails since we are already in an error path.
func readErrorBody(r io.Reader) string {
	body, err := io.ReadAll(r)
	if err != nil {
		return "(could not read error body)"
	}
	return string(body)
}
