package scanner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client talks to the scanning service over HTTP. The whole batch goes out
// as one multipart request; the service answers with one verdict per file in
// submission order. The timeout is generous because one call covers a batch
// of potentially large files.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a scan service client for the given base URL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

var _ Scanner = (*Client)(nil)

type scanResponse struct {
	Results []Verdict `json:"results"`
}

// ScanBatch submits all files in one call and returns verdicts in request
// order. Every failure mode of the call maps to ErrUnavailable.
func (c *Client) ScanBatch(ctx context.Context, files []File) ([]Verdict, error) {
	body, contentType, err := encodeBatch(files)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/scan", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: scan service returned status %d", ErrUnavailable, resp.StatusCode)
	}

	var sr scanResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if len(sr.Results) != len(files) {
		return nil, fmt.Errorf("%w: got %d verdicts for %d files", ErrUnavailable, len(sr.Results), len(files))
	}
	return sr.Results, nil
}

func encodeBatch(files []File) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for i, f := range files {
		// Field names carry the ordinal so the service answers positionally.
		part, err := w.CreateFormFile(fmt.Sprintf("file_%d", i), f.Name)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
