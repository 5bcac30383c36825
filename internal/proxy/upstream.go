package proxy

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// maxBodyBytes caps request and upstream response bodies read into memory.
const maxBodyBytes = 4 << 20

// Upstream calls the backend API
type Upstream struct {
	baseURL string
	client  *http.Client
}

// NewUpstream creates an Upstream for baseURL (no trailing slash)
func NewUpstream(baseURL string, timeout time.Duration) *Upstream {
	return &Upstream{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// upstreamResponse is a fully read backend response.
type upstreamResponse struct {
	StatusCode int
	Body       []byte
}

func (r upstreamResponse) ok() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Do sends method to {baseURL}/api/{plural}/{id} with a bearer token and reads the response.
func (u *Upstream) Do(ctx context.Context, method, plural, id, token, requestID string, body []byte, header http.Header) (upstreamResponse, error) {
	target := fmt.Sprintf("%s/api/%s/%s", u.baseURL, url.PathEscape(plural), url.PathEscape(id))

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("failed to build upstream request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if requestID != "" {
		req.Header.Set(requestIDHeader, requestID)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("upstream %s %s failed: %w", method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return upstreamResponse{}, fmt.Errorf("failed to read upstream response: %w", err)
	}

	return upstreamResponse{StatusCode: resp.StatusCode, Body: data}, nil
}
