package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/octobees/food-recommender/internal/metrics"
)

const maxBodyBytes = 1 << 20

// HTTPClient is the subset of *http.Client the providers need.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Getter issues authenticated GET requests against one provider.
type Getter struct {
	Provider string
	BaseURL  string
	Header   http.Header
	Timeout  time.Duration
	Client   HTTPClient
	Breaker  *Breaker
}

// Get fetches path with query and returns the raw body. Non-2xx responses
// become KindProvider errors; the per-call timeout applies on top of ctx.
func (g *Getter) Get(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	body, err := g.Breaker.Execute(func() ([]byte, error) {
		return g.do(ctx, op, path, query)
	})
	if err != nil {
		pe := classify(op, err)
		metrics.ProviderCalls.WithLabelValues(g.Provider, op, string(pe.Kind)).Inc()
		return nil, pe
	}
	metrics.ProviderCalls.WithLabelValues(g.Provider, op, "ok").Inc()
	return body, nil
}

func (g *Getter) do(ctx context.Context, op, path string, query url.Values) ([]byte, error) {
	if g.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.Timeout)
		defer cancel()
	}

	target := strings.TrimRight(g.BaseURL, "/") + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &Error{Kind: KindTransport, Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	for key, values := range g.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	client := g.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, classify(op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(op, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &Error{Kind: KindProvider, Op: op, Status: resp.StatusCode, Err: errors.New(snippet(body))}
	}
	return body, nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > 200 {
		s = s[:200]
	}
	if s == "" {
		return "empty body"
	}
	return s
}
