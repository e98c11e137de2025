package service

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/octobees/food-recommender/internal/provider"
)

// Pinger is a provider that can be probed with a minimal request.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProbeResult is the outcome of one provider probe.
type ProbeResult struct {
	Provider  string `json:"provider"`
	OK        bool   `json:"ok"`
	Kind      string `json:"kind,omitempty"`
	Message   string `json:"message"`
	LatencyMS int64  `json:"latency_ms"`
}

// HealthService probes the configured providers.
type HealthService struct {
	names   []string
	pingers []Pinger
}

func NewHealthService() *HealthService {
	return &HealthService{}
}

// Register adds a named provider. Probes report in registration order.
func (s *HealthService) Register(name string, p Pinger) *HealthService {
	s.names = append(s.names, name)
	s.pingers = append(s.pingers, p)
	return s
}

// Probe pings every provider concurrently.
func (s *HealthService) Probe(ctx context.Context) []ProbeResult {
	results := make([]ProbeResult, len(s.pingers))
	var g errgroup.Group
	for i, p := range s.pingers {
		g.Go(func() error {
			start := time.Now()
			err := p.Ping(ctx)
			res := ProbeResult{
				Provider:  s.names[i],
				OK:        err == nil,
				Message:   "ok",
				LatencyMS: time.Since(start).Milliseconds(),
			}
			if err != nil {
				res.Kind = string(provider.KindOf(err))
				res.Message = err.Error()
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Healthy reports whether every probe succeeded.
func Healthy(results []ProbeResult) bool {
	for _, r := range results {
		if !r.OK {
			return false
		}
	}
	return true
}
