// Package kakao talks to the Kakao Local REST API: place and address search,
// reverse region lookup and the categorized nearby search.
package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/octobees/food-recommender/internal/config"
	"github.com/octobees/food-recommender/internal/provider"
)

const (
	keywordPath  = "/v2/local/search/keyword.json"
	addressPath  = "/v2/local/search/address.json"
	regionPath   = "/v2/local/geo/coord2regioncode.json"
	categoryPath = "/v2/local/search/category.json"
)

// Client is a Kakao Local API client. Every method degrades instead of
// panicking; see each method for its failure result.
type Client struct {
	get *provider.Getter
}

// NewClient builds a client with the given per-call timeout. A nil httpClient
// uses a plain *http.Client.
func NewClient(cfg config.KakaoConfig, httpClient provider.HTTPClient, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	header := http.Header{}
	header.Set("Authorization", "KakaoAK "+cfg.RESTAPIKey)
	return &Client{get: &provider.Getter{
		Provider: "kakao",
		BaseURL:  cfg.BaseURL,
		Header:   header,
		Timeout:  timeout,
		Client:   httpClient,
		Breaker:  provider.NewBreaker("kakao", time.Minute, 30*time.Second),
	}}
}

type meta struct {
	TotalCount int  `json:"total_count"`
	IsEnd      bool `json:"is_end"`
}

type document struct {
	PlaceName       string `json:"place_name"`
	CategoryName    string `json:"category_name"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
	Phone           string `json:"phone"`
	Distance        string `json:"distance"`
	PlaceURL        string `json:"place_url"`
	X               string `json:"x"`
	Y               string `json:"y"`
}

type searchResponse struct {
	Meta      meta       `json:"meta"`
	Documents []document `json:"documents"`
}

func (c *Client) search(ctx context.Context, op, path string, query url.Values) (*searchResponse, error) {
	body, err := c.get.Get(ctx, op, path, query)
	if err != nil {
		return nil, err
	}
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &provider.Error{Kind: provider.KindProvider, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &resp, nil
}

// Ping issues a one-result keyword search to verify credentials and reachability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.search(ctx, "ping", keywordPath, url.Values{"query": {"테스트"}, "size": {"1"}})
	return err
}

func parseCoord(x, y string) (lat, lon float64, ok bool) {
	lon, errX := strconv.ParseFloat(x, 64)
	lat, errY := strconv.ParseFloat(y, 64)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, 0, false
	}
	return lat, lon, true
}
