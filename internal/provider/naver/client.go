// Package naver wraps the Naver blog search API.
package naver

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/octobees/food-recommender/internal/config"
	"github.com/octobees/food-recommender/internal/provider"
)

const blogPath = "/v1/search/blog.json"

// BlogPost is one cleaned blog search hit.
type BlogPost struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	BloggerName string `json:"blogger_name"`
	PostDate    string `json:"post_date"`
}

// Client queries the Naver search API.
type Client struct {
	get *provider.Getter
}

// NewClient builds a client with the given per-call timeout.
func NewClient(cfg config.NaverConfig, httpClient provider.HTTPClient, timeout time.Duration) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	header := http.Header{}
	header.Set("X-Naver-Client-Id", cfg.ClientID)
	header.Set("X-Naver-Client-Secret", cfg.ClientSecret)
	return &Client{get: &provider.Getter{
		Provider: "naver",
		BaseURL:  cfg.BaseURL,
		Header:   header,
		Timeout:  timeout,
		Client:   httpClient,
		Breaker:  provider.NewBreaker("naver", time.Minute, 30*time.Second),
	}}
}

// WithTimeout returns a copy of the client using a different per-call timeout.
// The breaker is shared with c.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	g := *c.get
	g.Timeout = timeout
	return &Client{get: &g}
}

type blogResponse struct {
	Total int `json:"total"`
	Items []struct {
		Title       string `json:"title"`
		Link        string `json:"link"`
		Description string `json:"description"`
		BloggerName string `json:"bloggername"`
		PostDate    string `json:"postdate"`
	} `json:"items"`
}

func (c *Client) blogSearch(ctx context.Context, op string, query url.Values) (*blogResponse, error) {
	body, err := c.get.Get(ctx, op, blogPath, query)
	if err != nil {
		return nil, err
	}
	var resp blogResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &provider.Error{Kind: provider.KindProvider, Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &resp, nil
}

// BlogTotal returns the total number of blog posts matching query. Zero
// matches come back as a not-found error so callers can tell them apart from
// failed calls; both map to a zero count.
func (c *Client) BlogTotal(ctx context.Context, query string) (int, error) {
	resp, err := c.blogSearch(ctx, "blog_total", url.Values{"query": {query}, "display": {"1"}})
	if err != nil {
		return 0, err
	}
	if resp.Total <= 0 {
		return 0, provider.NotFound("blog_total")
	}
	return resp.Total, nil
}

// Posts returns up to count posts for query ordered by similarity, with
// markup stripped from titles and descriptions.
func (c *Client) Posts(ctx context.Context, query string, count int) ([]BlogPost, error) {
	if count <= 0 || count > 100 {
		count = 5
	}
	resp, err := c.blogSearch(ctx, "blog_posts", url.Values{
		"query":   {query},
		"display": {strconv.Itoa(count)},
		"sort":    {"sim"},
	})
	if err != nil {
		return nil, err
	}
	posts := make([]BlogPost, 0, len(resp.Items))
	for _, item := range resp.Items {
		posts = append(posts, BlogPost{
			Title:       CleanHTML(item.Title),
			Link:        strings.TrimSpace(item.Link),
			Description: CleanHTML(item.Description),
			BloggerName: CleanHTML(item.BloggerName),
			PostDate:    item.PostDate,
		})
	}
	return posts, nil
}

// Ping issues a one-result search to verify credentials and reachability.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.blogSearch(ctx, "ping", url.Values{"query": {"테스트"}, "display": {"1"}})
	return err
}
