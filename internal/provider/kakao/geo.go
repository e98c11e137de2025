package kakao

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/octobees/food-recommender/internal/entity"
	"github.com/octobees/food-recommender/internal/provider"
)

// Resolve turns a free-text location into a coordinate. The keyword search
// wins when it has a hit; otherwise the address search is tried. When neither
// yields a usable document the result is a *provider.Error: not-found if both
// calls succeeded empty, else the last call failure. Resolve never invents a
// coordinate; callers pick their own fallback.
func (c *Client) Resolve(ctx context.Context, query string) (entity.Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return entity.Place{}, provider.NotFound("resolve")
	}

	var lastErr error
	if resp, err := c.search(ctx, "keyword", keywordPath, url.Values{"query": {query}}); err != nil {
		lastErr = err
	} else if place, ok := firstPlace(resp, func(d document) string { return d.PlaceName }); ok {
		return place, nil
	}

	if resp, err := c.search(ctx, "address", addressPath, url.Values{"query": {query}}); err != nil {
		lastErr = err
	} else if place, ok := firstPlace(resp, func(d document) string { return d.AddressName }); ok {
		return place, nil
	}

	if lastErr != nil {
		return entity.Place{}, lastErr
	}
	return entity.Place{}, provider.NotFound("resolve")
}

func firstPlace(resp *searchResponse, name func(document) string) (entity.Place, bool) {
	if resp == nil || len(resp.Documents) == 0 {
		return entity.Place{}, false
	}
	doc := resp.Documents[0]
	lat, lon, ok := parseCoord(doc.X, doc.Y)
	if !ok {
		return entity.Place{}, false
	}
	return entity.Place{Lat: lat, Lon: lon, Name: name(doc)}, true
}

// RegionName returns the administrative region name for a coordinate, used
// for display only. Failures return "" with the error for logging.
func (c *Client) RegionName(ctx context.Context, lat, lon float64) (string, error) {
	query := url.Values{
		"x": {strconv.FormatFloat(lon, 'f', -1, 64)},
		"y": {strconv.FormatFloat(lat, 'f', -1, 64)},
	}
	resp, err := c.search(ctx, "region", regionPath, query)
	if err != nil {
		return "", err
	}
	if len(resp.Documents) == 0 || resp.Documents[0].AddressName == "" {
		return "", provider.NotFound("region")
	}
	return resp.Documents[0].AddressName, nil
}
