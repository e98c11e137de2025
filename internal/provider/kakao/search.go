package kakao

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/octobees/food-recommender/internal/entity"
	"github.com/octobees/food-recommender/internal/logging"
)

const (
	// FoodCategory is Kakao's category group code for restaurants.
	FoodCategory = "FD6"
	PageSize     = 15
	MaxPages     = 3

	categorySeparator = " > "
)

// SearchFood returns food venues around the coordinate sorted by distance.
// At most MaxPages pages of PageSize are fetched. A failed page ends the
// walk and the venues collected so far are returned; the method itself never
// fails. A venue already returned by an earlier page is dropped.
func (c *Client) SearchFood(ctx context.Context, lat, lon float64, radiusM int) []entity.Venue {
	venues := make([]entity.Venue, 0, PageSize)
	seen := make(map[string]struct{})

	for page := 1; page <= MaxPages; page++ {
		query := url.Values{
			"category_group_code": {FoodCategory},
			"x":                   {strconv.FormatFloat(lon, 'f', -1, 64)},
			"y":                   {strconv.FormatFloat(lat, 'f', -1, 64)},
			"radius":              {strconv.Itoa(radiusM)},
			"size":                {strconv.Itoa(PageSize)},
			"page":                {strconv.Itoa(page)},
			"sort":                {"distance"},
		}
		resp, err := c.search(ctx, "category", categoryPath, query)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int("page", page).Int("collected", len(venues)).Msg("nearby search page failed")
			break
		}
		if len(resp.Documents) == 0 {
			break
		}

		docs := resp.Documents
		if len(docs) > PageSize {
			docs = docs[:PageSize]
		}
		pageKeys := make([]string, 0, len(docs))
		for _, doc := range docs {
			venue, ok := toVenue(doc)
			if !ok {
				continue
			}
			key := venueKey(venue)
			if _, dup := seen[key]; dup {
				continue
			}
			pageKeys = append(pageKeys, key)
			venues = append(venues, venue)
		}
		// only earlier pages count as duplicates; the upstream page is taken as is
		for _, key := range pageKeys {
			seen[key] = struct{}{}
		}
		if resp.Meta.IsEnd {
			break
		}
	}
	return venues
}

func venueKey(v entity.Venue) string {
	return v.Name + "|" + strconv.FormatFloat(v.Lat, 'f', 6, 64) + "|" + strconv.FormatFloat(v.Lon, 'f', 6, 64)
}

func toVenue(doc document) (entity.Venue, bool) {
	lat, lon, ok := parseCoord(doc.X, doc.Y)
	if !ok {
		return entity.Venue{}, false
	}

	address := strings.TrimSpace(doc.RoadAddressName)
	if address == "" {
		address = strings.TrimSpace(doc.AddressName)
	}

	return entity.Venue{
		Name:         strings.TrimSpace(doc.PlaceName),
		CategoryPath: doc.CategoryName,
		Category:     leafCategory(doc.CategoryName),
		Address:      address,
		Phone:        normalizePhone(doc.Phone),
		DistanceM:    parseDistance(doc.Distance),
		Lat:          lat,
		Lon:          lon,
		PlaceURL:     doc.PlaceURL,
	}, true
}

func leafCategory(path string) string {
	parts := strings.Split(path, categorySeparator)
	return strings.TrimSpace(parts[len(parts)-1])
}

func parseDistance(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil || d < 0 {
		return 0
	}
	return int(d)
}
