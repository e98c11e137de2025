package scoring

import (
	"slices"
	"strings"

	"github.com/octobees/food-recommender/internal/entity"
)

// Reason tags attached by the rule set.
const (
	ReasonDeliveryPopular = "delivery-popular"
	ReasonLunch           = "lunch-recommended"
	ReasonEvening         = "evening/dining-out"
	ReasonRainyDelivery   = "rainy-day-delivery"
	ReasonRainyComfort    = "rainy-day-comfort-food"
	ReasonSoloPick        = "solo-dining-pick"
	ReasonGroupSeating    = "group-seating-expected"
	ReasonDefault         = "recommended"
)

const (
	// BaseScore is where every venue starts.
	BaseScore = 50.0
	// TopK is the number of venues a recommendation returns.
	TopK = 6

	mentionThreshold = 50
	ratingThreshold  = 4.5
)

var (
	heartyKeywords   = []string{"한식", "백반", "국밥", "찌개", "면", "죽"}
	meatKeywords     = []string{"육류", "고기", "회", "곱창", "술집", "족발"}
	dessertKeywords  = []string{"카페", "제과", "베이커리", "디저트"}
	deliveryKeywords = []string{"치킨", "피자", "패스트푸드", "중식", "도시락"}
	lunchKeywords    = []string{"백반", "국수", "분식"}
	eveningKeywords  = []string{"고기", "회", "요리", "전골"}
	comfortKeywords  = []string{"전", "칼국수", "짬뽕", "국물"}
	soloKeywords     = []string{"분식", "국밥", "패스트푸드", "김밥"}
	groupKeywords    = []string{"고기", "회", "한정식"}

	grillKeyword = "고기"
)

// Score evaluates v against dc and returns the score with the reason tags in
// the order their rules fired. Only the category path, mention count and
// rating of v are read.
func Score(v entity.Venue, dc entity.DiningContext) (float64, []string) {
	score := BaseScore
	reasons := []string{}
	path := v.CategoryPath

	switch dc.Menu {
	case entity.MenuHearty:
		if containsAny(path, heartyKeywords) {
			score += 50
		} else if strings.Contains(path, grillKeyword) {
			score -= 20
		}
	case entity.MenuMeatDrinks:
		if containsAny(path, meatKeywords) {
			score += 50
		} else {
			score -= 10
		}
	case entity.MenuDessertCafe:
		if containsAny(path, dessertKeywords) {
			score += 50
		} else {
			score -= 50
		}
	case entity.MenuDelivery:
		if containsAny(path, deliveryKeywords) {
			score += 50
			reasons = append(reasons, ReasonDeliveryPopular)
		} else {
			score += 10
		}
	}

	hour := dc.At.Hour()
	weekend := dc.IsWeekend()
	if hour >= 11 && hour < 15 && !weekend {
		if strings.Contains(path, grillKeyword) && dc.Menu != entity.MenuMeatDrinks {
			score -= 30
		}
		if containsAny(path, lunchKeywords) {
			score += 20
			reasons = append(reasons, ReasonLunch)
		}
	}
	if hour >= 17 || weekend {
		if containsAny(path, eveningKeywords) {
			score += 15
			reasons = append(reasons, ReasonEvening)
		}
	}

	if dc.Weather.IsRainy() {
		if dc.Menu == entity.MenuDelivery {
			score += 20
			reasons = append(reasons, ReasonRainyDelivery)
		} else if containsAny(path, comfortKeywords) {
			score += 20
			reasons = append(reasons, ReasonRainyComfort)
		}
	}

	switch dc.Party {
	case entity.PartySolo:
		if containsAny(path, soloKeywords) {
			score += 15
			reasons = append(reasons, ReasonSoloPick)
		} else if strings.Contains(path, grillKeyword) {
			score -= 20
		}
	case entity.PartyLargeGroup:
		if containsAny(path, groupKeywords) {
			score += 15
			reasons = append(reasons, ReasonGroupSeating)
		}
	}

	if v.MentionCount > mentionThreshold {
		score += 10
	}
	if v.Rating >= ratingThreshold {
		score += 10
	}

	return score, reasons
}

// Rank keeps venues with a positive score, orders them by score descending
// with ties in input order and returns at most k of them. Venues without a
// reason get ReasonDefault. The input slice is left untouched.
func Rank(venues []entity.Venue, k int) []entity.Venue {
	ranked := make([]entity.Venue, 0, len(venues))
	for _, v := range venues {
		if v.Score <= 0 {
			continue
		}
		if len(v.Reasons) == 0 {
			v.Reasons = []string{ReasonDefault}
		} else {
			v.Reasons = slices.Clone(v.Reasons)
		}
		ranked = append(ranked, v)
	}

	slices.SortStableFunc(ranked, func(a, b entity.Venue) int {
		switch {
		case a.Score > b.Score:
			return -1
		case a.Score < b.Score:
			return 1
		default:
			return 0
		}
	})

	if k < 0 {
		k = 0
	}
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}

func containsAny(value string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(value, keyword) {
			return true
		}
	}
	return false
}
