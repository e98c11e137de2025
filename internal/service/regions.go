package service

import (
	"fmt"
	"slices"
	"strings"
)

// County is the administrative prefix for structured locations.
const County = "강원특별자치도 철원군"

// District is a town (읍/면) with its villages (리).
type District struct {
	Name     string   `json:"name"`
	Villages []string `json:"villages"`
}

var districts = []District{
	{Name: "갈말읍", Villages: []string{"지포리", "신철원리", "토성리", "문혜리", "명지리", "상사리"}},
	{Name: "동송읍", Villages: []string{"이평리", "장흥리", "오지리", "상노리", "하갈리"}},
	{Name: "김화읍", Villages: []string{"와수리", "학사리", "청양리", "읍내리", "도창리"}},
	{Name: "철원읍", Villages: []string{"화지리", "월하리", "관전리", "율이리"}},
	{Name: "서면", Villages: []string{"와수리", "자등리", "등대리"}},
	{Name: "근남면", Villages: []string{"육단리", "잠곡리", "사곡리"}},
}

// LocationError reports a district or village outside the county table.
type LocationError struct {
	Message string
}

func (e LocationError) Error() string {
	return e.Message
}

// Districts returns a copy of the county table in display order.
func Districts() []District {
	out := make([]District, len(districts))
	for i, d := range districts {
		out[i] = District{Name: d.Name, Villages: slices.Clone(d.Villages)}
	}
	return out
}

// ComposeAddress builds "<county> <district> <village> <detail>" after
// checking district and village against the table. detail is optional.
func ComposeAddress(district, village, detail string) (string, error) {
	district = strings.TrimSpace(district)
	village = strings.TrimSpace(village)

	idx := slices.IndexFunc(districts, func(d District) bool { return d.Name == district })
	if idx < 0 {
		return "", LocationError{Message: fmt.Sprintf("unknown district %q", district)}
	}
	if !slices.Contains(districts[idx].Villages, village) {
		return "", LocationError{Message: fmt.Sprintf("village %q is not in %s", village, district)}
	}

	return strings.TrimSpace(strings.Join([]string{County, district, village, strings.TrimSpace(detail)}, " ")), nil
}
