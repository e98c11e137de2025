package entity

import (
	"strings"
	"time"
)

// MenuType is the requested kind of meal.
type MenuType string

const (
	MenuHearty      MenuType = "hearty_meal"
	MenuMeatDrinks  MenuType = "meat_drinks"
	MenuDessertCafe MenuType = "dessert_cafe"
	MenuDelivery    MenuType = "delivery"
)

// PartySize groups the requester's party.
type PartySize string

const (
	PartySolo       PartySize = "solo"
	PartySmallGroup PartySize = "small_group"
	PartyLargeGroup PartySize = "large_group"
)

// Gender of the requester. Carried for completeness; no rule reads it yet.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Weather is a forecast for the target time.
type Weather struct {
	Description string `json:"description"`
	TempC       int    `json:"temp_c"`
	Synthetic   bool   `json:"synthetic"`
}

// IsRainy reports rain or overcast conditions.
func (w Weather) IsRainy() bool {
	desc := strings.ToLower(w.Description)
	for _, token := range []string{"비", "흐림", "rain", "overcast", "cloud"} {
		if strings.Contains(desc, token) {
			return true
		}
	}
	return false
}

// DiningContext is the request-scoped input to scoring. Treat it as immutable.
type DiningContext struct {
	Menu    MenuType
	At      time.Time
	Weather Weather
	Age     int
	Gender  Gender
	Party   PartySize
}

// IsWeekend reports whether At falls on Saturday or Sunday.
func (c DiningContext) IsWeekend() bool {
	wd := c.At.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
