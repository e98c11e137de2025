package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationRun is one served recommendation as kept in the run log.
type RecommendationRun struct {
	ID         uuid.UUID `json:"id"`
	Query      string    `json:"query"`
	CenterName string    `json:"center_name"`
	CenterLat  float64   `json:"center_lat"`
	CenterLon  float64   `json:"center_lon"`
	Menu       MenuType  `json:"menu"`
	Party      PartySize `json:"party"`
	RadiusM    int       `json:"radius_m"`
	Venues     []Venue   `json:"venues"`
	CreatedAt  time.Time `json:"created_at"`
}
