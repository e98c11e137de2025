package entity

// Venue is a food venue candidate. Search fills the place fields, enrichment
// adds MentionCount and Rating, scoring adds Score and Reasons.
type Venue struct {
	Name         string   `json:"name"`
	CategoryPath string   `json:"category_path"`
	Category     string   `json:"category"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	DistanceM    int      `json:"distance_m"`
	Lat          float64  `json:"lat"`
	Lon          float64  `json:"lon"`
	PlaceURL     string   `json:"place_url"`
	MentionCount int      `json:"mention_count"`
	Rating       float64  `json:"rating"`
	Score        float64  `json:"score"`
	Reasons      []string `json:"reasons"`
}

// Place is a resolved coordinate with the name it was resolved to.
type Place struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}
