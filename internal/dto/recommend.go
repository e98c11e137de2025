package dto

// RecommendRequest is the body of POST /recommendations and its export.
// Either Location or District with Village must be present.
type RecommendRequest struct {
	Location string        `json:"location" validate:"omitempty,max=200"`
	District string        `json:"district" validate:"required_without=Location"`
	Village  string        `json:"village" validate:"required_with=District"`
	Detail   string        `json:"detail" validate:"omitempty,max=100"`
	Menu     string        `json:"menu" validate:"required,oneof=hearty_meal meat_drinks dessert_cafe delivery"`
	Date     string        `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Time     string        `json:"time" validate:"omitempty,datetime=15:04"`
	Weather  *WeatherInput `json:"weather"`
	Age      int           `json:"age" validate:"omitempty,min=10,max=100"`
	Gender   string        `json:"gender" validate:"omitempty,oneof=male female"`
	Party    string        `json:"party" validate:"required,oneof=solo small_group large_group"`
	RadiusKM float64       `json:"radius_km" validate:"required,min=1,max=10"`
}

// WeatherInput overrides the synthetic forecast.
type WeatherInput struct {
	Description string `json:"description" validate:"required,max=50"`
	TempC       int    `json:"temp_c" validate:"min=-40,max=50"`
}
