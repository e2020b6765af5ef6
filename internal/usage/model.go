package usage

// Counts is a user's current conversion consumption.
type Counts struct {
	Daily   int `json:"daily"`
	Monthly int `json:"monthly"`
}

// Free-tier ceilings. The daily cap is checked before the monthly one.
const (
	DailyLimit   = 3
	MonthlyLimit = 30
)
