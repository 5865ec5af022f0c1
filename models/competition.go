package models

// CompetitionInfo is the singleton header block. PrizePool and Teams are
// free display strings ("¥10,000", "8支战队").
type CompetitionInfo struct {
	Title     string `json:"title"`
	Subtitle  string `json:"subtitle"`
	PrizePool string `json:"prizePool"`
	Teams     string `json:"teams"`
	Location  string `json:"location"`
}
