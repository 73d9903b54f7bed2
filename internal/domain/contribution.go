package domain

import (
	"fmt"
	"time"

	json "github.com/goccy/go-json"
)

// DateLayout is the calendar date format used by the contribution calendar.
const DateLayout = "2006-01-02"

// ContributionDay is a calendar date with a positive contribution count.
// Date is always midnight UTC of the calendar day.
type ContributionDay struct {
	Date  time.Time
	Count int
}

// NewContributionDay parses a "2006-01-02" date.
func NewContributionDay(date string, count int) (ContributionDay, error) {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ContributionDay{}, fmt.Errorf("invalid contribution date %q: %w", date, err)
	}
	return ContributionDay{Date: d, Count: count}, nil
}

type contributionDayJSON struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

func (d ContributionDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(contributionDayJSON{Date: d.Date.Format(DateLayout), Count: d.Count})
}

func (d *ContributionDay) UnmarshalJSON(data []byte) error {
	var raw contributionDayJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewContributionDay(raw.Date, raw.Count)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ContributionStats is derived from a contribution calendar on every request.
type ContributionStats struct {
	TotalYearContributions int     `json:"totalYearContributions"`
	LongestStreak          int     `json:"longestStreak"`
	CurrentStreak          int     `json:"currentStreak"`
	MostProductiveDay      string  `json:"mostProductiveDay"`
	AveragePerActiveDay    float64 `json:"averagePerActiveDay"`
}

// ContributionData is the response shape for a login's contribution calendar.
type ContributionData struct {
	Contributions []ContributionDay `json:"contributions"`
	Stats         ContributionStats `json:"stats"`
}
