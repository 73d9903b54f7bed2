package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/github-profile-stats/internal/domain"
	"github.com/naka-gawa/github-profile-stats/internal/gateway"
	"github.com/naka-gawa/github-profile-stats/internal/providers"
)

const hoursPerDay = 24

// FlattenCalendar keeps the days with at least one contribution.
// Days with an unparsable date are skipped individually.
func FlattenCalendar(calendar *gateway.ContributionCalendar, logger providers.Logger) []domain.ContributionDay {
	days := []domain.ContributionDay{}
	if calendar == nil {
		return days
	}
	for _, raw := range calendar.Days {
		if raw.Count <= 0 {
			continue
		}
		day, err := domain.NewContributionDay(raw.Date, raw.Count)
		if err != nil {
			logger.Warnf(providers.TypeUpstream, "Skipping contribution day: %v", err)
			continue
		}
		days = append(days, day)
	}
	return days
}

// AnalyzeContributions derives streaks and the busiest weekday from contribution days.
// now decides whether the latest streak is still running: it is reset when the
// last contribution is more than one calendar day before now.
func AnalyzeContributions(days []domain.ContributionDay, totalYear int, now time.Time) domain.ContributionStats {
	result := domain.ContributionStats{
		TotalYearContributions: totalYear,
		MostProductiveDay:      time.Sunday.String(),
	}
	if len(days) == 0 {
		return result
	}

	sorted := make([]domain.ContributionDay, len(days))
	copy(sorted, days)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var weekdayTotals [7]int
	counts := make([]float64, 0, len(sorted))
	current := 0
	for i, day := range sorted {
		if i > 0 && daysBetween(sorted[i-1].Date, day.Date) == 1 {
			current++
		} else {
			current = 1
		}
		result.LongestStreak = max(result.LongestStreak, current)
		weekdayTotals[day.Date.Weekday()] += day.Count
		counts = append(counts, float64(day.Count))
	}

	last := sorted[len(sorted)-1].Date
	if daysBetween(last, civilDate(now)) > 1 {
		current = 0
	}
	result.CurrentStreak = current

	busiest := time.Sunday
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if weekdayTotals[wd] > weekdayTotals[busiest] {
			busiest = wd
		}
	}
	result.MostProductiveDay = busiest.String()

	if mean, err := stats.Mean(counts); err == nil {
		if rounded, err := stats.Round(mean, 2); err == nil {
			result.AveragePerActiveDay = rounded
		}
	}
	return result
}

// civilDate returns midnight UTC of the calendar day t falls on in its own location.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / hoursPerDay)
}
