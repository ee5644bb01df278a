package views

import (
	"time"

	"github.com/vango-dev/marquee/pkg/api"
)

// HeatLevels is the number of non-empty intensity levels.
const HeatLevels = 4

// HeatLevel buckets count into 0..HeatLevels relative to max.
// Zero stays 0 and any non-zero count is at least 1.
func HeatLevel(count, max int) int {
	if count <= 0 || max <= 0 {
		return 0
	}
	if count >= max {
		return HeatLevels
	}
	level := (count*HeatLevels + max - 1) / max
	if level < 1 {
		level = 1
	}
	return level
}

// CalendarCell is one day in the heatmap grid. Padding cells have Day 0.
type CalendarCell struct {
	Day   int
	Date  string
	Count int
	Level int
}

// CalendarGrid lays out a month as weeks starting on Sunday.
func CalendarGrid(year int, month time.Month, days []api.HeatmapDay) [][]CalendarCell {
	counts := make(map[string]int, len(days))
	max := 0
	for _, d := range days {
		counts[d.Date] = d.Count
		if d.Count > max {
			max = d.Count
		}
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var weeks [][]CalendarCell
	week := make([]CalendarCell, int(first.Weekday()))
	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		count := counts[date]
		week = append(week, CalendarCell{Day: day, Date: date, Count: count, Level: HeatLevel(count, max)})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = nil
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, CalendarCell{})
		}
		weeks = append(weeks, week)
	}
	return weeks
}
