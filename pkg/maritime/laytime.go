package maritime

import (
	"errors"
	"math"
	"time"
)

var ErrInvalidInterval = errors.New("completion time is before arrival time")

const (
	LaytimeMethodContinuous = "continuous"
	LaytimeMethodCalendar   = "calendar"
)

type LaytimeOptions struct {
	ExcludeWeekends bool
	// ExcludeHolidays lists dates whose whole UTC day is deducted.
	ExcludeHolidays []time.Time
}

type LaytimeResult struct {
	Arrival       time.Time `json:"arrivalTime"`
	Completion    time.Time `json:"completionTime"`
	TotalHours    float64   `json:"totalHours"`
	TotalDays     float64   `json:"totalDays"`
	WorkingDays   float64   `json:"workingDays"`
	ExcludedHours float64   `json:"excludedHours"`
	Method        string    `json:"method"`
}

// CalculateLaytime measures the time between arrival and completion. Non-working
// periods are deducted with an exact walk over UTC calendar days, so a partial
// Saturday counts only for the hours actually spent in it.
func CalculateLaytime(arrival, completion time.Time, opts LaytimeOptions) (LaytimeResult, error) {
	if completion.Before(arrival) {
		return LaytimeResult{}, ErrInvalidInterval
	}

	totalHours := Round2(completion.Sub(arrival).Hours())
	result := LaytimeResult{
		Arrival:     arrival,
		Completion:  completion,
		TotalHours:  totalHours,
		TotalDays:   Round2(totalHours / 24),
		WorkingDays: Round2(totalHours / 24),
		Method:      LaytimeMethodContinuous,
	}

	if !opts.ExcludeWeekends && len(opts.ExcludeHolidays) == 0 {
		return result, nil
	}

	excluded := excludedDuration(arrival.UTC(), completion.UTC(), opts)
	result.Method = LaytimeMethodCalendar
	result.ExcludedHours = Round2(excluded.Hours())
	result.WorkingDays = Round2(math.Max(completion.Sub(arrival).Hours()-excluded.Hours(), 0) / 24)
	return result, nil
}

func excludedDuration(from, to time.Time, opts LaytimeOptions) time.Duration {
	holidays := make(map[string]struct{}, len(opts.ExcludeHolidays))
	for _, h := range opts.ExcludeHolidays {
		holidays[h.UTC().Format(time.DateOnly)] = struct{}{}
	}

	var excluded time.Duration
	dayStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	for dayStart.Before(to) {
		dayEnd := dayStart.AddDate(0, 0, 1)
		if isExcludedDay(dayStart, opts.ExcludeWeekends, holidays) {
			excluded += overlap(from, to, dayStart, dayEnd)
		}
		dayStart = dayEnd
	}
	return excluded
}

func isExcludedDay(day time.Time, weekends bool, holidays map[string]struct{}) bool {
	if weekends {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			return true
		}
	}
	_, ok := holidays[day.Format(time.DateOnly)]
	return ok
}

func overlap(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	start := aStart
	if bStart.After(start) {
		start = bStart
	}
	end := aEnd
	if bEnd.Before(end) {
		end = bEnd
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
