package filter

import (
	"math"
	"strings"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

// Evaluate tests a single predicate against one field value. A missing
// (nil) or mistyped value and a malformed predicate all evaluate to
// non-match; evaluation never returns an error. Date presets compute
// their window from the supplied now, so callers inject the clock.
func Evaluate(p models.Predicate, value any, now time.Time) bool {
	if value == nil {
		return false
	}
	switch p.Kind {
	case models.PredicateText:
		return evaluateText(p, value)
	case models.PredicateDate:
		return evaluateDate(p, value, now)
	case models.PredicateRange:
		return evaluateRange(p, value)
	case models.PredicateBoolean:
		return evaluateBoolean(p, value)
	}
	return false
}

func evaluateText(p models.Predicate, value any) bool {
	s, ok := value.(string)
	if !ok {
		return false
	}
	got := strings.ToLower(s)
	want := strings.ToLower(p.Value)

	switch p.Match {
	case models.MatchEquals:
		return got == want
	case models.MatchContains:
		return strings.Contains(got, want)
	case models.MatchStartsWith:
		return strings.HasPrefix(got, want)
	case models.MatchEndsWith:
		return strings.HasSuffix(got, want)
	}
	return false
}

func evaluateDate(p models.Predicate, value any, now time.Time) bool {
	t, ok := value.(time.Time)
	if !ok {
		return false
	}

	if p.Preset == models.PresetCustom {
		// Custom windows require both bounds and include both ends.
		if p.Start == nil || p.End == nil {
			return false
		}
		return !t.Before(*p.Start) && !t.After(*p.End)
	}

	start, next, ok := presetWindow(p.Preset, now)
	if !ok {
		return false
	}
	return !t.Before(start) && t.Before(next)
}

// presetWindow returns the half-open [start, next) window for a preset,
// anchored to now. Weeks start on Monday.
func presetWindow(preset models.DatePreset, now time.Time) (start, next time.Time, ok bool) {
	loc := now.Location()
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	switch preset {
	case models.PresetToday:
		return day, day.AddDate(0, 0, 1), true
	case models.PresetThisWeek:
		offset := (int(day.Weekday()) + 6) % 7
		monday := day.AddDate(0, 0, -offset)
		return monday, monday.AddDate(0, 0, 7), true
	case models.PresetThisMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(0, 1, 0), true
	case models.PresetThisYear:
		first := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, loc)
		return first, first.AddDate(1, 0, 0), true
	}
	return time.Time{}, time.Time{}, false
}

func evaluateRange(p models.Predicate, value any) bool {
	var v float64
	switch n := value.(type) {
	case float64:
		v = n
	case int:
		v = float64(n)
	default:
		return false
	}
	if math.IsNaN(v) {
		return false
	}
	// A range with crossed bounds is invalid, not an error.
	if p.Min != nil && p.Max != nil && *p.Min > *p.Max {
		return false
	}
	if p.Min != nil && v < *p.Min {
		return false
	}
	if p.Max != nil && v > *p.Max {
		return false
	}
	return true
}

func evaluateBoolean(p models.Predicate, value any) bool {
	// No truthy coercion: the field must already be boolean-typed.
	b, ok := value.(bool)
	if !ok {
		return false
	}
	return b == p.Expected
}
