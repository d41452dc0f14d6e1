package filter

import (
	"math"
	"testing"
	"time"

	"github.com/seralin/musekiosk/internal/models"
)

var testNow = time.Date(2026, time.August, 19, 14, 30, 0, 0, time.UTC) // a Wednesday

func f64(v float64) *float64 { return &v }

func TestEvaluateText_Equals(t *testing.T) {
	p := models.NewTextPredicate("department", models.MatchEquals, "Law")

	if !Evaluate(p, "Law", testNow) {
		t.Error("expected exact match")
	}
	if Evaluate(p, "Law School", testNow) {
		t.Error("equals must not match a longer string")
	}
	if !Evaluate(p, "LAW", testNow) {
		t.Error("equals must be case-insensitive")
	}
}

func TestEvaluateText_Contains(t *testing.T) {
	p := models.NewTextPredicate("department", models.MatchContains, "Law")

	if !Evaluate(p, "Law", testNow) {
		t.Error("contains must match the exact string")
	}
	if !Evaluate(p, "Law School", testNow) {
		t.Error("contains must match a superstring")
	}
	if Evaluate(p, "History", testNow) {
		t.Error("contains must not match an unrelated string")
	}
}

func TestEvaluateText_PrefixSuffix(t *testing.T) {
	starts := models.NewTextPredicate("lastName", models.MatchStartsWith, "mac")
	if !Evaluate(starts, "MacDonald", testNow) {
		t.Error("startsWith must fold case")
	}
	if Evaluate(starts, "Cormac", testNow) {
		t.Error("startsWith must anchor at the start")
	}

	ends := models.NewTextPredicate("lastName", models.MatchEndsWith, "son")
	if !Evaluate(ends, "Anderson", testNow) {
		t.Error("endsWith must match the suffix")
	}
}

func TestEvaluateText_MissingOrMistyped(t *testing.T) {
	p := models.NewTextPredicate("department", models.MatchEquals, "Law")
	if Evaluate(p, nil, testNow) {
		t.Error("missing value must be non-match")
	}
	if Evaluate(p, 42.0, testNow) {
		t.Error("numeric value must be non-match for a text predicate")
	}
}

func TestEvaluateRange_InclusiveBounds(t *testing.T) {
	p := models.NewRangePredicate("year", f64(2015), f64(2020))

	if !Evaluate(p, 2020.0, testNow) {
		t.Error("upper bound is inclusive")
	}
	if !Evaluate(p, 2015.0, testNow) {
		t.Error("lower bound is inclusive")
	}
	if Evaluate(p, 2021.0, testNow) {
		t.Error("2021 is outside [2015,2020]")
	}
}

func TestEvaluateRange_OpenBounds(t *testing.T) {
	min := models.NewRangePredicate("year", f64(2000), nil)
	if !Evaluate(min, 2026.0, testNow) {
		t.Error("missing max means unbounded above")
	}
	if Evaluate(min, 1999.0, testNow) {
		t.Error("min bound still applies")
	}

	max := models.NewRangePredicate("year", nil, f64(2000))
	if !Evaluate(max, 1950.0, testNow) {
		t.Error("missing min means unbounded below")
	}
}

func TestEvaluateRange_Invalid(t *testing.T) {
	crossed := models.NewRangePredicate("year", f64(2020), f64(2015))
	if Evaluate(crossed, 2017.0, testNow) {
		t.Error("crossed bounds are an invalid predicate, must be non-match")
	}
	p := models.NewRangePredicate("year", f64(0), nil)
	if Evaluate(p, math.NaN(), testNow) {
		t.Error("NaN field value must be non-match")
	}
	if Evaluate(p, "2017", testNow) {
		t.Error("string value must be non-match for a range predicate")
	}
}

func TestEvaluateRange_IntValue(t *testing.T) {
	p := models.NewRangePredicate("year", f64(2015), f64(2020))
	if !Evaluate(p, 2017, testNow) {
		t.Error("int field values compare numerically")
	}
}

func TestEvaluateBoolean_Strict(t *testing.T) {
	p := models.NewBooleanPredicate("featured", true)

	if !Evaluate(p, true, testNow) {
		t.Error("expected match on true")
	}
	if Evaluate(p, false, testNow) {
		t.Error("expected non-match on false")
	}
	if Evaluate(p, "true", testNow) {
		t.Error("string truthiness must not be coerced")
	}
	if Evaluate(p, 1.0, testNow) {
		t.Error("numeric truthiness must not be coerced")
	}
}

func TestEvaluateDate_Today(t *testing.T) {
	p := models.NewDatePresetPredicate("gradDate", models.PresetToday)

	sameDay := time.Date(2026, time.August, 19, 23, 59, 0, 0, time.UTC)
	if !Evaluate(p, sameDay, testNow) {
		t.Error("same calendar day must match today")
	}
	yesterday := testNow.AddDate(0, 0, -1)
	if Evaluate(p, yesterday, testNow) {
		t.Error("yesterday must not match today")
	}
}

func TestEvaluateDate_ThisWeek(t *testing.T) {
	p := models.NewDatePresetPredicate("gradDate", models.PresetThisWeek)

	// testNow is Wednesday 2026-08-19; the week runs Mon 17th - Sun 23rd.
	monday := time.Date(2026, time.August, 17, 0, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, time.August, 23, 18, 0, 0, 0, time.UTC)
	priorSunday := time.Date(2026, time.August, 16, 18, 0, 0, 0, time.UTC)

	if !Evaluate(p, monday, testNow) {
		t.Error("Monday of the current week must match")
	}
	if !Evaluate(p, sunday, testNow) {
		t.Error("Sunday of the current week must match")
	}
	if Evaluate(p, priorSunday, testNow) {
		t.Error("the previous Sunday must not match")
	}
}

func TestEvaluateDate_ThisMonthAndYear(t *testing.T) {
	month := models.NewDatePresetPredicate("gradDate", models.PresetThisMonth)
	if !Evaluate(month, time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC), testNow) {
		t.Error("first of the month must match thisMonth")
	}
	if Evaluate(month, time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC), testNow) {
		t.Error("previous month must not match thisMonth")
	}

	year := models.NewDatePresetPredicate("gradDate", models.PresetThisYear)
	if !Evaluate(year, time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), testNow) {
		t.Error("January 1st must match thisYear")
	}
	if Evaluate(year, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), testNow) {
		t.Error("last year must not match thisYear")
	}
}

func TestEvaluateDate_CustomInclusive(t *testing.T) {
	start := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2020, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := models.NewDateRangePredicate("gradDate", start, end)

	if !Evaluate(p, start, testNow) {
		t.Error("custom start bound is inclusive")
	}
	if !Evaluate(p, end, testNow) {
		t.Error("custom end bound is inclusive")
	}
	if Evaluate(p, end.Add(time.Second), testNow) {
		t.Error("just past the end must not match")
	}
}

func TestEvaluateDate_MalformedCustom(t *testing.T) {
	start := time.Date(2015, time.June, 1, 0, 0, 0, 0, time.UTC)
	p := models.Predicate{
		Kind:   models.PredicateDate,
		Field:  "gradDate",
		Preset: models.PresetCustom,
		Start:  &start,
	}
	if Evaluate(p, start, testNow) {
		t.Error("custom predicate missing a bound must be non-match")
	}
}

func TestEvaluateDate_MistypedValue(t *testing.T) {
	p := models.NewDatePresetPredicate("gradDate", models.PresetToday)
	if Evaluate(p, "2026-08-19", testNow) {
		t.Error("string dates must be non-match, not parsed")
	}
}
