package models

import (
	"fmt"
	"time"
)

// Operator combines the results of several predicates or child groups
type Operator string

const (
	OpAnd Operator = "AND"
	OpOr  Operator = "OR"
)

// IsValid checks if the operator is valid
func (op Operator) IsValid() bool {
	return op == OpAnd || op == OpOr
}

// PredicateKind tags the variant of a Predicate
type PredicateKind string

const (
	PredicateText    PredicateKind = "text"
	PredicateDate    PredicateKind = "date"
	PredicateRange   PredicateKind = "range"
	PredicateBoolean PredicateKind = "boolean"
)

// MatchType selects the text comparison mode, always case-insensitive
type MatchType string

const (
	MatchEquals     MatchType = "equals"
	MatchContains   MatchType = "contains"
	MatchStartsWith MatchType = "startsWith"
	MatchEndsWith   MatchType = "endsWith"
)

// DatePreset names a date window anchored to evaluation time
type DatePreset string

const (
	PresetToday     DatePreset = "today"
	PresetThisWeek  DatePreset = "thisWeek"
	PresetThisMonth DatePreset = "thisMonth"
	PresetThisYear  DatePreset = "thisYear"
	PresetCustom    DatePreset = "custom"
)

// Predicate is a single typed condition tested against one record field.
// Kind selects which of the variant fields are meaningful; the rest are
// left at their zero values.
type Predicate struct {
	Kind  PredicateKind
	Field string

	// Text
	Match MatchType
	Value string

	// Date
	Preset DatePreset
	Start  *time.Time
	End    *time.Time

	// Range
	Min *float64
	Max *float64

	// Boolean
	Expected bool
}

// NewTextPredicate builds a case-insensitive text condition
func NewTextPredicate(field string, match MatchType, value string) Predicate {
	return Predicate{Kind: PredicateText, Field: field, Match: match, Value: value}
}

// NewDatePresetPredicate builds a date condition over a preset window
func NewDatePresetPredicate(field string, preset DatePreset) Predicate {
	return Predicate{Kind: PredicateDate, Field: field, Preset: preset}
}

// NewDateRangePredicate builds a custom date condition, inclusive on both ends
func NewDateRangePredicate(field string, start, end time.Time) Predicate {
	return Predicate{Kind: PredicateDate, Field: field, Preset: PresetCustom, Start: &start, End: &end}
}

// NewRangePredicate builds a numeric range condition; a nil bound is open
func NewRangePredicate(field string, min, max *float64) Predicate {
	return Predicate{Kind: PredicateRange, Field: field, Min: min, Max: max}
}

// NewBooleanPredicate builds a boolean equality condition
func NewBooleanPredicate(field string, expected bool) Predicate {
	return Predicate{Kind: PredicateBoolean, Field: field, Expected: expected}
}

// YearRange is an inclusive year interval for flat filters
type YearRange struct {
	Start int `yaml:"start"`
	End   int `yaml:"end"`
}

// FlatFilter is the non-recursive, per-content-type filter shape used for
// shareable views. It is field-compatible with the tree model but the two
// only convert through the urlstate codec.
type FlatFilter struct {
	Type      ContentType `yaml:"type"`
	Year      *int        `yaml:"year,omitempty"`
	YearRange *YearRange  `yaml:"yearRange,omitempty"`

	Department string `yaml:"department,omitempty"`

	// publication only
	PublicationType string `yaml:"publicationType,omitempty"`

	// photo only
	Collection string `yaml:"collection,omitempty"`
	EventType  string `yaml:"eventType,omitempty"`

	// faculty only
	Position string `yaml:"position,omitempty"`
}

// Validate rejects flat filters carrying fields their content type does not
// declare. That shape can only come from a builder bug, so it fails loudly
// instead of degrading.
func (f FlatFilter) Validate() error {
	if !f.Type.IsValid() {
		return fmt.Errorf("invalid content type %q", f.Type)
	}
	if f.PublicationType != "" && f.Type != ContentPublication {
		return fmt.Errorf("publicationType is not declared for %s filters", f.Type)
	}
	if (f.Collection != "" || f.EventType != "") && f.Type != ContentPhoto {
		return fmt.Errorf("collection/eventType are not declared for %s filters", f.Type)
	}
	if f.Position != "" && f.Type != ContentFaculty {
		return fmt.Errorf("position is not declared for %s filters", f.Type)
	}
	return nil
}
