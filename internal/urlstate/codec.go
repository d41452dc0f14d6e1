// Package urlstate converts flat filters to and from the string-keyed
// query parameters that back shareable and resumable kiosk views.
package urlstate

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/seralin/musekiosk/internal/models"
)

// Canonical parameter keys.
const (
	KeyYear            = "year"
	KeyYearStart       = "yearStart"
	KeyYearEnd         = "yearEnd"
	KeyDepartment      = "department"
	KeyPublicationType = "publicationType"
	KeyCollection      = "collection"
	KeyEventType       = "eventType"
	KeyPosition        = "position"
)

// Generic paging/search keys the codec passes through untouched.
const (
	KeyQuery = "q"
	KeyPage  = "page"
	KeyView  = "view"
)

// Params is a string parameter map that remembers first-insertion key
// order, which is the order the search string is assembled in.
type Params struct {
	keys   []string
	values map[string]string
}

// NewParams creates an empty parameter map
func NewParams() *Params {
	return &Params{values: map[string]string{}}
}

// Set stores a value under key. Empty values are dropped entirely so the
// codec never emits empty-valued keys; updating an existing key keeps its
// original position.
func (p *Params) Set(key, value string) {
	if value == "" {
		return
	}
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
}

// Get returns the value for key and whether it is present
func (p *Params) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

// Keys returns the keys in first-insertion order
func (p *Params) Keys() []string {
	out := make([]string, len(p.keys))
	copy(out, p.keys)
	return out
}

// Len returns the number of stored parameters
func (p *Params) Len() int {
	return len(p.keys)
}

// ToParams converts a flat filter into its canonical parameter map. Every
// set field becomes one string entry; yearRange expands to yearStart and
// yearEnd; absent fields are omitted. A filter carrying fields its content
// type does not declare is rejected.
func ToParams(f models.FlatFilter) (*Params, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("cannot encode filter: %w", err)
	}

	p := NewParams()
	if f.Year != nil {
		p.Set(KeyYear, strconv.Itoa(*f.Year))
	}
	if f.YearRange != nil {
		p.Set(KeyYearStart, strconv.Itoa(f.YearRange.Start))
		p.Set(KeyYearEnd, strconv.Itoa(f.YearRange.End))
	}
	p.Set(KeyDepartment, f.Department)
	p.Set(KeyPublicationType, f.PublicationType)
	p.Set(KeyCollection, f.Collection)
	p.Set(KeyEventType, f.EventType)
	p.Set(KeyPosition, f.Position)
	return p, nil
}

// ToFilter rebuilds a flat filter from a parameter map, scoped to one
// content type. Keys the type does not declare are ignored rather than
// rejected, and unparsable numeric values are dropped, so a hand-edited
// URL degrades to fewer filters instead of failing.
func ToFilter(p *Params, ct models.ContentType) (models.FlatFilter, error) {
	if !ct.IsValid() {
		return models.FlatFilter{}, fmt.Errorf("invalid content type %q", ct)
	}

	f := models.FlatFilter{Type: ct}
	if p == nil {
		return f, nil
	}

	if v, ok := p.Get(KeyYear); ok {
		if n, err := strconv.Atoi(v); err == nil {
			f.Year = &n
		}
	}
	start, okStart := p.Get(KeyYearStart)
	end, okEnd := p.Get(KeyYearEnd)
	if okStart && okEnd {
		s, errS := strconv.Atoi(start)
		e, errE := strconv.Atoi(end)
		if errS == nil && errE == nil {
			f.YearRange = &models.YearRange{Start: s, End: e}
		}
	}
	if v, ok := p.Get(KeyDepartment); ok {
		f.Department = v
	}
	if v, ok := p.Get(KeyPublicationType); ok && ct == models.ContentPublication {
		f.PublicationType = v
	}
	if v, ok := p.Get(KeyCollection); ok && ct == models.ContentPhoto {
		f.Collection = v
	}
	if v, ok := p.Get(KeyEventType); ok && ct == models.ContentPhoto {
		f.EventType = v
	}
	if v, ok := p.Get(KeyPosition); ok && ct == models.ContentFaculty {
		f.Position = v
	}
	return f, nil
}

// EncodeSearch assembles the URL search string: keys in first-insertion
// order, ?-prefixed, &-joined, percent-encoded. An empty map yields the
// empty string, never a bare "?".
func EncodeSearch(p *Params) string {
	if p == nil || len(p.keys) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteByte('?')
	for i, k := range p.keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.values[k]))
	}
	return b.String()
}

// ParseSearch is the inverse of EncodeSearch: it decodes a raw search
// string (with or without the leading "?") into an ordered parameter map.
// Malformed pairs are skipped instead of failing the whole string.
func ParseSearch(s string) *Params {
	p := NewParams()
	s = strings.TrimPrefix(s, "?")
	if s == "" {
		return p
	}
	for _, pair := range strings.Split(s, "&") {
		if pair == "" {
			continue
		}
		key, value, _ := strings.Cut(pair, "=")
		k, errK := url.QueryUnescape(key)
		v, errV := url.QueryUnescape(value)
		if errK != nil || errV != nil {
			continue
		}
		p.Set(k, v)
	}
	return p
}
