// Package search implements the property filter and sort engine behind the
// search page. Everything here is a pure function of its inputs.
package search

import (
	"math"
	"sort"
	"strings"

	"github.com/dcode-github/dormdash/models"
)

type SortKey string

const (
	Relevance    SortKey = "relevance"
	PriceAsc     SortKey = "price-asc"
	PriceDesc    SortKey = "price-desc"
	RatingDesc   SortKey = "rating-desc"
	BoostedFirst SortKey = "boosted-first"
)

// FilterSpec describes one search. Empty strings, nil bounds and an empty
// amenity list mean "do not filter on this field".
type FilterSpec struct {
	SearchTerm   string   `json:"searchTerm,omitempty"`
	Location     string   `json:"location,omitempty"`
	PropertyType string   `json:"propertyType,omitempty"`
	MinPrice     *float64 `json:"minPrice,omitempty"`
	MaxPrice     *float64 `json:"maxPrice,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Sort         SortKey  `json:"sort,omitempty"`
}

// PriceBounds returns the effective inclusive price range, clamped to
// [0, +Inf). NaN bounds fall back to the widest range.
func (s FilterSpec) PriceBounds() (lo, hi float64) {
	lo, hi = 0, math.Inf(1)
	if s.MinPrice != nil && !math.IsNaN(*s.MinPrice) {
		lo = math.Max(0, *s.MinPrice)
	}
	if s.MaxPrice != nil && !math.IsNaN(*s.MaxPrice) {
		hi = math.Max(0, *s.MaxPrice)
	}
	return lo, hi
}

// Matches reports whether p passes every sub-predicate of the filter.
func (s FilterSpec) Matches(p models.Property) bool {
	return s.matchesText(p) &&
		s.matchesLocation(p) &&
		s.matchesType(p) &&
		s.matchesPrice(p) &&
		s.matchesAmenities(p)
}

func (s FilterSpec) matchesText(p models.Property) bool {
	if s.SearchTerm == "" {
		return true
	}
	term := strings.ToLower(s.SearchTerm)
	return strings.Contains(strings.ToLower(p.Title), term) ||
		strings.Contains(strings.ToLower(p.Location), term)
}

func (s FilterSpec) matchesLocation(p models.Property) bool {
	return s.Location == "" || strings.Contains(p.Location, s.Location)
}

func (s FilterSpec) matchesType(p models.Property) bool {
	return s.PropertyType == "" || string(p.Type) == s.PropertyType
}

func (s FilterSpec) matchesPrice(p models.Property) bool {
	lo, hi := s.PriceBounds()
	price := float64(p.Price)
	return price >= lo && price <= hi
}

func (s FilterSpec) matchesAmenities(p models.Property) bool {
	for _, required := range s.Amenities {
		if !p.HasAmenity(required) {
			return false
		}
	}
	return true
}

// FilterAndSort returns the properties that match spec, ordered by
// spec.Sort. Ties keep their input order. The input slice is not modified.
func FilterAndSort(properties []models.Property, spec FilterSpec) []models.Property {
	out := make([]models.Property, 0, len(properties))
	for _, p := range properties {
		if spec.Matches(p) {
			out = append(out, p)
		}
	}

	switch spec.Sort {
	case PriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case PriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case RatingDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].SafetyRating > out[j].SafetyRating })
	case BoostedFirst:
		out = partitionBoosted(out)
	}
	return out
}

// partitionBoosted moves boosted listings ahead of the rest, keeping the
// relative order inside each group.
func partitionBoosted(props []models.Property) []models.Property {
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if p.Boosted {
			out = append(out, p)
		}
	}
	for _, p := range props {
		if !p.Boosted {
			out = append(out, p)
		}
	}
	return out
}

// Locations lists the distinct locations in first-seen order.
func Locations(props []models.Property) []string {
	seen := make(map[string]struct{}, len(props))
	var out []string
	for _, p := range props {
		if p.Location == "" {
			continue
		}
		if _, ok := seen[p.Location]; ok {
			continue
		}
		seen[p.Location] = struct{}{}
		out = append(out, p.Location)
	}
	return out
}

// Amenities lists the distinct amenity tags in first-seen order.
func Amenities(props []models.Property) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range props {
		for _, a := range p.Amenities {
			if _, ok := seen[a]; ok {
				continue
			}
			seen[a] = struct{}{}
			out = append(out, a)
		}
	}
	return out
}
