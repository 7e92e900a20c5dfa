package search

import (
	"net/url"
	"strconv"
	"strings"
)

// allSentinel is what the search page's select boxes send for "no filter".
const allSentinel = "all"

var sortAliases = map[string]SortKey{
	"relevance":         Relevance,
	"price-asc":         PriceAsc,
	"price-ascending":   PriceAsc,
	"price-low":         PriceAsc,
	"price-desc":        PriceDesc,
	"price-descending":  PriceDesc,
	"price-high":        PriceDesc,
	"rating-desc":       RatingDesc,
	"rating-descending": RatingDesc,
	"rating":            RatingDesc,
	"boosted-first":     BoostedFirst,
	"boosted":           BoostedFirst,
}

// ParseSortKey maps a sort name, including the search page's short
// aliases, onto a SortKey. Unknown names yield Relevance.
func ParseSortKey(s string) SortKey {
	if k, ok := sortAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k
	}
	return Relevance
}

// ParseSpec reads a FilterSpec from search page query parameters:
// q, location, type, minPrice, maxPrice, amenities and sort.
func ParseSpec(q url.Values) FilterSpec {
	spec := FilterSpec{
		SearchTerm:   strings.TrimSpace(q.Get("q")),
		Location:     optional(q.Get("location")),
		PropertyType: optional(q.Get("type")),
		MinPrice:     parseBound(q.Get("minPrice")),
		MaxPrice:     parseBound(q.Get("maxPrice")),
		Sort:         ParseSortKey(q.Get("sort")),
	}

	for _, v := range q["amenities"] {
		for _, term := range strings.Split(v, ",") {
			if term = strings.TrimSpace(term); term != "" {
				spec.Amenities = append(spec.Amenities, term)
			}
		}
	}
	return spec
}

func optional(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, allSentinel) {
		return ""
	}
	return v
}

func parseBound(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Query renders the filter back into query parameters. Unset fields are
// omitted.
func (s FilterSpec) Query() url.Values {
	q := url.Values{}
	if s.SearchTerm != "" {
		q.Set("q", s.SearchTerm)
	}
	if s.Location != "" {
		q.Set("location", s.Location)
	}
	if s.PropertyType != "" {
		q.Set("type", s.PropertyType)
	}
	if s.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*s.MinPrice, 'f', -1, 64))
	}
	if s.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*s.MaxPrice, 'f', -1, 64))
	}
	if len(s.Amenities) > 0 {
		q.Set("amenities", strings.Join(s.Amenities, ","))
	}
	if s.Sort != "" && s.Sort != Relevance {
		q.Set("sort", string(s.Sort))
	}
	return q
}
