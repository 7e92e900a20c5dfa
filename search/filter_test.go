package search

import (
	"math"
	"net/url"
	"reflect"
	"testing"

	"github.com/dcode-github/dormdash/models"
)

func fixture() []models.Property {
	return []models.Property{
		{ID: "a", Title: "Modern 2-Bedroom Apartment", Location: "Akoka, Lagos State", Type: models.Apartment, Price: 250000, SafetyRating: 4.2, Amenities: []string{"wifi", "parking", "water"}},
		{ID: "b", Title: "Student Hostel UI", Location: "Ibadan, Oyo State", Type: models.Hostel, Price: 90000, SafetyRating: 3.8, Amenities: []string{"wifi"}, Boosted: true},
		{ID: "c", Title: "3-Bedroom House", Location: "Ota, Ogun State", Type: models.House, Price: 420000, SafetyRating: 4.9, Amenities: []string{"parking", "security"}},
		{ID: "d", Title: "Self-contain near UNILAG", Location: "Yaba, Lagos State", Type: models.Room, Price: 90000, SafetyRating: 4.2, Amenities: []string{"wifi", "parking"}, Boosted: true},
		{ID: "e", Title: "Luxury Duplex", Location: "Abuja, Federal Capital Territory", Type: models.House, Price: 750000, SafetyRating: 5, Amenities: []string{"wifi", "parking", "pool"}},
	}
}

func ids(props []models.Property) []string {
	out := make([]string, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func ptr(f float64) *float64 { return &f }

func TestFilterAndSort_SoundAndComplete(t *testing.T) {
	t.Parallel()

	props := fixture()
	specs := []FilterSpec{
		{},
		{SearchTerm: "lagos"},
		{SearchTerm: "HOSTEL"},
		{Location: "Lagos State"},
		{PropertyType: "house"},
		{MinPrice: ptr(90000), MaxPrice: ptr(250000)},
		{Amenities: []string{"wifi", "parking"}},
		{SearchTerm: "a", Location: "State", PropertyType: "apartment", MaxPrice: ptr(300000), Amenities: []string{"water"}},
	}

	for _, spec := range specs {
		got := FilterAndSort(props, spec)
		in := make(map[string]bool, len(got))
		for _, p := range got {
			in[p.ID] = true
			if !spec.Matches(p) {
				t.Fatalf("spec %+v: result %s fails the predicate", spec, p.ID)
			}
		}
		for _, p := range props {
			if spec.Matches(p) && !in[p.ID] {
				t.Fatalf("spec %+v: matching property %s missing from result", spec, p.ID)
			}
		}
	}
}

func TestFilterAndSort_TextMatchesTitleOrLocationIgnoringCase(t *testing.T) {
	t.Parallel()

	got := ids(FilterAndSort(fixture(), FilterSpec{SearchTerm: "LAGOS"}))
	want := []string{"a", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}

	got = ids(FilterAndSort(fixture(), FilterSpec{SearchTerm: "duplex"}))
	if !reflect.DeepEqual(got, []string{"e"}) {
		t.Fatalf("got=%v want=[e]", got)
	}
}

func TestFilterAndSort_LocationIsCaseSensitiveSubstring(t *testing.T) {
	t.Parallel()

	if got := FilterAndSort(fixture(), FilterSpec{Location: "lagos state"}); len(got) != 0 {
		t.Fatalf("lower-case location matched %v", ids(got))
	}
	got := ids(FilterAndSort(fixture(), FilterSpec{Location: "Lagos State"}))
	if !reflect.DeepEqual(got, []string{"a", "d"}) {
		t.Fatalf("got=%v want=[a d]", got)
	}
}

func TestFilterAndSort_AmenitiesRequireAll(t *testing.T) {
	t.Parallel()

	props := []models.Property{
		{ID: "wifi-only", Amenities: []string{"wifi"}},
		{ID: "both", Amenities: []string{"parking", "wifi"}},
		{ID: "parking-only", Amenities: []string{"parking"}},
	}
	got := ids(FilterAndSort(props, FilterSpec{Amenities: []string{"wifi", "parking"}}))
	if !reflect.DeepEqual(got, []string{"both"}) {
		t.Fatalf("got=%v want=[both]", got)
	}
}

func TestFilterAndSort_PriceRangeInclusiveKeepsOrder(t *testing.T) {
	t.Parallel()

	got := ids(FilterAndSort(fixture(), FilterSpec{MinPrice: ptr(0), MaxPrice: ptr(500000)}))
	want := []string{"a", "b", "c", "d"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}

	got = ids(FilterAndSort(fixture(), FilterSpec{MinPrice: ptr(90000), MaxPrice: ptr(90000)}))
	if !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Fatalf("inclusive bounds: got=%v want=[b d]", got)
	}
}

func TestFilterAndSort_InvalidBoundsAreClamped(t *testing.T) {
	t.Parallel()

	all := len(fixture())
	if got := FilterAndSort(fixture(), FilterSpec{MinPrice: ptr(math.NaN()), MaxPrice: ptr(math.NaN())}); len(got) != all {
		t.Fatalf("NaN bounds kept %d of %d", len(got), all)
	}
	if got := FilterAndSort(fixture(), FilterSpec{MinPrice: ptr(-100)}); len(got) != all {
		t.Fatalf("negative min kept %d of %d", len(got), all)
	}

	free := []models.Property{{ID: "free", Price: 0}, {ID: "paid", Price: 10}}
	got := ids(FilterAndSort(free, FilterSpec{MaxPrice: ptr(-5)}))
	if !reflect.DeepEqual(got, []string{"free"}) {
		t.Fatalf("negative max: got=%v want=[free]", got)
	}
}

func TestFilterAndSort_Sorts(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  SortKey
		want []string
	}{
		{Relevance, []string{"a", "b", "c", "d", "e"}},
		{PriceAsc, []string{"b", "d", "a", "c", "e"}},
		{PriceDesc, []string{"e", "c", "a", "b", "d"}},
		{RatingDesc, []string{"e", "c", "a", "d", "b"}},
		{BoostedFirst, []string{"b", "d", "a", "c", "e"}},
		{SortKey("by-vibes"), []string{"a", "b", "c", "d", "e"}},
	}
	for _, tc := range cases {
		got := ids(FilterAndSort(fixture(), FilterSpec{Sort: tc.key}))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("sort %q: got=%v want=%v", tc.key, got, tc.want)
		}
	}
}

func TestFilterAndSort_BoostedFirstIsStablePartition(t *testing.T) {
	t.Parallel()

	props := []models.Property{
		{ID: "A", Boosted: false},
		{ID: "B", Boosted: true},
		{ID: "C", Boosted: false},
		{ID: "D", Boosted: true},
	}
	got := ids(FilterAndSort(props, FilterSpec{Sort: BoostedFirst}))
	want := []string{"B", "D", "A", "C"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got=%v want=%v", got, want)
	}
}

func TestFilterAndSort_IdempotentUnderRelevance(t *testing.T) {
	t.Parallel()

	spec := FilterSpec{SearchTerm: "state", Amenities: []string{"wifi"}, MaxPrice: ptr(500000)}
	once := FilterAndSort(fixture(), spec)
	twice := FilterAndSort(once, spec)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("once=%v twice=%v", ids(once), ids(twice))
	}
}

func TestFilterAndSort_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	props := fixture()
	before := ids(props)
	_ = FilterAndSort(props, FilterSpec{Sort: PriceDesc})
	_ = FilterAndSort(props, FilterSpec{Sort: BoostedFirst})
	if !reflect.DeepEqual(ids(props), before) {
		t.Fatalf("input reordered: got=%v want=%v", ids(props), before)
	}
}

func TestParseSpec(t *testing.T) {
	t.Parallel()

	q := url.Values{}
	q.Set("q", "  hostel ")
	q.Set("location", "all")
	q.Set("type", "house")
	q.Set("minPrice", "1000")
	q.Set("maxPrice", "not-a-number")
	q.Add("amenities", "wifi, parking")
	q.Add("amenities", "water")
	q.Set("sort", "price-high")

	spec := ParseSpec(q)
	if spec.SearchTerm != "hostel" {
		t.Fatalf("term=%q want=%q", spec.SearchTerm, "hostel")
	}
	if spec.Location != "" {
		t.Fatalf("location=%q want empty for the all sentinel", spec.Location)
	}
	if spec.PropertyType != "house" {
		t.Fatalf("type=%q want=house", spec.PropertyType)
	}
	if spec.MinPrice == nil || *spec.MinPrice != 1000 {
		t.Fatalf("minPrice=%v want=1000", spec.MinPrice)
	}
	if spec.MaxPrice != nil {
		t.Fatalf("maxPrice=%v want nil", *spec.MaxPrice)
	}
	if !reflect.DeepEqual(spec.Amenities, []string{"wifi", "parking", "water"}) {
		t.Fatalf("amenities=%v", spec.Amenities)
	}
	if spec.Sort != PriceDesc {
		t.Fatalf("sort=%q want=%q", spec.Sort, PriceDesc)
	}

	back := ParseSpec(spec.Query())
	if !reflect.DeepEqual(back, spec) {
		t.Fatalf("query round trip: got=%+v want=%+v", back, spec)
	}
}

func TestFacets(t *testing.T) {
	t.Parallel()

	props := fixture()
	if got := Locations(props); len(got) != 5 || got[0] != "Akoka, Lagos State" {
		t.Fatalf("locations=%v", got)
	}
	want := []string{"wifi", "parking", "water", "security", "pool"}
	if got := Amenities(props); !reflect.DeepEqual(got, want) {
		t.Fatalf("amenities=%v want=%v", got, want)
	}
}

func TestParseSpec_LongSortNames(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]SortKey{
		"price-ascending":   PriceAsc,
		"price-descending":  PriceDesc,
		"rating-descending": RatingDesc,
		"Price-Ascending":   PriceAsc,
	} {
		spec := ParseSpec(url.Values{"sort": {name}})
		if spec.Sort != want {
			t.Fatalf("sort %q parsed as %q want=%q", name, spec.Sort, want)
		}
	}

	props := []models.Property{{ID: "a", Price: 300, SafetyRating: 2}, {ID: "b", Price: 100, SafetyRating: 4}}
	if got := ids(FilterAndSort(props, ParseSpec(url.Values{"sort": {"price-ascending"}}))); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("price-ascending order=%v want=[b a]", got)
	}
	if got := ids(FilterAndSort(props, ParseSpec(url.Values{"sort": {"price-descending"}}))); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("price-descending order=%v want=[a b]", got)
	}
	if got := ids(FilterAndSort(props, ParseSpec(url.Values{"sort": {"rating-descending"}}))); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("rating-descending order=%v want=[b a]", got)
	}
}
