package dashboard

import (
	"sort"

	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/utils"
)

// ListingStats are the counters shown on top of the landlord and agent
// dashboards.
type ListingStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Rented   int `json:"rented"`
	Boosted  int `json:"boosted"`
	Messages int `json:"messages"`
	Unread   int `json:"unread"`
}

func listingStats(props []models.Property, inquiries []models.Inquiry) ListingStats {
	s := ListingStats{Total: len(props), Messages: len(inquiries)}
	for _, p := range props {
		if p.Availability == models.Rented {
			s.Rented++
		} else {
			s.Active++
		}
		if p.Boosted {
			s.Boosted++
		}
	}
	for _, inq := range inquiries {
		if !inq.Read {
			s.Unread++
		}
	}
	return s
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// AdminStats summarize the whole catalog.
type AdminStats struct {
	Total             int               `json:"total"`
	Boosted           int               `json:"boosted"`
	BoostedPercent    int               `json:"boostedPercent"`
	Rented            int               `json:"rented"`
	VerifiedLandlords int               `json:"verifiedLandlords"`
	AveragePrice      int64             `json:"averagePrice"`
	AveragePriceText  string            `json:"averagePriceText"`
	ByLocation        []LocationCount   `json:"byLocation"`
	TopRated          []models.Property `json:"topRated"`
}

const topRatedLimit = 5

func adminStats(props []models.Property) AdminStats {
	s := AdminStats{Total: len(props)}

	var sum int64
	counts := make(map[string]int)
	for _, p := range props {
		sum += p.Price
		if p.Boosted {
			s.Boosted++
		}
		if p.Availability == models.Rented {
			s.Rented++
		}
		if p.Landlord != nil && p.Landlord.Verified {
			s.VerifiedLandlords++
		}
		if p.Location != "" {
			counts[p.Location]++
		}
	}
	if len(props) > 0 {
		s.AveragePrice = sum / int64(len(props))
	}
	s.AveragePriceText = utils.FormatNaira(s.AveragePrice)
	s.BoostedPercent = utils.Percentage(s.Boosted, s.Total)

	for loc, n := range counts {
		s.ByLocation = append(s.ByLocation, LocationCount{Location: loc, Count: n})
	}
	sort.Slice(s.ByLocation, func(i, j int) bool {
		a, b := s.ByLocation[i], s.ByLocation[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Location < b.Location
	})

	top := make([]models.Property, len(props))
	copy(top, props)
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].SafetyRating != top[j].SafetyRating {
			return top[i].SafetyRating > top[j].SafetyRating
		}
		return top[i].Price > top[j].Price
	})
	if len(top) > topRatedLimit {
		top = top[:topRatedLimit]
	}
	s.TopRated = top
	return s
}
