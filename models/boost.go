package models

type BoostPlan struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Tier     BoostTier `json:"tier"`
	Duration string    `json:"duration"`
	MinPrice int64     `json:"minPrice"`
	MaxPrice int64     `json:"maxPrice"`
	Features []string  `json:"features"`
	Popular  bool      `json:"popular,omitempty"`
}

// DefaultBoostPlans is the catalog shown until the backend answers.
func DefaultBoostPlans() []BoostPlan {
	return []BoostPlan{
		{
			ID: "basic", Name: "Basic Boost", Tier: BasicBoost, Duration: "1 week",
			MinPrice: 2000, MaxPrice: 5000,
			Features: []string{"Priority listing in search results", "Basic highlighting in property lists", "Email support"},
		},
		{
			ID: "premium", Name: "Premium Boost", Tier: PremiumBoost, Duration: "2 weeks",
			MinPrice: 5000, MaxPrice: 10000, Popular: true,
			Features: []string{"Top placement in search results", "Enhanced property highlighting", "Social media promotion", "Priority customer support"},
		},
		{
			ID: "elite", Name: "Elite Boost", Tier: EliteBoost, Duration: "1 month",
			MinPrice: 10000, MaxPrice: 20000,
			Features: []string{"Featured placement on homepage", "Maximum visibility boost", "Dedicated account manager", "Analytics dashboard"},
		},
	}
}
