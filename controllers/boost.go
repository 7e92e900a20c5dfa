package controllers

import (
	"log"
	"net/http"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/utils"
)

type PlanView struct {
	models.BoostPlan
	PriceRange string `json:"priceRange"`
}

type BoostingView struct {
	Plans []PlanView `json:"plans"`
}

// BoostingPage lists the boost plans. The default catalog stands in when
// the backend has none to offer.
func BoostingPage(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, _, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		plans, err := client.BoostPlans(r.Context())
		if err != nil {
			log.Printf("Error fetching boost plans, using defaults: %v", err)
		}
		if len(plans) == 0 {
			plans = models.DefaultBoostPlans()
		}

		view := BoostingView{Plans: make([]PlanView, 0, len(plans))}
		for _, p := range plans {
			view.Plans = append(view.Plans, PlanView{
				BoostPlan:  p,
				PriceRange: utils.FormatNaira(p.MinPrice) + " - " + utils.FormatNaira(p.MaxPrice),
			})
		}
		renderView(w, http.StatusOK, models.BoostingPage, view)
	}
}
