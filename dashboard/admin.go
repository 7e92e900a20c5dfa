package dashboard

import (
	"context"

	"github.com/dcode-github/dormdash/models"
)

type AdminState struct {
	Properties []models.Property  `json:"properties"`
	Plans      []models.BoostPlan `json:"plans"`
	Stats      AdminStats         `json:"stats"`
}

// Admin is the read-only overview of the whole catalog.
type Admin struct {
	view
	backend    Backend
	properties []models.Property
	plans      []models.BoostPlan
}

func NewAdmin(backend Backend, opts ...Option) *Admin {
	o := collect(opts)
	a := &Admin{backend: backend, plans: models.DefaultBoostPlans()}
	a.init(o.logger)
	return a
}

func (a *Admin) Mount(ctx context.Context) {
	ctx, ok := a.start(ctx)
	if !ok {
		return
	}
	spawn(&a.view, ctx, "products", a.backend.ListProducts, func(props []models.Property) {
		a.properties = props
	})
	spawn(&a.view, ctx, "boost plans", a.backend.BoostPlans, func(plans []models.BoostPlan) {
		if len(plans) > 0 {
			a.plans = plans
		}
	})
}

func (a *Admin) Snapshot() AdminState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AdminState{
		Properties: append([]models.Property(nil), a.properties...),
		Plans:      append([]models.BoostPlan(nil), a.plans...),
		Stats:      adminStats(a.properties),
	}
}
