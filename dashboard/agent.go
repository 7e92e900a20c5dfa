package dashboard

import (
	"context"

	"github.com/dcode-github/dormdash/models"
)

type AgentState struct {
	Identity   models.Identity    `json:"identity"`
	Properties []models.Property  `json:"properties"`
	Inquiries  []models.Inquiry   `json:"inquiries"`
	Plans      []models.BoostPlan `json:"plans"`
	Stats      ListingStats       `json:"stats"`
	Notices    []models.Notice    `json:"-"`
}

// Agent manages listings across the catalog. Its boost plans start out as
// the default catalog until the backend answers.
type Agent struct {
	view
	editor

	backend    Backend
	identity   models.Identity
	properties []models.Property
	inquiries  []models.Inquiry
	plans      []models.BoostPlan
	notices    []models.Notice
}

func NewAgent(backend Backend, identity models.Identity, opts ...Option) *Agent {
	o := collect(opts)
	a := &Agent{backend: backend, identity: identity, plans: models.DefaultBoostPlans()}
	a.init(o.logger)
	a.editor = editor{
		v:          &a.view,
		backend:    backend,
		identity:   identity,
		creds:      o.creds,
		list:       backend.ListProducts,
		properties: &a.properties,
		notices:    &a.notices,
	}
	return a
}

func (a *Agent) Mount(ctx context.Context) {
	ctx, ok := a.start(ctx)
	if !ok {
		return
	}
	spawn(&a.view, ctx, "products", a.backend.ListProducts, func(props []models.Property) {
		a.properties = props
	})
	spawn(&a.view, ctx, "inquiries", func(ctx context.Context) ([]models.Inquiry, error) {
		return a.backend.ListInquiries(ctx, "")
	}, func(inq []models.Inquiry) {
		a.inquiries = inq
	})
	spawn(&a.view, ctx, "boost plans", a.backend.BoostPlans, func(plans []models.BoostPlan) {
		if len(plans) > 0 {
			a.plans = plans
		}
	})
}

func (a *Agent) Snapshot() AgentState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return AgentState{
		Identity:   a.identity,
		Properties: append([]models.Property(nil), a.properties...),
		Inquiries:  append([]models.Inquiry(nil), a.inquiries...),
		Plans:      append([]models.BoostPlan(nil), a.plans...),
		Stats:      listingStats(a.properties, a.inquiries),
		Notices:    append([]models.Notice(nil), a.notices...),
	}
}
