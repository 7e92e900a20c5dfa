package dashboard

import (
	"context"

	"github.com/dcode-github/dormdash/models"
)

type LandlordState struct {
	Identity   models.Identity   `json:"identity"`
	Properties []models.Property `json:"properties"`
	Inquiries  []models.Inquiry  `json:"inquiries"`
	Stats      ListingStats      `json:"stats"`
	Notices    []models.Notice   `json:"-"`
}

// Landlord is the dashboard of one landlord's own listings and the student
// messages about them.
type Landlord struct {
	view
	editor

	backend    Backend
	identity   models.Identity
	properties []models.Property
	inquiries  []models.Inquiry
	notices    []models.Notice
}

func NewLandlord(backend Backend, identity models.Identity, opts ...Option) *Landlord {
	o := collect(opts)
	l := &Landlord{backend: backend, identity: identity}
	l.init(o.logger)
	l.editor = editor{
		v:          &l.view,
		backend:    backend,
		identity:   identity,
		creds:      o.creds,
		list:       l.myProducts,
		properties: &l.properties,
		notices:    &l.notices,
	}
	return l
}

// Mount starts the listing and inquiry fetches and returns immediately.
func (l *Landlord) Mount(ctx context.Context) {
	ctx, ok := l.start(ctx)
	if !ok {
		return
	}
	spawn(&l.view, ctx, "my products", l.myProducts, func(props []models.Property) {
		l.properties = props
	})
	spawn(&l.view, ctx, "inquiries", func(ctx context.Context) ([]models.Inquiry, error) {
		return l.backend.ListInquiries(ctx, "")
	}, func(inq []models.Inquiry) {
		l.inquiries = inq
	})
}

// myProducts lists the landlord's own listings. When the token route fails
// and the session holds credentials, the listings are looked up by login.
func (l *Landlord) myProducts(ctx context.Context) ([]models.Property, error) {
	props, err := l.backend.ListMyProducts(ctx)
	if err == nil || l.creds == nil || ctx.Err() != nil {
		return props, err
	}
	l.logger.Warn("my products failed, listing by login", "err", err)
	return l.backend.ListProductsByLogin(ctx, *l.creds)
}

func (l *Landlord) Snapshot() LandlordState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return LandlordState{
		Identity:   l.identity,
		Properties: append([]models.Property(nil), l.properties...),
		Inquiries:  append([]models.Inquiry(nil), l.inquiries...),
		Stats:      listingStats(l.properties, l.inquiries),
		Notices:    append([]models.Notice(nil), l.notices...),
	}
}
