package dashboard

import (
	"context"

	"github.com/dcode-github/dormdash/models"
)

const featuredCount = 3

type HomeState struct {
	Featured []models.Property `json:"featured"`
	Total    int               `json:"total"`
}

// Home is the landing page: the first few listings of the catalog.
type Home struct {
	view
	backend  Backend
	featured []models.Property
	total    int
}

func NewHome(backend Backend, opts ...Option) *Home {
	o := collect(opts)
	h := &Home{backend: backend}
	h.init(o.logger)
	return h
}

func (h *Home) Mount(ctx context.Context) {
	ctx, ok := h.start(ctx)
	if !ok {
		return
	}
	spawn(&h.view, ctx, "products", h.backend.ListProducts, func(props []models.Property) {
		h.total = len(props)
		if len(props) > featuredCount {
			props = props[:featuredCount]
		}
		h.featured = props
	})
}

func (h *Home) Snapshot() HomeState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return HomeState{
		Featured: append([]models.Property(nil), h.featured...),
		Total:    h.total,
	}
}
