package controllers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/dormdash/dashboard"
	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/search"
	"github.com/dcode-github/dormdash/utils"
)

const summaryRunes = 120

// PropertyCard is one search result with its display text.
type PropertyCard struct {
	models.Property
	PriceText string `json:"priceText"`
	Summary   string `json:"summary"`
}

func cardsFor(props []models.Property) []PropertyCard {
	cards := make([]PropertyCard, 0, len(props))
	for _, p := range props {
		cards = append(cards, PropertyCard{
			Property:  p,
			PriceText: utils.FormatNaira(p.Price),
			Summary:   utils.Truncate(p.Description, summaryRunes),
		})
	}
	return cards
}

type SearchView struct {
	Spec      search.FilterSpec     `json:"spec"`
	Results   []PropertyCard        `json:"results"`
	Count     int                   `json:"count"`
	Total     int                   `json:"total"`
	Locations []string              `json:"locations"`
	Amenities []string              `json:"amenities"`
	Types     []models.PropertyType `json:"types"`
}

type DetailView struct {
	Property    models.Property `json:"property"`
	PriceText   string          `json:"priceText"`
	Contact     *models.Contact `json:"contact,omitempty"`
	WhatsAppURL string          `json:"whatsAppUrl,omitempty"`
	Initials    string          `json:"initials,omitempty"`
}

func HomePage(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, _, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		home := dashboard.NewHome(client)
		home.Mount(r.Context())
		home.Wait()
		home.Unmount()

		renderView(w, http.StatusOK, models.HomePage, home.Snapshot())
	}
}

// SearchProperties answers the search page. By default it loads the whole
// catalog and filters it in process; with backendSearch the query goes to
// the backend search route and the filter still runs over what comes back.
// A backend failure renders an empty result.
func SearchProperties(gw *gateway.Client, backendSearch bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, _, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		spec := search.ParseSpec(r.URL.Query())
		view := SearchView{Spec: spec, Types: models.PropertyTypes}

		var (
			all []models.Property
			err error
		)
		if backendSearch {
			all, err = client.SearchProducts(r.Context(), spec.Query())
		} else {
			all, err = client.ListProducts(r.Context())
		}
		if err != nil {
			log.Printf("Error loading properties for search: %v", err)
			renderView(w, http.StatusOK, models.SearchPage, view, models.Failure("Failed to load properties"))
			return
		}

		view.Results = cardsFor(search.FilterAndSort(all, spec))
		view.Count = len(view.Results)
		view.Total = len(all)
		view.Locations = search.Locations(all)
		view.Amenities = search.Amenities(all)

		renderView(w, http.StatusOK, models.SearchPage, view)
	}
}

func GetPropertyByID(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, _, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		id := mux.Vars(r)["id"]
		p, err := client.GetProduct(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching property %s: %v", id, err)
			renderView(w, failureStatus(err), models.PropertyDetailPage, nil, models.Failure(gateway.Message(err, "Failed to load property")))
			return
		}

		view := DetailView{Property: *p, PriceText: utils.FormatNaira(p.Price)}
		if c := p.Contact(); c != nil {
			view.Contact = c
			view.Initials = utils.Initials(c.Name)
			if c.Phone != "" {
				view.WhatsAppURL = utils.WhatsAppURL(c.Phone, utils.ContactMessage(c.Name, p.Title))
			}
		}
		renderView(w, http.StatusOK, models.PropertyDetailPage, view)
	}
}

// ContactProperty sends the browser to a WhatsApp chat with the listing's
// agent or landlord.
func ContactProperty(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, _, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		id := mux.Vars(r)["id"]
		p, err := client.GetProduct(r.Context(), id)
		if err != nil {
			log.Printf("Error fetching property %s for contact: %v", id, err)
			renderView(w, failureStatus(err), models.PropertyDetailPage, nil, models.Failure(gateway.Message(err, "Failed to load property")))
			return
		}

		c := p.Contact()
		if c == nil || utils.DigitsOnly(c.Phone) == "" {
			log.Printf("Property %s has no contact phone", id)
			renderView(w, http.StatusNotFound, models.PropertyDetailPage, DetailView{Property: *p}, models.Failure("No contact number for this property"))
			return
		}

		http.Redirect(w, r, utils.WhatsAppURL(c.Phone, utils.ContactMessage(c.Name, p.Title)), http.StatusSeeOther)
	}
}
