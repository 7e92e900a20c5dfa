package routes

import (
	"github.com/gorilla/mux"

	"github.com/dcode-github/dormdash/controllers"
	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/middleware"
	"github.com/dcode-github/dormdash/session"
)

// Options tune how the shell serves its pages.
type Options struct {
	// BackendSearch sends /search queries to the backend search route
	// instead of filtering the full catalog here.
	BackendSearch bool
}

func Routes(router *mux.Router, gw *gateway.Client, registry *session.Registry, opts Options) {
	router.HandleFunc("/health", controllers.Health(gw)).Methods("GET")

	shell := router.NewRoute().Subrouter()
	shell.Use(middleware.Session(registry))

	// Public pages
	shell.HandleFunc("/", controllers.HomePage(gw)).Methods("GET")
	shell.HandleFunc("/search", controllers.SearchProperties(gw, opts.BackendSearch)).Methods("GET")
	shell.HandleFunc("/properties/{id}", controllers.GetPropertyByID(gw)).Methods("GET")
	shell.HandleFunc("/properties/{id}/contact", controllers.ContactProperty(gw)).Methods("GET")
	shell.HandleFunc("/properties/{id}/inquiries", controllers.CreateInquiry(gw)).Methods("POST")
	shell.HandleFunc("/boosting", controllers.BoostingPage(gw)).Methods("GET")

	// Auth routes
	shell.HandleFunc("/auth", controllers.AuthPage()).Methods("GET")
	shell.HandleFunc("/auth/login", controllers.LoginUser(gw, registry)).Methods("POST")
	shell.HandleFunc("/auth/signup", controllers.RegisterUser(gw, registry)).Methods("POST")
	shell.HandleFunc("/auth/role", controllers.SwitchRole()).Methods("POST")
	shell.HandleFunc("/auth/logout", controllers.LogoutUser(gw, registry)).Methods("POST")

	// Signed-in pages
	shell.HandleFunc("/favorites", controllers.GetFavorites(gw)).Methods("GET")
	shell.HandleFunc("/properties/{id}/favorite", controllers.AddFavorite(gw)).Methods("POST")
	shell.HandleFunc("/profile", controllers.GetProfile(gw)).Methods("GET")
	shell.HandleFunc("/profile", controllers.UpdateProfile(gw)).Methods("PUT")

	// Dashboards
	dash := shell.PathPrefix("/dashboard/{role}").Subrouter()
	dash.HandleFunc("", controllers.ShowDashboard(gw)).Methods("GET")
	dash.HandleFunc("/properties", controllers.CreateListing(gw)).Methods("POST")
	dash.HandleFunc("/properties/{id}", controllers.UpdateListing(gw)).Methods("PUT")
	dash.HandleFunc("/properties/{id}", controllers.DeleteListing(gw)).Methods("DELETE")
	dash.HandleFunc("/properties/{id}/availability", controllers.ToggleListingAvailability(gw)).Methods("POST")
	dash.HandleFunc("/properties/{id}/boost", controllers.BoostListing(gw)).Methods("POST")
	dash.HandleFunc("/uploads", controllers.UploadListingImage(gw)).Methods("POST")
}
