package controllers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/session"
)

type FavoritesView struct {
	Favorites []models.Favorite `json:"favorites"`
}

func AddFavorite(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}
		if _, allowed := session.Guard(sess.Store, ""); !allowed {
			renderAuth(w, r, http.StatusOK)
			return
		}

		productID := mux.Vars(r)["id"]
		if _, err := client.AddFavorite(r.Context(), productID); err != nil {
			log.Printf("Error adding favorite %s: %v", productID, err)
			renderView(w, failureStatus(err), models.PropertyDetailPage, nil, models.Failure(gateway.Message(err, "Failed to add favorite")))
			return
		}

		renderView(w, http.StatusCreated, models.PropertyDetailPage, models.Favorite{ProductID: productID}, models.Success("Added to favorites"))
	}
}

func GetFavorites(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}
		if _, allowed := session.Guard(sess.Store, ""); !allowed {
			renderAuth(w, r, http.StatusOK)
			return
		}

		favs, err := client.ListFavorites(r.Context())
		if err != nil {
			log.Printf("Error fetching favorites: %v", err)
			renderView(w, http.StatusOK, models.ProfilePage, FavoritesView{}, models.Failure("Failed to load favorites"))
			return
		}
		renderView(w, http.StatusOK, models.ProfilePage, FavoritesView{Favorites: favs})
	}
}
