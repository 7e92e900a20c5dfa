package controllers

import (
	"log"
	"net/http"
	"strings"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/session"
	"github.com/dcode-github/dormdash/utils"
)

type ProfileView struct {
	Identity models.Identity      `json:"identity"`
	Scratch  session.Scratch      `json:"scratch"`
	Stats    *models.ProfileStats `json:"stats,omitempty"`
	Initials string               `json:"initials"`
}

func GetProfile(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}
		id, allowed := session.Guard(sess.Store, "")
		if !allowed {
			renderAuth(w, r, http.StatusOK)
			return
		}

		view := ProfileView{Identity: *id, Scratch: sess.Store.Scratch(), Initials: utils.Initials(id.Name)}
		if creds := sess.Store.Credentials(); creds != nil {
			profile, err := client.GetProfile(r.Context(), *creds)
			if err != nil {
				log.Printf("Error fetching profile stats for %s: %v", id.Email, err)
			} else {
				view.Stats = &profile.Stats
			}
		}
		renderView(w, http.StatusOK, models.ProfilePage, view)
	}
}

// UpdateProfile saves the edited profile and replaces the session identity
// with the result.
func UpdateProfile(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}
		id, allowed := session.Guard(sess.Store, "")
		if !allowed {
			renderAuth(w, r, http.StatusOK)
			return
		}

		var form utils.ProfileForm
		if !decodeBody(w, r, &form) {
			return
		}
		form.Name = strings.TrimSpace(form.Name)
		form.Email = strings.TrimSpace(form.Email)
		if err := utils.ValidateStruct(form); err != nil {
			renderView(w, http.StatusUnprocessableEntity, models.ProfilePage, nil, models.Failure(utils.ValidationMessage(err)))
			return
		}

		profile := models.Profile{
			Fullname: form.Name,
			Email:    form.Email,
			Number:   form.Phone,
			Mode:     string(id.Role),
			Level:    sess.Store.Scratch().Level,
		}
		if _, err := client.UpdateProfile(r.Context(), profile); err != nil {
			log.Printf("Error updating profile for %s: %v", id.Email, err)
			renderView(w, failureStatus(err), models.ProfilePage, nil, models.Failure(gateway.Message(err, "Failed to update profile")))
			return
		}

		updated := *id
		updated.Name = profile.Fullname
		updated.Email = profile.Email
		updated.Phone = profile.Number
		sess.Store.SetIdentity(&updated)

		view := ProfileView{Identity: updated, Scratch: sess.Store.Scratch(), Initials: utils.Initials(updated.Name)}
		renderView(w, http.StatusOK, models.ProfilePage, view, models.Success("Profile updated successfully"))
	}
}
