package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/dcode-github/dormdash/dashboard"
	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/session"
)

type ContextKey string

const SessionKey = ContextKey("session")

// SessionFrom returns the session the middleware attached to r.
func SessionFrom(r *http.Request) (*session.Session, bool) {
	s, ok := r.Context().Value(SessionKey).(*session.Session)
	return s, ok
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func renderView(w http.ResponseWriter, status int, page models.Page, data any, notices ...models.Notice) {
	writeJSON(w, status, models.View{Page: page, Data: data, Notices: notices})
}

// AuthView is what the auth page shows: the scratch fields pre-fill the
// form.
type AuthView struct {
	Scratch session.Scratch `json:"scratch"`
	Next    string          `json:"next,omitempty"`
}

// renderAuth substitutes the auth view for a page the session may not see.
// The status stays 200; the browser's URL is left as it was.
func renderAuth(w http.ResponseWriter, r *http.Request, status int, notices ...models.Notice) {
	data := AuthView{Next: r.URL.Path}
	if sess, ok := SessionFrom(r); ok {
		data.Scratch = sess.Store.Scratch()
	}
	renderView(w, status, models.AuthPage, data, notices...)
}

func redirect(w http.ResponseWriter, r *http.Request, page models.Page) {
	http.Redirect(w, r, page.Path(), http.StatusSeeOther)
}

// failureStatus maps a flow error onto the status the shell answers with.
// Backend client errors pass through; anything else from the backend is a
// bad gateway.
func failureStatus(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrInvalidListing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, dashboard.ErrUnknownProperty):
		return http.StatusNotFound
	}
	if code := gateway.StatusCode(err); code >= 400 && code < 500 {
		return code
	}
	return http.StatusBadGateway
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Printf("Invalid request body for %s %s: %v", r.Method, r.URL.Path, err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Invalid request body"})
		return false
	}
	return true
}

// backendFor scopes the shared gateway client to the session's token.
func backendFor(gw *gateway.Client, r *http.Request) (*gateway.Client, *session.Session, bool) {
	sess, ok := SessionFrom(r)
	if !ok {
		return nil, nil, false
	}
	return gw.WithTokens(sess.Tokens), sess, true
}

func missingSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("Session missing in context for %s %s", r.Method, r.URL.Path)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "Session missing"})
}
