package controllers

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dcode-github/dormdash/dashboard"
	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/session"
)

const maxUploadBytes = 10 << 20

// listingDashboard is a mounted dashboard that can edit listings.
type listingDashboard interface {
	Mount(ctx context.Context)
	Wait()
	Unmount()
	CreateProperty(ctx context.Context, draft models.ProductDraft) error
	UpdateProperty(ctx context.Context, id string, draft models.ProductDraft) error
	DeleteProperty(ctx context.Context, id string) error
	ToggleAvailability(ctx context.Context, id string) (models.Availability, error)
	Boost(ctx context.Context, id, planID string) error
	Upload(ctx context.Context, productID, filename string, r io.Reader) ([]string, error)
}

// dashboardRole reads {role} from the route and checks it against the
// session. When the session may not see the dashboard the auth view is
// rendered in its place and ok is false.
func dashboardRole(w http.ResponseWriter, r *http.Request) (models.Role, *models.Identity, *session.Session, bool) {
	sess, ok := SessionFrom(r)
	if !ok {
		missingSession(w, r)
		return "", nil, nil, false
	}

	role := models.ParseRole(mux.Vars(r)["role"])
	if role == "" || role == models.Student {
		log.Printf("Unknown dashboard %q", mux.Vars(r)["role"])
		writeJSON(w, http.StatusNotFound, ErrorResponse{Message: "Unknown dashboard"})
		return "", nil, nil, false
	}

	id, allowed := session.Guard(sess.Store, role)
	if !allowed {
		log.Printf("Guard substituted auth view for %s", r.URL.Path)
		renderAuth(w, r, http.StatusOK)
		return "", nil, nil, false
	}
	return role, id, sess, true
}

// snapshotFunc renders a dashboard's current state and pending notices.
type snapshotFunc func() (any, []models.Notice)

func buildDashboard(client *gateway.Client, role models.Role, id *models.Identity, sess *session.Session) (listingDashboard, snapshotFunc) {
	creds := dashboard.WithCredentials(sess.Store.Credentials())
	switch role {
	case models.Landlord:
		d := dashboard.NewLandlord(client, *id, creds)
		return d, func() (any, []models.Notice) {
			s := d.Snapshot()
			return s, s.Notices
		}
	case models.Agent:
		d := dashboard.NewAgent(client, *id, creds)
		return d, func() (any, []models.Notice) {
			s := d.Snapshot()
			return s, s.Notices
		}
	}
	return nil, nil
}

func ShowDashboard(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, id, sess, ok := dashboardRole(w, r)
		if !ok {
			return
		}
		client := gw.WithTokens(sess.Tokens)
		page := session.DashboardFor(role)

		if role == models.Admin {
			admin := dashboard.NewAdmin(client)
			admin.Mount(r.Context())
			admin.Wait()
			admin.Unmount()
			renderView(w, http.StatusOK, page, admin.Snapshot())
			return
		}

		d, snapshot := buildDashboard(client, role, id, sess)
		d.Mount(r.Context())
		d.Wait()
		d.Unmount()
		data, notices := snapshot()
		renderView(w, http.StatusOK, page, data, notices...)
	}
}

// dashboardAction mounts the role's dashboard, runs one mutation against it
// and renders the result.
func dashboardAction(gw *gateway.Client, successStatus int, action func(r *http.Request, d listingDashboard) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, id, sess, ok := dashboardRole(w, r)
		if !ok {
			return
		}
		if role == models.Admin {
			writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Message: "The admin dashboard is read-only"})
			return
		}

		d, snapshot := buildDashboard(gw.WithTokens(sess.Tokens), role, id, sess)
		d.Mount(r.Context())
		d.Wait()
		defer d.Unmount()

		status := successStatus
		if err := action(r, d); err != nil {
			log.Printf("Dashboard action %s %s failed: %v", r.Method, r.URL.Path, err)
			status = failureStatus(err)
		}
		data, notices := snapshot()
		renderView(w, status, session.DashboardFor(role), data, notices...)
	}
}

func CreateListing(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.ProductDraft
		if !decodeBody(w, r, &draft) {
			return
		}
		dashboardAction(gw, http.StatusCreated, func(r *http.Request, d listingDashboard) error {
			return d.CreateProperty(r.Context(), draft)
		})(w, r)
	}
}

func UpdateListing(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var draft models.ProductDraft
		if !decodeBody(w, r, &draft) {
			return
		}
		dashboardAction(gw, http.StatusOK, func(r *http.Request, d listingDashboard) error {
			return d.UpdateProperty(r.Context(), mux.Vars(r)["id"], draft)
		})(w, r)
	}
}

func DeleteListing(gw *gateway.Client) http.HandlerFunc {
	return dashboardAction(gw, http.StatusOK, func(r *http.Request, d listingDashboard) error {
		return d.DeleteProperty(r.Context(), mux.Vars(r)["id"])
	})
}

func ToggleListingAvailability(gw *gateway.Client) http.HandlerFunc {
	return dashboardAction(gw, http.StatusOK, func(r *http.Request, d listingDashboard) error {
		_, err := d.ToggleAvailability(r.Context(), mux.Vars(r)["id"])
		return err
	})
}

type BoostRequest struct {
	PlanID string `json:"planId"`
}

func BoostListing(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body BoostRequest
		if !decodeBody(w, r, &body) {
			return
		}
		dashboardAction(gw, http.StatusOK, func(r *http.Request, d listingDashboard) error {
			return d.Boost(r.Context(), mux.Vars(r)["id"], body.PlanID)
		})(w, r)
	}
}

type UploadResult struct {
	URLs []string `json:"urls"`
}

// UploadListingImage takes a multipart form with field "file" and an
// optional "productId".
func UploadListingImage(gw *gateway.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		role, id, sess, ok := dashboardRole(w, r)
		if !ok {
			return
		}
		if role == models.Admin {
			writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Message: "The admin dashboard is read-only"})
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		file, header, err := r.FormFile("file")
		if err != nil {
			log.Printf("Invalid upload form: %v", err)
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Message: "Missing file"})
			return
		}
		defer file.Close()

		d, snapshot := buildDashboard(gw.WithTokens(sess.Tokens), role, id, sess)
		defer d.Unmount()

		urls, err := d.Upload(r.Context(), r.FormValue("productId"), header.Filename, file)
		_, notices := snapshot()
		if err != nil {
			log.Printf("Upload of %s failed: %v", header.Filename, err)
			renderView(w, failureStatus(err), session.DashboardFor(role), nil, notices...)
			return
		}
		renderView(w, http.StatusOK, session.DashboardFor(role), UploadResult{URLs: urls}, notices...)
	}
}
