package controllers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dcode-github/dormdash/gateway"
	"github.com/dcode-github/dormdash/models"
	"github.com/dcode-github/dormdash/session"
	"github.com/dcode-github/dormdash/utils"
)

type RoleSwitch struct {
	Role string `json:"role"`
}

func AuthPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderAuth(w, r, http.StatusOK)
	}
}

// identityFor builds the session identity from the backend profile. The
// token's user id is used when the token carries one.
func identityFor(profile *models.Profile, email, token string) *models.Identity {
	id := profile.Identity()
	if id.Email == "" {
		id.Email = email
	}
	id.ID = id.Email
	if claims, err := utils.TokenClaims(token); err == nil && claims.UserID != "" {
		id.ID = claims.UserID
	}
	id.RegistrationDate = time.Now().Format("2006-01-02")
	return id
}

// LoginUser signs the session in. A successful login always moves the
// session to a fresh ID.
func LoginUser(gw *gateway.Client, registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		var form utils.LoginForm
		if !decodeBody(w, r, &form) {
			return
		}
		form.Email = strings.TrimSpace(form.Email)
		if err := utils.ValidateStruct(form); err != nil {
			renderAuth(w, r, http.StatusUnprocessableEntity, models.Failure(utils.ValidationMessage(err)))
			return
		}

		creds := gateway.Credentials{Email: form.Email, Password: form.Password}
		res, err := client.Login(r.Context(), creds)
		if err != nil {
			log.Printf("Login failed for %s: %v", form.Email, err)
			status := http.StatusBadGateway
			if gateway.IsHTTPError(err) {
				status = http.StatusUnauthorized
			}
			renderAuth(w, r, status, models.Failure(gateway.Message(err, "Invalid login credentials")))
			return
		}

		profile, err := client.GetProfile(r.Context(), creds)
		if err != nil {
			log.Printf("Error fetching profile for %s: %v", form.Email, err)
			if clearErr := client.Logout(r.Context()); clearErr != nil {
				log.Printf("Error clearing token after failed profile fetch: %v", clearErr)
			}
			renderAuth(w, r, failureStatus(err), models.Failure("Failed to fetch profile"))
			return
		}

		fresh, err := registry.Establish(r.Context(), sess)
		if err != nil {
			log.Printf("Error establishing session for %s: %v", form.Email, err)
			renderAuth(w, r, http.StatusBadGateway, models.Failure("Failed to start session"))
			return
		}
		session.SetCookie(w, fresh.ID)

		id := identityFor(profile, form.Email, res.Token)
		fresh.Store.SetIdentity(id)
		fresh.Store.SetCredentials(creds)
		log.Printf("User %s logged in as %q", id.Email, id.Role)

		redirect(w, r, session.DashboardFor(id.Role))
	}
}

// RegisterUser creates the backend account and its profile, then signs the
// session in with the new identity.
func RegisterUser(gw *gateway.Client, registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}

		var form utils.SignupForm
		if !decodeBody(w, r, &form) {
			return
		}
		form.Email = strings.TrimSpace(form.Email)
		form.Role = strings.ToLower(strings.TrimSpace(form.Role))
		if err := utils.ValidateStruct(form); err != nil {
			renderAuth(w, r, http.StatusUnprocessableEntity, models.Failure(utils.ValidationMessage(err)))
			return
		}

		creds := gateway.Credentials{Email: form.Email, Password: form.Password}
		if _, err := client.Signup(r.Context(), creds); err != nil {
			log.Printf("Signup failed for %s: %v", form.Email, err)
			renderAuth(w, r, failureStatus(err), models.Failure(gateway.Message(err, "Signup failed")))
			return
		}

		profile := models.Profile{
			Fullname: form.Name,
			Email:    form.Email,
			Number:   form.Phone,
			Mode:     form.Role,
			Password: form.Password,
			Level:    "new",
		}
		if _, err := client.CreateProfile(r.Context(), profile); err != nil {
			log.Printf("Profile creation failed for %s: %v", form.Email, err)
			renderAuth(w, r, failureStatus(err), models.Failure(gateway.Message(err, "Could not create profile")))
			return
		}

		id := &models.Identity{
			ID:               form.Email,
			Name:             form.Name,
			Email:            form.Email,
			Phone:            form.Phone,
			Role:             models.ParseRole(form.Role),
			Verified:         true,
			RegistrationDate: time.Now().Format("2006-01-02"),
		}
		fresh, err := registry.Establish(r.Context(), sess)
		if err != nil {
			log.Printf("Error establishing session for %s: %v", form.Email, err)
			renderAuth(w, r, http.StatusBadGateway, models.Failure("Failed to start session"))
			return
		}
		session.SetCookie(w, fresh.ID)

		fresh.Store.SetIdentity(id)
		fresh.Store.UpdateScratch(func(sc *session.Scratch) { sc.Level = profile.Level })
		fresh.Store.SetCredentials(creds)
		log.Printf("User %s registered as %q", id.Email, id.Role)

		redirect(w, r, session.DashboardFor(id.Role))
	}
}

// SwitchRole changes the role of the signed-in identity and lands on that
// role's dashboard.
func SwitchRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r)
		if !ok {
			missingSession(w, r)
			return
		}

		id := sess.Store.Identity()
		if id == nil {
			renderAuth(w, r, http.StatusOK)
			return
		}

		var body RoleSwitch
		if !decodeBody(w, r, &body) {
			return
		}
		role := models.ParseRole(body.Role)
		if role == "" {
			log.Printf("Rejected role switch to %q for %s", body.Role, id.Email)
			writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{Message: "Unknown role"})
			return
		}

		id.Role = role
		sess.Store.SetIdentity(id)
		redirect(w, r, session.DashboardFor(role))
	}
}

func LogoutUser(gw *gateway.Client, registry *session.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		client, sess, ok := backendFor(gw, r)
		if !ok {
			missingSession(w, r)
			return
		}
		if err := client.Logout(r.Context()); err != nil {
			log.Printf("Error clearing token on logout: %v", err)
		}
		sess.Store.SetIdentity(nil)
		if !sess.Anonymous() {
			registry.Drop(sess.ID)
			session.ExpireCookie(w)
		}
		redirect(w, r, models.HomePage)
	}
}
