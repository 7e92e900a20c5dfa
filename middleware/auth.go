package middleware

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/dcode-github/dormdash/controllers"
	"github.com/dcode-github/dormdash/session"
	"github.com/dcode-github/dormdash/utils"
)

// Session resolves the browser's session from its cookie and attaches it to
// the request context. Requests without a registered session get an
// anonymous one and a stale cookie is expired. A persisted token whose exp
// has passed logs the session out first.
func Session(registry *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(session.CookieName); err == nil {
				id = c.Value
			}

			sess, registered, err := registry.Resolve(r.Context(), id)
			if err != nil {
				log.Printf("Error resolving session: %v", err)
			}
			if id != "" && !registered {
				session.ExpireCookie(w)
			}

			if registered && expireStaleToken(r.Context(), sess) {
				registry.Drop(sess.ID)
				session.ExpireCookie(w)
			}

			ctx := context.WithValue(r.Context(), controllers.SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// expireStaleToken reports whether it logged the session out.
func expireStaleToken(ctx context.Context, sess *session.Session) bool {
	token, ok, err := sess.Tokens.Token(ctx)
	if err != nil {
		log.Printf("Error reading token for session %s: %v", sess.ID, err)
		return false
	}
	if !ok || !utils.TokenExpired(token, time.Now()) {
		return false
	}

	log.Printf("Token expired for session %s, logging out", sess.ID)
	if err := sess.Tokens.ClearToken(ctx); err != nil {
		log.Printf("Error clearing expired token for session %s: %v", sess.ID, err)
	}
	sess.Store.SetIdentity(nil)
	return true
}
