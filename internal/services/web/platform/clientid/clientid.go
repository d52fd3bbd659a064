// Package clientid tags each browser with a long-lived opaque id so auth
// events can be routed to the tab that caused them.
package clientid

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/talenthub/internal/platform/id"
	"github.com/louisbranch/talenthub/internal/platform/requestctx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/httpx"
	"github.com/louisbranch/talenthub/internal/services/web/platform/requestmeta"
)

// CookieName is the browser cookie holding the client id.
const CookieName = "talenthub_client"

const cookieMaxAge = 365 * 24 * time.Hour

// Read returns the client id cookie when it has a valid shape.
func Read(r *http.Request) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if !id.Valid(value) {
		return "", false
	}
	return value, true
}

// Ensure returns the request's client id, issuing a new cookie when the
// browser has none.
func Ensure(w http.ResponseWriter, r *http.Request, policy requestmeta.Policy) string {
	if value, ok := Read(r); ok {
		return value
	}
	value, err := id.NewID()
	if err != nil {
		log.Printf("clientid: generate failed: %v", err)
		return ""
	}
	if w != nil {
		http.SetCookie(w, &http.Cookie{
			Name:     CookieName,
			Value:    value,
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   policy.IsHTTPS(r),
			SameSite: http.SameSiteLaxMode,
		})
	}
	return value
}

// Middleware ensures every request carries a client id in its context.
func Middleware(policy requestmeta.Policy) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		if next == nil {
			next = http.NotFoundHandler()
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r == nil {
				next.ServeHTTP(w, r)
				return
			}
			value := Ensure(w, r, policy)
			if value == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(requestctx.WithClientID(r.Context(), value)))
		})
	}
}
