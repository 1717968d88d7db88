package middleware

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

const (
	// csrfTokenLength is the byte length of CSRF tokens (32 bytes = 64 hex chars).
	csrfTokenLength = 32

	// CSRFCookieName is the cookie that holds the CSRF token.
	CSRFCookieName = "rt_csrf"

	// CSRFHeaderName is the header HTMX requests may carry the token in.
	CSRFHeaderName = "X-CSRF-Token"

	// CSRFFormField is the hidden form field rendered into every lead form.
	CSRFFormField = "csrf_token"
)

type csrfCtxKey struct{}

// NewCSRF returns double-submit cookie CSRF protection. It makes sure every
// visitor has a token cookie, exposes the token through the request context
// so pages can embed it in their forms, and rejects state-changing requests
// (POST, PUT, PATCH, DELETE) whose header or form token differs from the
// cookie. secure sets the cookie's Secure flag.
func NewCSRF(secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Ensure a CSRF token cookie exists.
			token := ""
			if cookie, err := r.Cookie(CSRFCookieName); err == nil && cookie.Value != "" {
				token = cookie.Value
			} else {
				token, err = generateCSRFToken()
				if err != nil {
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CSRFCookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteStrictMode,
				})
			}

			r = r.WithContext(context.WithValue(r.Context(), csrfCtxKey{}, token))

			// Safe methods don't need CSRF validation.
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// Check header first (HTMX), then form field. A body that cannot
			// be parsed (malformed or over the size limit) is a bad request.
			submitted := r.Header.Get(CSRFHeaderName)
			if submitted == "" {
				if err := r.ParseForm(); err != nil {
					http.Error(w, "Bad Request", http.StatusBadRequest)
					return
				}
				submitted = r.FormValue(CSRFFormField)
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				http.Error(w, "CSRF token mismatch", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFTokenFromCtx returns the token stored by NewCSRF, or "" when the
// middleware did not run.
func CSRFTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(csrfCtxKey{}).(string)
	return token
}

// GetCSRFToken returns the request's CSRF token, preferring the context
// value (which covers a visitor's first request) over the cookie.
func GetCSRFToken(r *http.Request) string {
	if token := CSRFTokenFromCtx(r.Context()); token != "" {
		return token
	}
	cookie, err := r.Cookie(CSRFCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// generateCSRFToken creates a cryptographically random token.
func generateCSRFToken() (string, error) {
	b := make([]byte, csrfTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
