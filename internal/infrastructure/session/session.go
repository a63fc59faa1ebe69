// Package session resolves the opaque per-browser identifier that scopes
// every task. It is a tenancy key, not an authenticated identity.
package session

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CookieName    = "session_id"
	DefaultMaxAge = 30 * 24 * time.Hour
)

type ctxKey struct{}

// WithID returns a context carrying the session identifier. Tools read it
// from here; it never travels through model-controlled arguments.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

func FromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKey{}).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func NewID() string {
	return uuid.NewString()
}

type Provider struct {
	secure bool
	maxAge time.Duration
}

func NewProvider(secure bool) *Provider {
	return &Provider{
		secure: secure,
		maxAge: DefaultMaxAge,
	}
}

// FromRequest returns the session carried by the request cookie.
func (p *Provider) FromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil || strings.TrimSpace(c.Value) == "" {
		return "", false
	}
	return c.Value, true
}

// Resolve picks the session for a request: an explicit id wins, then the
// cookie, then a freshly generated one.
func (p *Provider) Resolve(r *http.Request, explicit string) string {
	if id := strings.TrimSpace(explicit); id != "" {
		return id
	}
	if id, ok := p.FromRequest(r); ok {
		return id
	}
	return NewID()
}

func (p *Provider) SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(p.maxAge.Seconds()),
		Expires:  time.Now().Add(p.maxAge),
		HttpOnly: true,
		Secure:   p.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
