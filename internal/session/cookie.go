// Package session moves the session token between client and server in an HTTP cookie.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the cookie the web client expects the token in.
const CookieName = "token"

// Transport writes the session cookie with the attribute profile of one deployment
// environment. In production the API and the web client live on different sites, so the
// cookie must be Secure and SameSite=None; locally both share an origin and Strict is used.
type Transport struct {
	production bool
}

func NewTransport(environment string) *Transport {
	return &Transport{production: environment == "production"}
}

// Attach sets the session cookie on the response.
func (t *Transport) Attach(c *gin.Context, token string) {
	http.SetCookie(c.Writer, t.cookie(token))
}

// Clear tells the client to drop the session cookie. The attributes must match the ones
// used by Attach or browsers ignore the deletion.
func (t *Transport) Clear(c *gin.Context) {
	ck := t.cookie("")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0).UTC()
	http.SetCookie(c.Writer, ck)
}

func (t *Transport) cookie(value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   t.production,
		SameSite: http.SameSiteStrictMode,
	}
	if t.production {
		ck.SameSite = http.SameSiteNoneMode
	}
	return ck
}

// Extract returns the session token of the request, if one is present.
func Extract(c *gin.Context) (string, bool) {
	value, err := c.Cookie(CookieName)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}
