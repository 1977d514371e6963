package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"strings"
	"time"
)

// CookieCodec signs session ids so a tampered cookie never reaches the
// session store. The cookie value is "<sid>.<base64url hmac>".
type CookieCodec struct {
	secret []byte
	secure bool // Secure attribute, on in production only
}

func NewCookieCodec(secret string, secure bool) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), secure: secure}
}

func (c *CookieCodec) sign(sid string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(sid))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// Decode extracts and verifies the session id from the request cookie.
// Returns "" for a missing, unsigned, or tampered cookie.
func (c *CookieCodec) Decode(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	sid, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || sid == "" {
		return ""
	}
	if !hmac.Equal([]byte(sig), []byte(c.sign(sid))) {
		return ""
	}
	return sid
}

// Set writes the signed session cookie, http-only, scoped to the session TTL.
func (c *CookieCodec) Set(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid + "." + c.sign(sid),
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

// Clear expires the session cookie.
func (c *CookieCodec) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		MaxAge:   -1,
	})
}
