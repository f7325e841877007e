package config

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	authCookie = "auth"
	signCookie = "sign"
)

// Cookies carries session tokens split in two: header.payload in a cookie
// scripts can read and the signature in an HttpOnly one. Both are scoped to
// the session's path.
type Cookies struct {
	Domain   string
	Secure   bool
	SameSite http.SameSite
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToUpper(s) {
	case "DEFAULT":
		return http.SameSiteDefaultMode
	case "LAX":
		return http.SameSiteLaxMode
	case "NONE":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteStrictMode
	}
}

func NewCookies(c CookiesConfig) *Cookies {
	return &Cookies{
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: parseSameSite(c.SameSite),
	}
}

func (c *Cookies) Set(w http.ResponseWriter, path string, token string, expires time.Time) error {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return fmt.Errorf("malformed JWT token generated")
	}
	header, payload, signature := parts[0], parts[1], parts[2]
	http.SetCookie(w, &http.Cookie{
		Name:     authCookie,
		Path:     path,
		Value:    header + "." + payload,
		Expires:  expires,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     signCookie,
		Path:     path,
		Value:    signature,
		Expires:  expires,
		HttpOnly: true,
		Domain:   c.Domain,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
	return nil
}

func (c *Cookies) Clear(w http.ResponseWriter, path string) {
	for _, name := range []string{authCookie, signCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Path:     path,
			Value:    "delete",
			MaxAge:   -1,
			HttpOnly: name == signCookie,
			Domain:   c.Domain,
			Secure:   c.Secure,
			SameSite: c.SameSite,
		})
	}
}

// Token extracts the session token from the Authorization header or, failing
// that, from the cookie pair.
func (c *Cookies) Token(r *http.Request) (string, error) {
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(bearer), nil
	}
	auth, err := r.Cookie(authCookie)
	if err != nil {
		return "", err
	}
	sign, err := r.Cookie(signCookie)
	if err != nil {
		return "", err
	}
	return auth.Value + "." + sign.Value, nil
}
