package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// CookieName is the name of the session cookie.
const CookieName = "sid"

// SessionClaims is the payload of the session cookie. The JWT ID carries the
// server-side session id; nothing else about the user travels in the cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// CookieSigner signs and verifies session cookies.
type CookieSigner struct {
	secret []byte
	secure bool
}

// NewCookieSigner creates a signer with the given HMAC secret.
func NewCookieSigner(secret string, secure bool) *CookieSigner {
	return &CookieSigner{secret: []byte(secret), secure: secure}
}

// Secret returns the HMAC key used for verification.
func (s *CookieSigner) Secret() []byte {
	return s.secret
}

// Sign produces the cookie value for a session id.
func (s *CookieSigner) Sign(sessionID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a cookie value and returns the session id it names.
func (s *CookieSigner) Parse(value string) (string, error) {
	token, err := jwt.ParseWithClaims(value, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || claims.ID == "" {
		return "", errors.New("session id not found")
	}
	return claims.ID, nil
}

// SetCookie writes the signed session cookie on the response.
func (s *CookieSigner) SetCookie(c echo.Context, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
	})
}

// ClearCookie expires the session cookie on the client.
func (s *CookieSigner) ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
