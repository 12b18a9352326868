package httpapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tanvirrahman/matrimony/internal/common"
	"github.com/tanvirrahman/matrimony/internal/server/auth"
)

const sessionCookieName = "token"

const identityKey = "identity"

func (s *Server) identityFromCookie(c echo.Context) (*auth.Identity, error) {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil {
		return nil, common.ErrUnauthenticated
	}
	identity, err := auth.IdentityFromToken(cookie.Value, []byte(s.config.SecretKey))
	if err != nil {
		return nil, common.ErrUnauthenticated
	}
	return identity, nil
}

// requireAuth rejects requests without a valid session cookie.
func (s *Server) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, err := s.identityFromCookie(c)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(identityKey, identity)
		return next(c)
	}
}

// optionalAuth attaches the identity when a valid cookie is present but lets
// anonymous requests through. Public reads use this so the visibility gate
// can still recognize an authenticated viewer.
func (s *Server) optionalAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if identity, err := s.identityFromCookie(c); err == nil {
			c.Set(identityKey, identity)
		}
		return next(c)
	}
}

func identityFrom(c echo.Context) *auth.Identity {
	if identity, ok := c.Get(identityKey).(*auth.Identity); ok {
		return identity
	}
	return nil
}

// viewerEmail returns the authenticated email or "" for anonymous requests.
func viewerEmail(c echo.Context) string {
	if identity := identityFrom(c); identity != nil {
		return identity.Email
	}
	return ""
}

func (s *Server) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.config.TokenValidityDuration / time.Second),
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.config.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}
