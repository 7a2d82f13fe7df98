package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	apperrors "supanos/internal/errors"
	"supanos/internal/model"
)

const tokenContextKey = "session_token"

// UserLookup resolves the account a session belongs to.
type UserLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Sessions resolves the session cookie into an Identity on the request
// context. Requests without a valid cookie or live session continue
// anonymously; the guards below decide whether that is acceptable.
//
// The account is re-read on every request: sessions of deleted or
// deactivated users are destroyed, and the identity carries the user's
// current role rather than the one recorded at login.
func Sessions(signer *CookieSigner, store Store, users UserLookup) []echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		SigningKey:    signer.Secret(),
		SigningMethod: echojwt.AlgorithmHS256,
		TokenLookup:   "cookie:" + CookieName,
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(SessionClaims)
		},
		ErrorHandler: func(echo.Context, error) error {
			return nil
		},
		ContinueOnIgnoredError: true,
	})

	load := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(tokenContextKey).(*jwt.Token)
			if !ok {
				return next(c)
			}
			claims, ok := token.Claims.(*SessionClaims)
			if !ok || claims.ID == "" {
				return next(c)
			}

			req := c.Request()
			data, err := store.Get(req.Context(), claims.ID)
			if err != nil {
				if !errors.Is(err, apperrors.ErrNotFound) {
					log.Warn().Err(err).Msg("session lookup failed")
				}
				return next(c)
			}

			user, err := users.FindByID(req.Context(), data.UserID)
			switch {
			case errors.Is(err, apperrors.ErrNotFound), err == nil && !user.IsActive:
				if err := store.Destroy(req.Context(), claims.ID); err != nil {
					log.Warn().Err(err).Msg("revoke session failed")
				}
				return next(c)
			case err != nil:
				log.Warn().Err(err).Str("user_id", data.UserID.String()).Msg("session user lookup failed")
				return next(c)
			}

			ctx := WithIdentity(req.Context(), Identity{
				UserID:    user.ID,
				Role:      user.Role,
				SessionID: claims.ID,
			})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}

	return []echo.MiddlewareFunc{parse, load}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c.Request().Context()); !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
			}
			return next(c)
		}
	}
}

// RequireRole rejects anonymous requests with 401 and requests whose role is
// not among roles with 403.
func RequireRole(roles ...model.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, ok := IdentityFrom(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrUnauthenticated.Error())
			}
			for _, r := range roles {
				if id.Role == r {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrForbidden.Error())
		}
	}
}
