package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	domainerrors "beacon/internal/domain/errors"
	"beacon/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

// refreshPath is the token-exchange endpoint. The call is anonymous: it
// authenticates with the refresh token in the body, never with a bearer
// header, so it can never recurse into the refresh machinery itself.
const refreshPath = "token/refresh/"

type refreshRequest struct {
	Refresh string `json:"refresh"`
}

type refreshResponse struct {
	Access string `json:"access"`
}

// refresh exchanges the held refresh token for a new access token. All
// concurrent callers share one in-flight exchange through the singleflight
// group: the first authorization failure starts it, later failures subscribe
// to it, and every waiter settles together when it does. That is the
// at-most-one-refresh guarantee.
//
// On success the new token is written back to the token source before any
// waiter resumes, so every replay sees it. On failure (or when no refresh
// token is held) the session is force-cleared, the auth-failure hook fires,
// and ErrSessionExpired / ErrNoRefreshToken propagates to every waiter.
func (c *Client) refresh(ctx context.Context) (string, error) {
	token, err, shared := c.refreshGroup.Do("refresh", func() (any, error) {
		refreshToken := c.tokens.RefreshToken()
		if refreshToken == "" {
			c.failAuth()

			return "", errors.WithStack(domainerrors.ErrNoRefreshToken)
		}

		var out refreshResponse
		payload, err := jsonPayload(refreshRequest{Refresh: refreshToken})
		if err != nil {
			return "", err
		}
		if err := c.send(ctx, http.MethodPost, refreshPath, payload, &out, requestOptions{public: true}); err != nil {
			c.logger.Warn("Token refresh failed, clearing session", slog.Any("error", err))
			c.failAuth()

			return "", errors.Wrap(domainerrors.ErrSessionExpired, err.Error())
		}

		c.tokens.SetAccessToken(out.Access)
		c.logger.Debug("Access token refreshed")

		return out.Access, nil
	})
	if err != nil {
		return "", err
	}
	if shared {
		c.logger.Debug("Joined in-flight token refresh")
	}

	return token.(string), nil
}

// refreshAhead proactively renews the access token when its exp claim is
// inside the configured leeway, so in-flight work rarely has to absorb a
// 401 round trip at all. Best-effort: an opaque token or a failed renewal
// falls through to the reactive path.
func (c *Client) refreshAhead(ctx context.Context) {
	token := c.tokens.AccessToken()
	if token == "" || c.tokens.RefreshToken() == "" {
		return
	}
	if c.refreshLeeway == nil || !c.refreshLeeway(token) {
		return
	}

	if _, err := c.refresh(ctx); err != nil {
		c.logger.Debug("Proactive token refresh failed", slog.Any("error", err))
	}
}

// failAuth clears the session and routes the client to the login entry
// point. The requesting component may already be unmounted, which is why
// this surfaces as a global side effect rather than through the envelope.
func (c *Client) failAuth() {
	c.tokens.Clear()
	if fn := c.onAuthFailure.Load(); fn != nil {
		(*fn)()
	}
}

// expiresWithin builds a predicate reporting whether a JWT access token
// expires within the leeway. The claim is parsed unverified: the client has
// no signing key and only needs the timestamp, the server remains the
// authority on validity.
func expiresWithin(leeway time.Duration) leewayFunc {
	parser := jwt.NewParser()

	return func(accessToken string) bool {
		claims := jwt.RegisteredClaims{}
		if _, _, err := parser.ParseUnverified(accessToken, &claims); err != nil {
			return false
		}
		if claims.ExpiresAt == nil {
			return false
		}

		return time.Until(claims.ExpiresAt.Time) < leeway
	}
}
