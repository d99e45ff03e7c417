package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ctxSessionKey = "session"
	ctxUserKey    = "currentUser"

	cookieMaxAge = 24 * time.Hour
)

// SessionManager resolves the session cookie into a request-scoped session
// and current user. Nothing about the request's identity lives in global
// state; handlers read it from the echo context.
type SessionManager struct {
	CookieName string
	sessions   repository.SessionRepository
	users      repository.UserRepository
}

func NewSessionManager(cookieName string, sessions repository.SessionRepository, users repository.UserRepository) *SessionManager {
	return &SessionManager{CookieName: cookieName, sessions: sessions, users: users}
}

// Resolve loads session + user once per request. Missing or expired
// sessions leave both unset; routes that need a user gate on RequireLogin.
func (m *SessionManager) Resolve() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(m.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			ctx := c.Request().Context()
			session, err := m.sessions.FindByToken(ctx, cookie.Value)
			if err != nil {
				if !errors.Is(err, gorm.ErrRecordNotFound) {
					return err
				}
				return next(c)
			}
			if session.Expired() {
				_ = m.sessions.Delete(ctx, session.Token)
				return next(c)
			}

			user, err := m.users.FindByID(ctx, session.UserID)
			if err != nil {
				return next(c)
			}

			c.Set(ctxSessionKey, session)
			c.Set(ctxUserKey, user)
			return next(c)
		}
	}
}

// RequireLogin redirects anonymous requests to the login page with a
// flash notice.
func (m *SessionManager) RequireLogin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if CurrentUser(c) == nil {
				m.Flash(c, "error", "You must be logged in first.")
				return c.Redirect(http.StatusSeeOther, "/listings/login")
			}
			return next(c)
		}
	}
}

// Issue sets the session cookie: HTTP-only, 24 hour expiry, whole site.
func (m *SessionManager) Issue(c echo.Context, session *models.Session) {
	c.SetCookie(&http.Cookie{
		Name:     m.CookieName,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		MaxAge:   int(cookieMaxAge.Seconds()),
	})
	c.Set(ctxSessionKey, session)
}

func (m *SessionManager) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     m.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	c.Set(ctxSessionKey, nil)
	c.Set(ctxUserKey, nil)
}

// Flash queues a transient notice on the session; it survives exactly one
// redirect and is consumed by PopFlashes on the next render. Anonymous
// requests have no session to carry a flash, so the call is a no-op.
func (m *SessionManager) Flash(c echo.Context, kind, message string) {
	session := CurrentSession(c)
	if session == nil {
		return
	}

	flashes := decodeFlashes(session.Flash)
	flashes[kind] = append(flashes[kind], message)

	raw, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	session.Flash = datatypes.JSON(raw)
	_ = m.sessions.SetFlash(c.Request().Context(), session.Token, session.Flash)
}

// PopFlashes drains pending notices for rendering.
func (m *SessionManager) PopFlashes(c echo.Context) map[string][]string {
	session := CurrentSession(c)
	if session == nil {
		return map[string][]string{}
	}

	flashes := decodeFlashes(session.Flash)
	if len(flashes) > 0 {
		session.Flash = nil
		_ = m.sessions.SetFlash(c.Request().Context(), session.Token, nil)
	}
	return flashes
}

func decodeFlashes(raw datatypes.JSON) map[string][]string {
	flashes := map[string][]string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &flashes)
	}
	return flashes
}

// Sweep removes expired session rows. Expired sessions are already
// rejected per request by Resolve; the sweep keeps the table from
// growing without bound.
func (m *SessionManager) Sweep(ctx context.Context) error {
	return m.sessions.DeleteExpired(ctx)
}

// SetCurrentUser force-sets the request's user, used right after login
// and registration before the next request re-resolves the cookie.
func SetCurrentUser(c echo.Context, u *models.User) {
	c.Set(ctxUserKey, u)
}

func CurrentSession(c echo.Context) *models.Session {
	if s, ok := c.Get(ctxSessionKey).(*models.Session); ok {
		return s
	}
	return nil
}

func CurrentUser(c echo.Context) *models.User {
	if u, ok := c.Get(ctxUserKey).(*models.User); ok {
		return u
	}
	return nil
}
