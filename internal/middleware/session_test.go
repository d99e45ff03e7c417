package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type stubSessions struct {
	byToken      map[string]*models.Session
	deleted      []string
	sweptExpired int
}

func (s *stubSessions) Create(ctx context.Context, session *models.Session) error { return nil }
func (s *stubSessions) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	if sess, ok := s.byToken[token]; ok {
		return sess, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubSessions) SetFlash(ctx context.Context, token string, flash datatypes.JSON) error {
	if sess, ok := s.byToken[token]; ok {
		sess.Flash = flash
	}
	return nil
}
func (s *stubSessions) Delete(ctx context.Context, token string) error {
	s.deleted = append(s.deleted, token)
	delete(s.byToken, token)
	return nil
}
func (s *stubSessions) DeleteExpired(ctx context.Context) error {
	s.sweptExpired++
	return nil
}

type stubUsers struct {
	byID map[uint]*models.User
}

func (s *stubUsers) Create(ctx context.Context, user *models.User) error { return nil }
func (s *stubUsers) FindByID(ctx context.Context, id uint) (*models.User, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) FindByHandle(ctx context.Context, handle string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) FindProfileByHandle(ctx context.Context, handle string) (*models.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubUsers) HandleExists(ctx context.Context, handle string) (bool, error) { return false, nil }
func (s *stubUsers) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return false, nil
}
func (s *stubUsers) AddFollow(ctx context.Context, followerID, followeeID uint) error    { return nil }
func (s *stubUsers) RemoveFollow(ctx context.Context, followerID, followeeID uint) error { return nil }
func (s *stubUsers) InWishlist(ctx context.Context, userID, listingID uint) (bool, error) {
	return false, nil
}
func (s *stubUsers) AddToWishlist(ctx context.Context, userID, listingID uint) error      { return nil }
func (s *stubUsers) RemoveFromWishlist(ctx context.Context, userID, listingID uint) error { return nil }
func (s *stubUsers) GetDB() *gorm.DB                                                      { return nil }

func resolveRequest(t *testing.T, m *SessionManager, cookie *http.Cookie) (echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := m.Resolve()(func(c echo.Context) error { return nil })
	return c, handler(c)
}

func TestResolve_ValidCookieSetsUserAndSession(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*models.Session{
		"tok-1": {Token: "tok-1", UserID: 3, ExpiresAt: time.Now().Add(time.Hour)},
	}}
	users := &stubUsers{byID: map[uint]*models.User{3: {ID: 3, Username: "jane"}}}
	m := NewSessionManager("wanderlust_session", sessions, users)

	c, err := resolveRequest(t, m, &http.Cookie{Name: "wanderlust_session", Value: "tok-1"})

	assert.NoError(t, err)
	assert.Equal(t, "jane", CurrentUser(c).Username)
	assert.Equal(t, "tok-1", CurrentSession(c).Token)
}

func TestResolve_ExpiredSessionIsDeleted(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*models.Session{
		"tok-old": {Token: "tok-old", UserID: 3, ExpiresAt: time.Now().Add(-time.Minute)},
	}}
	m := NewSessionManager("wanderlust_session", sessions, &stubUsers{})

	c, err := resolveRequest(t, m, &http.Cookie{Name: "wanderlust_session", Value: "tok-old"})

	assert.NoError(t, err)
	assert.Nil(t, CurrentUser(c))
	assert.Equal(t, []string{"tok-old"}, sessions.deleted)
}

func TestResolve_NoCookiePassesThrough(t *testing.T) {
	m := NewSessionManager("wanderlust_session", &stubSessions{}, &stubUsers{})

	c, err := resolveRequest(t, m, nil)

	assert.NoError(t, err)
	assert.Nil(t, CurrentUser(c))
	assert.Nil(t, CurrentSession(c))
}

func TestRequireLogin_RedirectsAnonymous(t *testing.T) {
	m := NewSessionManager("wanderlust_session", &stubSessions{}, &stubUsers{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var reached bool
	handler := m.RequireLogin()(func(c echo.Context) error {
		reached = true
		return nil
	})

	assert.NoError(t, handler(c))
	assert.False(t, reached)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/listings/login", rec.Header().Get(echo.HeaderLocation))
}

func TestFlash_SurvivesOnePopExactly(t *testing.T) {
	session := &models.Session{Token: "tok-1", UserID: 3, ExpiresAt: time.Now().Add(time.Hour)}
	sessions := &stubSessions{byToken: map[string]*models.Session{"tok-1": session}}
	m := NewSessionManager("wanderlust_session", sessions, &stubUsers{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(ctxSessionKey, session)

	m.Flash(c, "success", "Booking confirmed!")
	m.Flash(c, "error", "Something else")

	flashes := m.PopFlashes(c)
	assert.Equal(t, []string{"Booking confirmed!"}, flashes["success"])
	assert.Equal(t, []string{"Something else"}, flashes["error"])

	assert.Empty(t, m.PopFlashes(c))
}

func TestFlash_AnonymousIsNoOp(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*models.Session{}}
	m := NewSessionManager("wanderlust_session", sessions, &stubUsers{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/listings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	m.Flash(c, "error", "dropped")
	assert.Empty(t, m.PopFlashes(c))
}

func TestSweep_DeletesExpiredSessions(t *testing.T) {
	sessions := &stubSessions{byToken: map[string]*models.Session{}}
	m := NewSessionManager("wanderlust_session", sessions, &stubUsers{})

	assert.NoError(t, m.Sweep(context.Background()))
	assert.Equal(t, 1, sessions.sweptExpired)
}
