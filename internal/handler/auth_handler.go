package handler

import (
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/dto"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

type AuthHandler struct {
	auth     service.AuthService
	sessions *middleware.SessionManager
}

func NewAuthHandler(auth service.AuthService, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/listings/register", h.ShowRegister)
	e.POST("/listings/register", h.Register)
	e.GET("/listings/login", h.ShowLogin)
	e.POST("/listings/login", h.Login)
	e.POST("/logout", h.Logout)
}

func (h *AuthHandler) ShowRegister(c echo.Context) error {
	return render(c, h.sessions, "register.html", nil)
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return render(c, h.sessions, "register.html", map[string]any{"Error": "Registration failed"})
	}
	if err := c.Validate(&req); err != nil {
		return render(c, h.sessions, "register.html", map[string]any{"Error": "All fields are required; passwords need at least 6 characters"})
	}

	user, session, err := h.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			return render(c, h.sessions, "register.html", map[string]any{"Error": "Email already in use"})
		}
		return render(c, h.sessions, "register.html", map[string]any{"Error": "Registration failed"})
	}

	h.sessions.Issue(c, session)
	middleware.SetCurrentUser(c, user)
	h.sessions.Flash(c, "success", "Welcome to WanderLust!")
	return redirect(c, "/listings")
}

func (h *AuthHandler) ShowLogin(c echo.Context) error {
	data := map[string]any{}
	if c.QueryParam("loggedOut") != "" {
		data["Success"] = "Logged out successfully!"
	}
	return render(c, h.sessions, "login.html", data)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return render(c, h.sessions, "login.html", map[string]any{"Error": "Login failed"})
	}
	if err := c.Validate(&req); err != nil {
		return render(c, h.sessions, "login.html", map[string]any{"Error": "Username and password are required"})
	}

	user, session, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return render(c, h.sessions, "login.html", map[string]any{"Error": "User not found"})
		case errors.Is(err, service.ErrInvalidCredentials):
			return render(c, h.sessions, "login.html", map[string]any{"Error": "Invalid credentials"})
		default:
			return render(c, h.sessions, "login.html", map[string]any{"Error": "Login failed"})
		}
	}

	h.sessions.Issue(c, session)
	middleware.SetCurrentUser(c, user)
	h.sessions.Flash(c, "success", "Welcome back!")
	return redirect(c, "/listings")
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if session := middleware.CurrentSession(c); session != nil {
		_ = h.auth.Logout(c.Request().Context(), session.Token)
	}
	h.sessions.Clear(c)
	return redirect(c, "/listings/login?loggedOut=true")
}
