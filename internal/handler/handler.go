package handler

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
)

// Validator plugs go-playground/validator into echo's c.Validate.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// render injects the request-scoped user and pending flash notices into
// every view's data map.
func render(c echo.Context, sessions *middleware.SessionManager, name string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	data["CurrentUser"] = middleware.CurrentUser(c)
	data["Flash"] = sessions.PopFlashes(c)
	return c.Render(http.StatusOK, name, data)
}

// backTo redirects to the page the request came from, mirroring the
// original "redirect back" behavior.
func backTo(c echo.Context, fallback string) error {
	if ref := c.Request().Referer(); ref != "" {
		return c.Redirect(http.StatusSeeOther, ref)
	}
	return c.Redirect(http.StatusSeeOther, fallback)
}

func redirect(c echo.Context, to string) error {
	return c.Redirect(http.StatusSeeOther, to)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
