package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/dto"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

type SocialHandler struct {
	social   service.SocialService
	listings service.ListingService
	sessions *middleware.SessionManager
}

func NewSocialHandler(social service.SocialService, listings service.ListingService, sessions *middleware.SessionManager) *SocialHandler {
	return &SocialHandler{social: social, listings: listings, sessions: sessions}
}

func (h *SocialHandler) RegisterRoutes(e *echo.Echo) {
	login := h.sessions.RequireLogin()

	e.GET("/user/:handle", h.Profile)
	e.POST("/user/:handle/follow", h.Follow, login)
	e.POST("/wishlist/:listingId", h.ToggleWishlist, login)

	plans := e.Group("/plans", login)
	plans.GET("", h.ListPlans)
	plans.POST("", h.CreatePlan)
	plans.DELETE("/:id", h.DeletePlan)
	plans.POST("/create-and-add/:listingId", h.CreatePlanAndAdd)
	plans.POST("/add/:listingId", h.AddToPlan)
}

func (h *SocialHandler) Profile(c echo.Context) error {
	profile, err := h.social.Profile(c.Request().Context(), c.Param("handle"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			h.sessions.Flash(c, "error", "User not found")
			return redirect(c, "/listings")
		}
		h.sessions.Flash(c, "error", "Cannot load profile")
		return redirect(c, "/listings")
	}

	isFollowing := false
	if current := middleware.CurrentUser(c); current != nil {
		for _, f := range profile.Followers {
			if f.ID == current.ID {
				isFollowing = true
				break
			}
		}
	}

	return render(c, h.sessions, "profile.html", map[string]any{
		"Profile":     profile,
		"IsFollowing": isFollowing,
	})
}

func (h *SocialHandler) Follow(c echo.Context) error {
	user := middleware.CurrentUser(c)
	handle := c.Param("handle")
	// Self-follow and unknown handles are silent no-ops
	_ = h.social.ToggleFollow(c.Request().Context(), user.ID, handle)
	return redirect(c, "/user/"+handle)
}

func (h *SocialHandler) ToggleWishlist(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil {
		return backTo(c, "/listings")
	}

	user := middleware.CurrentUser(c)
	if err := h.social.ToggleWishlist(c.Request().Context(), user.ID, uint(listingID)); err != nil {
		h.sessions.Flash(c, "error", "Could not update wishlist")
	}
	return backTo(c, "/listings")
}

func (h *SocialHandler) ListPlans(c echo.Context) error {
	user := middleware.CurrentUser(c)
	plans, err := h.social.ListPlans(c.Request().Context(), user.ID)
	if err != nil {
		h.sessions.Flash(c, "error", "Failed to load plans")
		return redirect(c, "/listings")
	}
	return render(c, h.sessions, "plans.html", map[string]any{"Plans": plans})
}

func (h *SocialHandler) CreatePlan(c echo.Context) error {
	input, ok := h.bindPlan(c)
	if !ok {
		return backTo(c, "/listings")
	}

	user := middleware.CurrentUser(c)
	if _, err := h.social.CreatePlan(c.Request().Context(), user.ID, input); err != nil {
		h.sessions.Flash(c, "error", "Failed to create plan")
		return backTo(c, "/listings")
	}

	h.sessions.Flash(c, "success", "Plan added!")
	return backTo(c, "/plans")
}

func (h *SocialHandler) CreatePlanAndAdd(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil {
		return redirect(c, "/listings")
	}

	input, ok := h.bindPlan(c)
	if !ok {
		return h.redirectToListing(c, uint(listingID))
	}

	user := middleware.CurrentUser(c)
	if _, err := h.social.CreatePlanWithListing(c.Request().Context(), user.ID, input, uint(listingID)); err != nil {
		h.sessions.Flash(c, "error", "Failed to create plan")
		return h.redirectToListing(c, uint(listingID))
	}

	h.sessions.Flash(c, "success", "Plan created and listing added!")
	return h.redirectToListing(c, uint(listingID))
}

func (h *SocialHandler) AddToPlan(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("listingId"), 10, 64)
	if err != nil {
		return redirect(c, "/listings")
	}

	var req dto.AddToPlanRequest
	if err := c.Bind(&req); err != nil || c.Validate(&req) != nil {
		h.sessions.Flash(c, "error", "Plan not found.")
		return h.redirectToListing(c, uint(listingID))
	}

	if err := h.social.AddListingToPlan(c.Request().Context(), req.PlanID, uint(listingID)); err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			h.sessions.Flash(c, "error", "Plan not found.")
		} else {
			h.sessions.Flash(c, "error", "Failed to update plan")
		}
		return h.redirectToListing(c, uint(listingID))
	}

	h.sessions.Flash(c, "success", "Listing added to your plan!")
	return h.redirectToListing(c, uint(listingID))
}

func (h *SocialHandler) DeletePlan(c echo.Context) error {
	planID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return backTo(c, "/plans")
	}

	user := middleware.CurrentUser(c)
	if err := h.social.DeletePlan(c.Request().Context(), uint(planID), user.ID); err != nil {
		// Ownership failures redirect without a notice, same as missing plans
		return backTo(c, "/plans")
	}

	h.sessions.Flash(c, "success", "Plan deleted.")
	return redirect(c, "/plans")
}

func (h *SocialHandler) bindPlan(c echo.Context) (service.CreatePlanInput, bool) {
	var req dto.CreatePlanRequest
	if err := c.Bind(&req); err != nil {
		h.sessions.Flash(c, "error", "Failed to create plan")
		return service.CreatePlanInput{}, false
	}
	if err := c.Validate(&req); err != nil {
		h.sessions.Flash(c, "error", "A plan title is required")
		return service.CreatePlanInput{}, false
	}

	input := service.CreatePlanInput{Title: req.Title, Notes: req.Notes}
	if t, err := parseDate(req.StartDate); err == nil {
		input.StartDate = &t
	}
	if t, err := parseDate(req.EndDate); err == nil {
		input.EndDate = &t
	}
	return input, true
}

func (h *SocialHandler) redirectToListing(c echo.Context, listingID uint) error {
	if listing, err := h.listings.GetByID(c.Request().Context(), listingID); err == nil {
		return redirect(c, "/listings/"+listing.Slug)
	}
	return redirect(c, "/listings")
}
