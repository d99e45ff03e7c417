package handler

import (
	"errors"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/dto"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
	"github.com/wanderlust-app/wanderlust/internal/models"
	"github.com/wanderlust-app/wanderlust/internal/repository"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

type ListingHandler struct {
	listings service.ListingService
	social   service.SocialService
	chat     service.ChatService
	sessions *middleware.SessionManager
}

func NewListingHandler(listings service.ListingService, social service.SocialService, chat service.ChatService, sessions *middleware.SessionManager) *ListingHandler {
	return &ListingHandler{listings: listings, social: social, chat: chat, sessions: sessions}
}

func (h *ListingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/listings", h.Index)
	e.GET("/listings/new", h.New, h.sessions.RequireLogin())
	e.POST("/listings", h.Create, h.sessions.RequireLogin())
	e.GET("/listings/:slug", h.Show)
}

func (h *ListingHandler) Index(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	filter := repository.ListingFilter{
		Category: c.QueryParam("category"),
		Location: c.QueryParam("location"),
	}

	result, err := h.listings.List(c.Request().Context(), filter, page)
	if err != nil {
		h.sessions.Flash(c, "error", "Failed to fetch listings")
		return redirect(c, "/listings")
	}

	// Page links re-apply the active filters
	q := url.Values{}
	if filter.Category != "" {
		q.Set("category", filter.Category)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}
	if tax := c.QueryParam("tax"); tax != "" {
		q.Set("tax", tax)
	}

	pages := make([]int, result.TotalPages)
	for i := range pages {
		pages[i] = i + 1
	}

	return render(c, h.sessions, "listings.html", map[string]any{
		"Listings":    result.Items,
		"CurrentPage": result.Page,
		"TotalPages":  result.TotalPages,
		"Pages":       pages,
		"QueryString": q.Encode(),
		"ShowTax":     c.QueryParam("tax") != "",
	})
}

func (h *ListingHandler) New(c echo.Context) error {
	return render(c, h.sessions, "listing_new.html", nil)
}

func (h *ListingHandler) Create(c echo.Context) error {
	var req dto.CreateListingRequest
	if err := c.Bind(&req); err != nil {
		h.sessions.Flash(c, "error", "Failed to create listing")
		return redirect(c, "/listings/new")
	}
	if err := c.Validate(&req); err != nil {
		h.sessions.Flash(c, "error", "A title and a non-negative price are required")
		return redirect(c, "/listings/new")
	}

	host := middleware.CurrentUser(c)
	listing, err := h.listings.Create(c.Request().Context(), host.ID, service.CreateListingInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
		Location:    req.Location,
		Country:     req.Country,
		Category:    req.Category,
		TaxIncluded: req.TaxIncluded,
	})
	if err != nil {
		h.sessions.Flash(c, "error", "Failed to create listing")
		return redirect(c, "/listings/new")
	}

	return redirect(c, "/listings/"+listing.Slug)
}

func (h *ListingHandler) Show(c echo.Context) error {
	ctx := c.Request().Context()

	listing, err := h.listings.GetBySlug(ctx, c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrListingNotFound) {
			return redirect(c, "/listings")
		}
		return err
	}

	var plans []models.Plan
	if user := middleware.CurrentUser(c); user != nil {
		plans, _ = h.social.ListPlans(ctx, user.ID)
	}

	messages, _ := h.chat.History(ctx, listing.ID)

	return render(c, h.sessions, "listing_show.html", map[string]any{
		"Listing":  listing,
		"Plans":    plans,
		"Messages": messages,
	})
}
