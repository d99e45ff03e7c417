package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/dto"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

type ReviewHandler struct {
	reviews  service.ReviewService
	listings service.ListingService
	sessions *middleware.SessionManager
}

func NewReviewHandler(reviews service.ReviewService, listings service.ListingService, sessions *middleware.SessionManager) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, listings: listings, sessions: sessions}
}

func (h *ReviewHandler) RegisterRoutes(e *echo.Echo) {
	login := h.sessions.RequireLogin()
	e.POST("/listings/:id/reviews", h.Create, login)
	e.DELETE("/listings/:id/reviews/:reviewId", h.Delete, login)
}

func (h *ReviewHandler) Create(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return redirect(c, "/listings")
	}

	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		h.sessions.Flash(c, "error", "Failed to add review")
		return h.redirectToListing(c, uint(listingID))
	}
	if err := c.Validate(&req); err != nil {
		h.sessions.Flash(c, "error", "A rating between 1 and 5 and a comment are required")
		return h.redirectToListing(c, uint(listingID))
	}

	user := middleware.CurrentUser(c)
	_, err = h.reviews.Add(c.Request().Context(), uint(listingID), user.ID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			return redirect(c, "/listings")
		case errors.Is(err, service.ErrRatingRange):
			h.sessions.Flash(c, "error", "Rating must be between 1 and 5")
		default:
			h.sessions.Flash(c, "error", "Failed to add review")
		}
	}
	return h.redirectToListing(c, uint(listingID))
}

func (h *ReviewHandler) Delete(c echo.Context) error {
	listingID, err1 := strconv.ParseUint(c.Param("id"), 10, 64)
	reviewID, err2 := strconv.ParseUint(c.Param("reviewId"), 10, 64)
	if err1 != nil || err2 != nil {
		return redirect(c, "/listings")
	}

	user := middleware.CurrentUser(c)
	err := h.reviews.Delete(c.Request().Context(), uint(listingID), uint(reviewID), user.ID)
	if err != nil {
		// Foreign and missing reviews redirect without a notice
		return h.redirectToListing(c, uint(listingID))
	}

	h.sessions.Flash(c, "success", "Review deleted")
	return h.redirectToListing(c, uint(listingID))
}

func (h *ReviewHandler) redirectToListing(c echo.Context, listingID uint) error {
	if listing, err := h.listings.GetByID(c.Request().Context(), listingID); err == nil {
		return redirect(c, "/listings/"+listing.Slug)
	}
	return redirect(c, "/listings")
}
