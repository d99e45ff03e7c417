package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/dto"
	"github.com/wanderlust-app/wanderlust/internal/middleware"
	"github.com/wanderlust-app/wanderlust/internal/service"
)

type BookingHandler struct {
	bookings service.BookingService
	listings service.ListingService
	sessions *middleware.SessionManager
}

func NewBookingHandler(bookings service.BookingService, listings service.ListingService, sessions *middleware.SessionManager) *BookingHandler {
	return &BookingHandler{bookings: bookings, listings: listings, sessions: sessions}
}

func (h *BookingHandler) RegisterRoutes(e *echo.Echo) {
	login := h.sessions.RequireLogin()
	// Two historical route shapes create and show bookings; both feed the
	// same overlap-checked path.
	e.POST("/listings/booking", h.Create, login)
	e.POST("/:id/book", h.CreateForListing, login)
	e.GET("/listings/booking/:id", h.Show, login)
	e.GET("/bookings/:id", h.Show, login)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil || req.ListingID == 0 {
		h.sessions.Flash(c, "error", "Invalid booking request")
		return redirect(c, "/listings")
	}
	return h.create(c, req)
}

func (h *BookingHandler) CreateForListing(c echo.Context) error {
	listingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		h.sessions.Flash(c, "error", "Invalid booking request")
		return redirect(c, "/listings")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		h.sessions.Flash(c, "error", "Invalid booking request")
		return redirect(c, "/listings")
	}
	req.ListingID = uint(listingID)
	return h.create(c, req)
}

func (h *BookingHandler) create(c echo.Context, req dto.CreateBookingRequest) error {
	if err := c.Validate(&req); err != nil {
		h.sessions.Flash(c, "error", "Start date, end date and guest count are required")
		return h.redirectToListing(c, req.ListingID)
	}

	start, err1 := parseDate(req.StartDate)
	end, err2 := parseDate(req.EndDate)
	if err1 != nil || err2 != nil {
		h.sessions.Flash(c, "error", "Dates must be in YYYY-MM-DD format")
		return h.redirectToListing(c, req.ListingID)
	}

	user := middleware.CurrentUser(c)
	booking, err := h.bookings.Create(c.Request().Context(), user.ID, req.ListingID, start, end, req.Guests)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrListingNotFound):
			h.sessions.Flash(c, "error", "Listing not found")
			return redirect(c, "/listings")
		case errors.Is(err, service.ErrDateConflict):
			h.sessions.Flash(c, "error", "Listing already booked for selected dates.")
			return h.redirectToListing(c, req.ListingID)
		case errors.Is(err, service.ErrBadDateRange):
			h.sessions.Flash(c, "error", "End date must be after start date")
			return h.redirectToListing(c, req.ListingID)
		default:
			h.sessions.Flash(c, "error", "Booking failed")
			return h.redirectToListing(c, req.ListingID)
		}
	}

	h.sessions.Flash(c, "success", "Booking confirmed!")
	return redirect(c, "/bookings/"+strconv.FormatUint(uint64(booking.ID), 10))
}

func (h *BookingHandler) Show(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return redirect(c, "/listings")
	}

	booking, err := h.bookings.Get(c.Request().Context(), uint(id))
	if err != nil {
		h.sessions.Flash(c, "error", "Booking not found.")
		return redirect(c, "/listings")
	}

	return render(c, h.sessions, "booking_show.html", map[string]any{"Booking": booking})
}

func (h *BookingHandler) redirectToListing(c echo.Context, listingID uint) error {
	if listing, err := h.listings.GetByID(c.Request().Context(), listingID); err == nil {
		return redirect(c, "/listings/"+listing.Slug)
	}
	return redirect(c, "/listings")
}
