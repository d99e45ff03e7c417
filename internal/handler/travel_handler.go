package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/wanderlust-app/wanderlust/internal/dto"
	"github.com/wanderlust-app/wanderlust/internal/travel"
)

// TravelHandler serves the transport lookups. Flights, trains and hotels
// return fixture data; holidays proxies the public-holiday API.
type TravelHandler struct {
	holidays *travel.HolidayClient
}

func NewTravelHandler(holidays *travel.HolidayClient) *TravelHandler {
	return &TravelHandler{holidays: holidays}
}

func (h *TravelHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/flights", h.Flights)
	e.GET("/trains", h.Trains)
	e.GET("/hotels", h.Hotels)
	e.GET("/holidays/:country", h.Holidays)
}

func (h *TravelHandler) Flights(c echo.Context) error {
	if c.QueryParam("origin") == "" || c.QueryParam("destination") == "" || c.QueryParam("date") == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing params"})
	}

	return c.JSON(http.StatusOK, dto.FlightsResponse{Flights: []dto.Flight{
		{FlightNumber: "AI101", Departure: "08:00", Arrival: "10:30"},
		{FlightNumber: "AI202", Departure: "14:00", Arrival: "16:30"},
	}})
}

func (h *TravelHandler) Trains(c echo.Context) error {
	if c.QueryParam("origin") == "" || c.QueryParam("destination") == "" || c.QueryParam("date") == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing params"})
	}

	return c.JSON(http.StatusOK, dto.TrainsResponse{Trains: []dto.Train{
		{TrainNumber: "12345", Departure: "07:00", Arrival: "11:00"},
		{TrainNumber: "67890", Departure: "18:00", Arrival: "22:00"},
	}})
}

func (h *TravelHandler) Hotels(c echo.Context) error {
	if c.QueryParam("location") == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Missing location"})
	}

	return c.JSON(http.StatusOK, dto.HotelsResponse{Hotels: []dto.Hotel{
		{Name: "Hotel Sunshine", Rating: 4.2},
		{Name: "City View Inn", Rating: 4.5},
	}})
}

func (h *TravelHandler) Holidays(c echo.Context) error {
	country := c.Param("country")
	year := time.Now().Year()

	dates, err := h.holidays.Dates(c.Request().Context(), country, year)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to fetch holidays"})
	}

	return c.JSON(http.StatusOK, dto.HolidaysResponse{HolidayDates: dates})
}
