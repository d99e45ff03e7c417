package dto

// JSON payloads for the travel proxy endpoints. The flights, trains and
// hotels lookups return fixture data; holidays proxies the upstream API.

type Flight struct {
	FlightNumber string `json:"flightNumber"`
	Departure    string `json:"departure"`
	Arrival      string `json:"arrival"`
}

type Train struct {
	TrainNumber string `json:"trainNumber"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
}

type Hotel struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
}

type FlightsResponse struct {
	Flights []Flight `json:"flights"`
}

type TrainsResponse struct {
	Trains []Train `json:"trains"`
}

type HotelsResponse struct {
	Hotels []Hotel `json:"hotels"`
}

type HolidaysResponse struct {
	HolidayDates []string `json:"holidayDates"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
