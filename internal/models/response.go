package models

type OptionsMetadata struct {
	TotalResults     int      `json:"total_results"`
	OptionsRequested int      `json:"options_requested"`
	OptionsSucceeded int      `json:"options_succeeded"`
	OptionsFailed    int      `json:"options_failed"`
	Errors           []string `json:"errors,omitempty"`
	SearchTimeMs     int64    `json:"search_time_ms"`
}

type OptionsResponse struct {
	Request  ItineraryRequest `json:"request"`
	Metadata OptionsMetadata  `json:"metadata"`
	Options  []Option         `json:"options"`
}

type Option struct {
	Itinerary
	BestValueScore float64 `json:"best_value_score,omitempty"`
}

type FlightTimeResponse struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Strategy    string  `json:"strategy"`
	Tier        string  `json:"tier"`
	DistanceKm  float64 `json:"distance_km,omitempty"`
	Distance    string  `json:"distance,omitempty"`
	Minutes     int     `json:"minutes"`
	Formatted   string  `json:"formatted"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

type AirportListResponse struct {
	Total    int       `json:"total"`
	Airports []Airport `json:"airports"`
}

type AirlineListResponse struct {
	Total    int       `json:"total"`
	Airlines []Airline `json:"airlines"`
}

type TicketListResponse struct {
	Total   int      `json:"total"`
	Tickets []Ticket `json:"tickets"`
}
