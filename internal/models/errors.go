package models

import "errors"

var (
	ErrUnknownAirport      = errors.New("unknown airport")
	ErrUnknownAirline      = errors.New("unknown airline")
	ErrMissingTimezoneData = errors.New("missing timezone data")
	ErrInvalidDateTime     = errors.New("invalid departure date/time")
	ErrUnsupportedRoute    = errors.New("unsupported route")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
)

// ComputeError ties a failure of the itinerary computation to the input
// that caused it.
type ComputeError struct {
	Subject string
	Err     error
}

func (e *ComputeError) Error() string {
	return e.Err.Error() + ": " + e.Subject
}

func (e *ComputeError) Unwrap() error {
	return e.Err
}

func NewComputeError(err error, subject string) *ComputeError {
	return &ComputeError{
		Subject: subject,
		Err:     err,
	}
}

// ErrorCode returns the API error slug for a compute failure, or an empty
// string when err is not one.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrUnknownAirport):
		return "unknown_airport"
	case errors.Is(err, ErrUnknownAirline):
		return "unknown_airline"
	case errors.Is(err, ErrMissingTimezoneData):
		return "missing_timezone_data"
	case errors.Is(err, ErrInvalidDateTime):
		return "invalid_datetime"
	case errors.Is(err, ErrUnsupportedRoute):
		return "unsupported_route"
	case errors.Is(err, ErrInvalidCoordinate):
		return "invalid_coordinate"
	}
	return ""
}
