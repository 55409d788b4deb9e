package services

import (
	"time"

	"voyago/locations"
)

const (
	dateLayout = "2006-01-02"

	// Defaults when the caller leaves the window open.
	defaultDepartureLead = 30 * 24 * time.Hour
	defaultMinStayDays   = 4
	defaultHotelNights   = 3
)

// FlightRequest is a validated flight search. Either Destination or Criteria
// is set: a destination gives a single sub-query, criteria fan out over
// every matching catalogue destination.
type FlightRequest struct {
	Origin            string
	Destination       string
	Criteria          *locations.Criteria
	DepartureDateFrom string
	ReturnDate        string
	MinStayDays       int
	MaxResults        int
}

// HotelRequest is a validated hotel search for a single destination.
type HotelRequest struct {
	Destination  string
	CheckinDate  string
	CheckoutDate string
	Adults       int
	Target       int
}

// expandFlightQueries turns a request into the ordered list of concrete
// sub-queries to issue, one per destination, all sharing the same resolved
// date pair. No dedup happens here: a destination requested twice is queried
// twice, but the criteria path yields each match once.
func expandFlightQueries(req FlightRequest, now time.Time) []FlightQuery {
	departure, ret := resolveFlightDates(req.DepartureDateFrom, req.ReturnDate, req.MinStayDays, now)

	if req.Criteria == nil {
		return []FlightQuery{{
			Origin:        req.Origin,
			Destination:   req.Destination,
			DepartureDate: departure,
			ReturnDate:    ret,
		}}
	}

	codes := locations.Search(*req.Criteria)
	queries := make([]FlightQuery, 0, len(codes))
	for _, code := range codes {
		queries = append(queries, FlightQuery{
			Origin:        req.Origin,
			Destination:   code,
			DepartureDate: departure,
			ReturnDate:    ret,
		})
	}
	return queries
}

// resolveFlightDates computes the concrete departure/return pair: departure
// defaults to 30 days out, return to departure plus the minimum stay.
func resolveFlightDates(from, ret string, minStayDays int, now time.Time) (string, string) {
	if minStayDays <= 0 {
		minStayDays = defaultMinStayDays
	}

	departure, err := time.Parse(dateLayout, from)
	if err != nil {
		departure = now.Add(defaultDepartureLead)
	}

	if r, err := time.Parse(dateLayout, ret); err == nil && r.After(departure) {
		return departure.Format(dateLayout), r.Format(dateLayout)
	}

	returnDate := departure.AddDate(0, 0, minStayDays)
	return departure.Format(dateLayout), returnDate.Format(dateLayout)
}

// resolveHotelDates fills missing checkin/checkout dates: checkin 30 days
// out, checkout three nights later.
func resolveHotelDates(checkin, checkout string, now time.Time) (string, string) {
	in, err := time.Parse(dateLayout, checkin)
	if err != nil {
		in = now.Add(defaultDepartureLead)
	}

	out, err := time.Parse(dateLayout, checkout)
	if err != nil || !out.After(in) {
		out = in.AddDate(0, 0, defaultHotelNights)
	}

	return in.Format(dateLayout), out.Format(dateLayout)
}
