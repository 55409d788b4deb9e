package services

import (
	"fmt"
	"strings"
)

// aggregatorDomain is the search engine's own domain. A link that just
// re-runs a search there is not an actionable booking link.
const aggregatorDomain = "google.com"

// minBookingTokenLen filters out truncated booking tokens; valid ones are
// long opaque strings.
const minBookingTokenLen = 20

// hotelBookingSites is the allow-list for hotel extension links.
var hotelBookingSites = []string{
	"booking.com", "hotels.com", "expedia", "agoda", "trip.com", "kayak",
}

// Actionable is the base acceptance test: non-empty, carries a scheme, and
// does not point back at the aggregator's own domain.
func Actionable(link string) bool {
	return link != "" && strings.Contains(link, "http") && !strings.Contains(link, aggregatorDomain)
}

// flightBookingLink evaluates a raw flight's candidate links in priority
// order and returns the first acceptable one, or "".
//
//  1. booking_options partner links (direct partner checkout)
//  2. a booking token assembled into the engine's checkout URL — the one
//     sanctioned aggregator-domain link, since it resolves to a concrete
//     itinerary rather than a generic search
//  3. string extensions carrying partner URLs
func flightBookingLink(f RawFlight) string {
	for _, opt := range f.BookingOptions {
		if Actionable(opt.Link) {
			return opt.Link
		}
	}

	if len(f.BookingToken) > minBookingTokenLen {
		return fmt.Sprintf("https://www.google.com/travel/flights/booking?token=%s", f.BookingToken)
	}

	for _, ext := range f.Extensions {
		if Actionable(ext) {
			return ext
		}
	}

	return ""
}

// hotelBookingLink evaluates a raw hotel's candidate links in priority order
// and returns the first acceptable one, or "".
//
//  1. the direct booking_link / link fields
//  2. extension entries, accepted only when the link host is a known booking
//     platform
//  3. the secondary search-API link
//  4. the extracted link
func hotelBookingLink(h RawHotel) string {
	for _, direct := range []string{h.BookingLink, h.Link} {
		if Actionable(direct) {
			return direct
		}
	}

	for _, ext := range h.Extensions {
		if ext.Link == "" {
			continue
		}
		lower := strings.ToLower(ext.Link)
		for _, site := range hotelBookingSites {
			if strings.Contains(lower, site) {
				return ext.Link
			}
		}
	}

	if Actionable(h.SerpapiLink) {
		return h.SerpapiLink
	}

	if Actionable(h.ExtractedLink) {
		return h.ExtractedLink
	}

	return ""
}
