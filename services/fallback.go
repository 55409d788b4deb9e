package services

import (
	"fmt"
	"math/rand"
	"net/url"
)

// GenerateFlightsFallback produces synthetic flight offers when no live data
// is available. Prices are randomized within a small per-airline band and
// rounded to the nearest 5; the booking link points at a generic flight
// search page for the route — intentionally not held to the actionable-link
// policy, since the caller contract wants some usable link rather than none.
func GenerateFlightsFallback(origin, destination, departureDate string) []FlightOffer {
	airlines := []struct {
		name      string
		basePrice int
	}{
		{"Ryanair", 40},
		{"EasyJet", 55},
		{"Vueling", 65},
	}

	slots := [][3]string{
		{"06:30", "08:45", "2h15"},
		{"09:15", "11:30", "2h15"},
		{"12:45", "15:00", "2h15"},
		{"16:20", "18:35", "2h15"},
		{"19:00", "21:15", "2h15"},
	}

	bookingLink := fmt.Sprintf(
		"https://www.google.com/travel/flights?q=Flights+from+%s+to+%s+on+%s",
		url.QueryEscape(origin), url.QueryEscape(destination), url.QueryEscape(departureDate),
	)

	offers := make([]FlightOffer, 0, 6)
	for i := 0; i < 6; i++ {
		airline := airlines[rand.Intn(len(airlines))]
		slot := slots[rand.Intn(len(slots))]

		price := airline.basePrice + rand.Intn(56) - 15 // -15..+40
		if price < 25 {
			price = 25
		}
		price = (price + 2) / 5 * 5 // nearest 5

		p := price
		offer := FlightOffer{
			Airline:       airline.name,
			Origin:        origin,
			Destination:   destination,
			DepartureTime: slot[0],
			ArrivalTime:   slot[1],
			DepartureDate: departureDate,
			ReturnDate:    departureDate,
			Price:         &p,
			PriceDisplay:  fmt.Sprintf("%d€", p),
			Duration:      slot[2],
			Stops:         0,
			BookingLink:   bookingLink,
			Source:        SourceFallback,
		}
		offer.ID = offerID(offer.DedupKey())
		offers = append(offers, offer)
	}

	sortFlightsByPrice(offers)
	return offers
}

// GenerateHotelsFallback produces a single placeholder hotel with an unknown
// price and a booking platform search link for the city and dates.
func GenerateHotelsFallback(city, checkinDate, checkoutDate string) []HotelOffer {
	bookingLink := fmt.Sprintf(
		"https://www.booking.com/searchresults.html?ss=%s&checkin=%s&checkout=%s",
		url.QueryEscape(city), url.QueryEscape(checkinDate), url.QueryEscape(checkoutDate),
	)

	offer := HotelOffer{
		Name:         fmt.Sprintf("Hôtel à %s", city),
		Rating:       4.0,
		Stars:        3,
		Price:        nil,
		PriceDisplay: "Prix sur demande",
		Description:  fmt.Sprintf("Hébergement disponible à %s", city),
		Amenities:    []string{"WiFi", "Petit-déjeuner"},
		BookingLink:  bookingLink,
		Source:       SourceFallback,
	}
	offer.ID = offerID(offer.DedupKey())
	return []HotelOffer{offer}
}
