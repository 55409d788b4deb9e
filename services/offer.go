package services

import (
	"fmt"
	"hash/fnv"
	"sort"
)

// Offer source values. Fallback offers are synthetic and clearly tagged so
// callers can tell them apart from live provider data.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// FlightOffer is a normalized flight result ready for display.
type FlightOffer struct {
	ID              string `json:"id"`
	Airline         string `json:"airline"`
	Origin          string `json:"departure"`
	Destination     string `json:"arrival"`
	DestinationName string `json:"destination_name,omitempty"`
	DepartureTime   string `json:"departureTime"`
	ArrivalTime     string `json:"arrivalTime"`
	DepartureDate   string `json:"departureDate"`
	ReturnDate      string `json:"returnDate"`
	Price           *int   `json:"price_numeric"`
	PriceDisplay    string `json:"price,omitempty"`
	Duration        string `json:"duration"`
	Stops           int    `json:"stops"`
	BookingLink     string `json:"booking_link"`
	Source          string `json:"source"`
}

// HotelOffer is a normalized hotel result ready for display.
type HotelOffer struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Rating       float64  `json:"rating"`
	Stars        int      `json:"stars"`
	Reviews      int      `json:"reviews"`
	Price        *int     `json:"price_numeric"`
	PriceDisplay string   `json:"price,omitempty"`
	Description  string   `json:"description,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`
	Image        string   `json:"image,omitempty"`
	BookingLink  string   `json:"booking_url"`
	Source       string   `json:"source"`
}

// DedupKey identifies a flight across sub-queries: same airline, departure
// time and price means the same inventory seen twice.
func (f FlightOffer) DedupKey() string {
	return f.Airline + "|" + f.DepartureTime + "|" + priceKey(f.Price)
}

// DedupKey identifies a hotel across sub-queries by name and nightly price.
func (h HotelOffer) DedupKey() string {
	return h.Name + "|" + priceKey(h.Price)
}

func priceKey(p *int) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *p)
}

// offerID derives a request-scoped id from a dedup key. It is not stable
// across searches and only used by clients to key list items.
func offerID(dedupKey string) string {
	h := fnv.New32a()
	h.Write([]byte(dedupKey))
	return fmt.Sprintf("%08x", h.Sum32())
}

// sortFlightsByPrice orders flights ascending by price; offers without a
// numeric price go last, keeping their relative order.
func sortFlightsByPrice(flights []FlightOffer) {
	sort.SliceStable(flights, func(i, j int) bool {
		return priceLess(flights[i].Price, flights[j].Price)
	})
}

// sortHotelsByPrice orders hotels ascending by price, unpriced last.
func sortHotelsByPrice(hotels []HotelOffer) {
	sort.SliceStable(hotels, func(i, j int) bool {
		return priceLess(hotels[i].Price, hotels[j].Price)
	})
}

func priceLess(a, b *int) bool {
	if a == nil {
		return false
	}
	if b == nil {
		return true
	}
	return *a < *b
}

// hasLiveOffers reports whether at least one flight came from a real
// provider.
func hasLiveFlights(flights []FlightOffer) bool {
	for _, f := range flights {
		if f.Source == SourceLive {
			return true
		}
	}
	return false
}

func hasLiveHotels(hotels []HotelOffer) bool {
	for _, h := range hotels {
		if h.Source == SourceLive {
			return true
		}
	}
	return false
}
