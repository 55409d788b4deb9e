package services

import (
	"strings"
	"testing"
)

func TestGenerateFlightsFallback(t *testing.T) {
	offers := GenerateFlightsFallback("CRL", "BCN", "2025-10-10")

	if len(offers) != 6 {
		t.Fatalf("expected 6 offers, got %d", len(offers))
	}

	knownAirlines := map[string]bool{"Ryanair": true, "EasyJet": true, "Vueling": true}
	for i, o := range offers {
		if !knownAirlines[o.Airline] {
			t.Errorf("offer %d: unknown airline %q", i, o.Airline)
		}
		if o.Source != SourceFallback {
			t.Errorf("offer %d: source = %q, want %q", i, o.Source, SourceFallback)
		}
		if o.Price == nil {
			t.Fatalf("offer %d: fallback offers always carry a price", i)
		}
		if *o.Price < 25 {
			t.Errorf("offer %d: price %d below floor", i, *o.Price)
		}
		if *o.Price%5 != 0 {
			t.Errorf("offer %d: price %d not a multiple of 5", i, *o.Price)
		}
		if o.Origin != "CRL" || o.Destination != "BCN" {
			t.Errorf("offer %d: route %s → %s", i, o.Origin, o.Destination)
		}
		if o.DepartureDate != "2025-10-10" {
			t.Errorf("offer %d: departure date %s", i, o.DepartureDate)
		}
		if !strings.Contains(o.BookingLink, "CRL") || !strings.Contains(o.BookingLink, "BCN") {
			t.Errorf("offer %d: booking link misses the route: %s", i, o.BookingLink)
		}
		if o.ID == "" {
			t.Errorf("offer %d: missing id", i)
		}
	}

	for i := 1; i < len(offers); i++ {
		if *offers[i-1].Price > *offers[i].Price {
			t.Fatalf("offers not sorted by price: %d before %d", *offers[i-1].Price, *offers[i].Price)
		}
	}
}

func TestGenerateHotelsFallback(t *testing.T) {
	offers := GenerateHotelsFallback("Barcelona", "2025-10-10", "2025-10-13")

	if len(offers) != 1 {
		t.Fatalf("expected a single placeholder, got %d", len(offers))
	}

	o := offers[0]
	if o.Name != "Hôtel à Barcelona" {
		t.Errorf("name = %q", o.Name)
	}
	if o.Price != nil {
		t.Errorf("placeholder must have no numeric price, got %d", *o.Price)
	}
	if o.PriceDisplay != "Prix sur demande" {
		t.Errorf("display = %q", o.PriceDisplay)
	}
	if o.Source != SourceFallback {
		t.Errorf("source = %q", o.Source)
	}
	if !strings.Contains(o.BookingLink, "booking.com") ||
		!strings.Contains(o.BookingLink, "Barcelona") ||
		!strings.Contains(o.BookingLink, "2025-10-10") {
		t.Errorf("booking link incomplete: %s", o.BookingLink)
	}
}
