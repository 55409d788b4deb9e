package services

import "testing"

func TestSortFlightsByPrice(t *testing.T) {
	flights := []FlightOffer{
		{Airline: "A", Price: nil},
		{Airline: "B", Price: intPtr(120)},
		{Airline: "C", Price: intPtr(45)},
		{Airline: "D", Price: nil},
		{Airline: "E", Price: intPtr(45)},
	}

	sortFlightsByPrice(flights)

	gotOrder := make([]string, len(flights))
	for i, f := range flights {
		gotOrder[i] = f.Airline
	}
	// Priced ascending first, equal prices keep their relative order, unpriced
	// offers trail in their original order.
	wantOrder := []string{"C", "E", "B", "A", "D"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("order = %v, want %v", gotOrder, wantOrder)
		}
	}
}

func TestSortHotelsByPrice(t *testing.T) {
	hotels := []HotelOffer{
		{Name: "Pricey", Price: intPtr(300)},
		{Name: "Unknown", Price: nil},
		{Name: "Cheap", Price: intPtr(60)},
	}

	sortHotelsByPrice(hotels)

	if hotels[0].Name != "Cheap" || hotels[1].Name != "Pricey" || hotels[2].Name != "Unknown" {
		t.Errorf("unexpected order: %s, %s, %s", hotels[0].Name, hotels[1].Name, hotels[2].Name)
	}
}

func TestDedupKeys(t *testing.T) {
	a := FlightOffer{Airline: "Ryanair", DepartureTime: "06:30", Price: intPtr(45)}
	b := FlightOffer{Airline: "Ryanair", DepartureTime: "06:30", Price: intPtr(45), Destination: "BCN"}
	c := FlightOffer{Airline: "Ryanair", DepartureTime: "06:30", Price: nil}

	if a.DedupKey() != b.DedupKey() {
		t.Error("same airline/time/price should share a dedup key regardless of destination")
	}
	if a.DedupKey() == c.DedupKey() {
		t.Error("priced and unpriced offers must not collide")
	}

	h1 := HotelOffer{Name: "Hotel Sol", Price: intPtr(90)}
	h2 := HotelOffer{Name: "Hotel Sol", Price: intPtr(90), Rating: 4.5}
	h3 := HotelOffer{Name: "Hotel Sol", Price: intPtr(95)}

	if h1.DedupKey() != h2.DedupKey() {
		t.Error("rating must not affect the hotel dedup key")
	}
	if h1.DedupKey() == h3.DedupKey() {
		t.Error("different prices must yield different hotel keys")
	}
}

func TestDedupFlights(t *testing.T) {
	offers := []FlightOffer{
		{Airline: "Ryanair", DepartureTime: "06:30", Price: intPtr(45)},
		{Airline: "Ryanair", DepartureTime: "06:30", Price: intPtr(45)},
		{Airline: "EasyJet", DepartureTime: "09:15", Price: intPtr(55)},
	}

	out := dedupFlights(offers)
	if len(out) != 2 {
		t.Fatalf("expected 2 unique offers, got %d", len(out))
	}
	if out[0].Airline != "Ryanair" || out[1].Airline != "EasyJet" {
		t.Errorf("first-seen order lost: %v", out)
	}
}

func TestOfferID(t *testing.T) {
	if offerID("a|b|c") != offerID("a|b|c") {
		t.Error("same key must give the same id")
	}
	if offerID("a|b|c") == offerID("a|b|d") {
		t.Error("different keys should give different ids")
	}
	if len(offerID("x")) != 8 {
		t.Errorf("id should be 8 hex chars, got %q", offerID("x"))
	}
}
