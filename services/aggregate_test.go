package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"voyago/locations"
)

// mockFlightSearcher serves canned pages per destination and records which
// sub-queries were issued.
type mockFlightSearcher struct {
	mu      sync.Mutex
	pages   map[string]*FlightPage
	failing map[string]error
	queries []FlightQuery
}

func (m *mockFlightSearcher) SearchFlights(_ context.Context, q FlightQuery) (*FlightPage, error) {
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if err, ok := m.failing[q.Destination]; ok {
		return nil, err
	}
	if page, ok := m.pages[q.Destination]; ok {
		return page, nil
	}
	return &FlightPage{}, nil
}

func rawFlightFixture(airline, depTime string, price float64) RawFlight {
	return RawFlight{
		Flights: []RawFlightLeg{{
			Airline:          airline,
			DepartureAirport: RawAirportTime{ID: "CRL", Time: "2025-10-10 " + depTime},
			ArrivalAirport:   RawAirportTime{ID: "BCN", Time: "2025-10-10 12:00"},
			Duration:         135,
		}},
		Price:          RawNumber(price),
		BookingOptions: []RawBookingOption{{Link: "https://partner.example.com/" + airline}},
	}
}

func newTestFlightService(client FlightSearcher) *FlightService {
	s := NewFlightService(client)
	s.now = func() time.Time { return testNow }
	return s
}

func TestFlightSearch_MergesAndSorts(t *testing.T) {
	mock := &mockFlightSearcher{pages: map[string]*FlightPage{
		"BCN": {Flights: []RawFlight{
			rawFlightFixture("Vueling", "09:00", 80),
			rawFlightFixture("Ryanair", "06:30", 35),
		}},
	}}

	res := newTestFlightService(mock).Search(context.Background(), FlightRequest{
		Origin:            "CRL",
		Destination:       "BCN",
		DepartureDateFrom: "2025-10-10",
	})

	if !res.HasLive {
		t.Fatal("expected live offers")
	}
	if len(res.Flights) != 2 {
		t.Fatalf("expected 2 offers, got %d", len(res.Flights))
	}
	if res.Flights[0].Airline != "Ryanair" || *res.Flights[0].Price != 35 {
		t.Errorf("cheapest offer first, got %s at %v", res.Flights[0].Airline, res.Flights[0].Price)
	}
	if res.Flights[0].DepartureTime != "06:30" {
		t.Errorf("departure time = %q, want clock form", res.Flights[0].DepartureTime)
	}
	if res.Flights[0].Duration != "2h15" {
		t.Errorf("duration = %q, want 2h15", res.Flights[0].Duration)
	}
	if res.Flights[0].DestinationName != "Barcelona" {
		t.Errorf("destination name = %q", res.Flights[0].DestinationName)
	}
	if res.Flights[0].Source != SourceLive {
		t.Errorf("source = %q", res.Flights[0].Source)
	}
}

func TestFlightSearch_PartialFailureSkipsDestination(t *testing.T) {
	mock := &mockFlightSearcher{
		pages: map[string]*FlightPage{
			"LIS": {Flights: []RawFlight{rawFlightFixture("Ryanair", "06:30", 40)}},
			"OPO": {Flights: []RawFlight{rawFlightFixture("EasyJet", "09:15", 60)}},
		},
		failing: map[string]error{
			"FAO": &UpstreamError{Provider: "serpapi", StatusCode: 429, Transient: true, Err: errors.New("rate limited")},
		},
	}

	res := newTestFlightService(mock).Search(context.Background(), FlightRequest{
		Origin:   "CRL",
		Criteria: &locations.Criteria{Countries: []string{"Portugal"}},
	})

	if !res.HasLive {
		t.Fatal("surviving destinations should still produce live offers")
	}
	if len(res.Flights) != 2 {
		t.Fatalf("expected 2 offers from the 2 healthy destinations, got %d", len(res.Flights))
	}
	if *res.Flights[0].Price > *res.Flights[1].Price {
		t.Error("merged offers not sorted")
	}
	if len(mock.queries) != 3 {
		t.Errorf("expected all 3 destinations queried, got %d", len(mock.queries))
	}
}

func TestFlightSearch_TotalFailureFallsBack(t *testing.T) {
	mock := &mockFlightSearcher{failing: map[string]error{
		"BCN": errors.New("connection refused"),
	}}

	res := newTestFlightService(mock).Search(context.Background(), FlightRequest{
		Origin:      "CRL",
		Destination: "BCN",
	})

	if res.HasLive {
		t.Fatal("fallback result must not claim live offers")
	}
	if len(res.Flights) != 6 {
		t.Fatalf("expected 6 fallback offers, got %d", len(res.Flights))
	}
	for _, f := range res.Flights {
		if f.Source != SourceFallback {
			t.Fatalf("source = %q, want %q", f.Source, SourceFallback)
		}
	}
}

func TestFlightSearch_NilClientFallsBack(t *testing.T) {
	res := newTestFlightService(nil).Search(context.Background(), FlightRequest{
		Origin:      "CRL",
		Destination: "BCN",
	})

	if res.HasLive || len(res.Flights) != 6 {
		t.Fatalf("expected fallback-only result, got %d offers (hasLive=%v)", len(res.Flights), res.HasLive)
	}
}

func TestFlightSearch_RespectsLimit(t *testing.T) {
	var raw []RawFlight
	for i := 0; i < 15; i++ {
		raw = append(raw, rawFlightFixture("Ryanair", fmt.Sprintf("%02d:00", 6+i), float64(30+i)))
	}
	mock := &mockFlightSearcher{pages: map[string]*FlightPage{"BCN": {Flights: raw}}}

	res := newTestFlightService(mock).Search(context.Background(), FlightRequest{
		Origin:      "CRL",
		Destination: "BCN",
		MaxResults:  5,
	})

	if len(res.Flights) != 5 {
		t.Fatalf("expected limit of 5, got %d", len(res.Flights))
	}
}

func TestNormalizeFlights_DropsUnusableRecords(t *testing.T) {
	q := FlightQuery{Origin: "CRL", Destination: "BCN", DepartureDate: "2025-10-10"}

	noLegs := RawFlight{Price: RawNumber(40), BookingOptions: []RawBookingOption{{Link: "https://x.example.com"}}}
	noLink := rawFlightFixture("Ryanair", "06:30", 40)
	noLink.BookingOptions = nil
	unpriced := rawFlightFixture("EasyJet", "09:15", 0)
	good := rawFlightFixture("Vueling", "12:45", 70)

	offers := normalizeFlights([]RawFlight{noLegs, noLink, unpriced, good}, q)

	if len(offers) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(offers))
	}
	// A missing price is kept as price-unknown, not dropped.
	if offers[0].Airline != "EasyJet" || offers[0].Price != nil {
		t.Errorf("unpriced offer mishandled: %+v", offers[0])
	}
	if offers[1].Airline != "Vueling" || offers[1].Price == nil || *offers[1].Price != 70 {
		t.Errorf("priced offer mishandled: %+v", offers[1])
	}
}

func TestFlightPrice_BareNumberIsEUR(t *testing.T) {
	// The flight engine is queried with an explicit EUR currency, so bare
	// numbers bypass the USD heuristic.
	price, display := flightPrice(RawNumber(100))
	if price == nil || *price != 100 || display != "100€" {
		t.Errorf("got %v / %q, want 100 / 100€", price, display)
	}

	price, _ = flightPrice(RawMap(map[string]any{"lowest": "$100"}))
	if price == nil || *price != 85 {
		t.Errorf("map-shaped price should use the ladder, got %v", price)
	}
}

// mockHotelSearcher distinguishes the primary query, widening variants and
// pagination offsets so each widening stage can be scripted.
type mockHotelSearcher struct {
	mu       sync.Mutex
	primary  *HotelPage
	variants map[string]*HotelPage // keyed by locale|region|queryText
	pages    map[int]*HotelPage    // keyed by start offset
	err      error
	calls    int
}

func (m *mockHotelSearcher) SearchHotels(_ context.Context, q HotelQuery) (*HotelPage, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if q.Start > 0 {
		if page, ok := m.pages[q.Start]; ok {
			return page, nil
		}
		return &HotelPage{}, nil
	}
	if q.Locale != "" || q.QueryText != "" {
		key := q.Locale + "|" + q.Region + "|" + q.QueryText
		if page, ok := m.variants[key]; ok {
			return page, nil
		}
		return nil, errors.New("variant unavailable")
	}
	if m.primary != nil {
		return m.primary, nil
	}
	return &HotelPage{}, nil
}

func rawHotelFixture(name string, price float64) RawHotel {
	return RawHotel{
		Name:          name,
		OverallRating: 4.2,
		RatePerNight:  RawMap(map[string]any{"lowest": fmt.Sprintf("%.0f€", price)}),
		BookingLink:   "https://www.booking.com/hotel/" + strings.ReplaceAll(name, " ", "-"),
		HotelClass:    "4 étoiles",
	}
}

func rawHotelBatch(prefix string, n int, basePrice float64) []RawHotel {
	out := make([]RawHotel, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rawHotelFixture(fmt.Sprintf("%s %d", prefix, i), basePrice+float64(i)))
	}
	return out
}

func newTestHotelService(client HotelSearcher) *HotelService {
	s := NewHotelService(client)
	s.now = func() time.Time { return testNow }
	return s
}

func TestHotelSearch_WidensUntilTarget(t *testing.T) {
	mock := &mockHotelSearcher{
		primary: &HotelPage{Properties: rawHotelBatch("Primary", 10, 50)},
		variants: map[string]*HotelPage{
			"en|us|": {Properties: rawHotelBatch("US", 15, 100)},
			"en|uk|": {Properties: rawHotelBatch("UK", 15, 200)},
		},
	}

	res := newTestHotelService(mock).Search(context.Background(), HotelRequest{
		Destination: "BCN",
		Target:      40,
	})

	if !res.HasLive {
		t.Fatal("expected live offers")
	}
	// 10 primary + 15 + 15 from the two working variants; remaining variants
	// fail and pagination is not triggered without a next page.
	if len(res.Hotels) != 40 {
		t.Fatalf("expected 40 merged offers, got %d", len(res.Hotels))
	}
	for i := 1; i < len(res.Hotels); i++ {
		a, b := res.Hotels[i-1].Price, res.Hotels[i].Price
		if a != nil && b != nil && *a > *b {
			t.Fatalf("hotels not sorted at %d: %d > %d", i, *a, *b)
		}
	}
}

func TestHotelSearch_StopsWideningAtTarget(t *testing.T) {
	mock := &mockHotelSearcher{
		primary: &HotelPage{Properties: rawHotelBatch("Primary", 10, 50)},
		variants: map[string]*HotelPage{
			"en|us|": {Properties: rawHotelBatch("US", 15, 100)},
		},
	}

	res := newTestHotelService(mock).Search(context.Background(), HotelRequest{
		Destination: "BCN",
		Target:      20,
	})

	if len(res.Hotels) != 20 {
		t.Fatalf("expected truncation to target 20, got %d", len(res.Hotels))
	}
	// Primary plus the first variant meet the target; later variants are
	// never issued.
	if mock.calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", mock.calls)
	}
}

func TestHotelSearch_FollowsPagination(t *testing.T) {
	mock := &mockHotelSearcher{
		primary: &HotelPage{Properties: rawHotelBatch("Primary", 10, 50), HasNextPage: true},
		pages: map[int]*HotelPage{
			10: {Properties: rawHotelBatch("Page2", 10, 150)},
		},
	}

	res := newTestHotelService(mock).Search(context.Background(), HotelRequest{
		Destination: "BCN",
		Target:      40,
	})

	if len(res.Hotels) != 20 {
		t.Fatalf("expected 10 primary + 10 paged offers, got %d", len(res.Hotels))
	}
}

func TestHotelSearch_DedupAcrossVariants(t *testing.T) {
	same := rawHotelBatch("Shared", 10, 50)
	mock := &mockHotelSearcher{
		primary: &HotelPage{Properties: same},
		variants: map[string]*HotelPage{
			"en|us|": {Properties: same},
		},
	}

	res := newTestHotelService(mock).Search(context.Background(), HotelRequest{
		Destination: "BCN",
		Target:      40,
	})

	if len(res.Hotels) != 10 {
		t.Fatalf("identical inventory across variants should dedup to 10, got %d", len(res.Hotels))
	}
}

func TestHotelSearch_EmptyFallsBack(t *testing.T) {
	mock := &mockHotelSearcher{err: errors.New("boom")}

	res := newTestHotelService(mock).Search(context.Background(), HotelRequest{Destination: "BCN"})

	if res.HasLive {
		t.Fatal("fallback result must not claim live offers")
	}
	if len(res.Hotels) != 1 {
		t.Fatalf("expected the single placeholder, got %d", len(res.Hotels))
	}
	if res.Hotels[0].Name != "Hôtel à Barcelona" {
		t.Errorf("placeholder city not resolved from airport code: %q", res.Hotels[0].Name)
	}
}

func TestNormalizeHotels(t *testing.T) {
	linkless := rawHotelFixture("No Link", 80)
	linkless.BookingLink = ""

	unpriced := rawHotelFixture("Mystery", 0)
	unpriced.RatePerNight = RawValue{}

	rich := rawHotelFixture("Grand", 120)
	rich.Amenities = []string{"WiFi", "Pool", "Spa", "Gym", "Bar", "Parking", "Sauna"}
	rich.Images = []RawImage{{Thumbnail: "https://img.example.com/grand.jpg"}}

	offers := normalizeHotels([]RawHotel{linkless, unpriced, rich}, 30)

	if len(offers) != 2 {
		t.Fatalf("expected 2 survivors, got %d", len(offers))
	}
	if offers[0].Name != "Mystery" || offers[0].Price != nil || offers[0].PriceDisplay != "Prix sur demande" {
		t.Errorf("unpriced hotel mishandled: %+v", offers[0])
	}
	if offers[1].Stars != 4 {
		t.Errorf("stars = %d, want 4", offers[1].Stars)
	}
	if len(offers[1].Amenities) != 5 {
		t.Errorf("amenities should be capped at 5, got %d", len(offers[1].Amenities))
	}
	if offers[1].Image == "" {
		t.Error("first image thumbnail should be kept")
	}
}

func TestClockTime(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2025-10-04 08:35", "08:35"},
		{"2025-10-04T08:35:00", "08:35"},
		{"08:35", "08:35"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := clockTime(tt.in); got != tt.want {
			t.Errorf("clockTime(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatDurationMin(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{135, "2h15"},
		{60, "1h00"},
		{605, "10h05"},
		{0, "2h15"},
	}
	for _, tt := range tests {
		if got := formatDurationMin(tt.in); got != tt.want {
			t.Errorf("formatDurationMin(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
