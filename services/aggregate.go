package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"voyago/locations"
)

const (
	// Bound on simultaneous upstream calls during a fan-out search.
	maxConcurrentCalls = 5

	// Scan limits on raw records, per the provider contract.
	rawFlightScanLimit = 20
	rawHotelScanLimit  = 30

	// Result targets.
	defaultFlightLimit = 10
	defaultHotelTarget = 40

	// Widening budgets for a thin single-destination result set.
	maxWideningPages   = 3
	hotelsPerVariant   = 15
	hotelsPerExtraPage = 25
	pageSize           = 20
)

// FlightResult is the outcome of a flight search. HasLive tells callers
// whether any real offer is present or the whole list is synthetic.
type FlightResult struct {
	Flights []FlightOffer
	HasLive bool
}

// HotelResult is the outcome of a hotel search.
type HotelResult struct {
	Hotels  []HotelOffer
	HasLive bool
}

// FlightService runs flight searches against an upstream searcher and owns
// merging, dedup, ordering and the fallback contract.
type FlightService struct {
	client FlightSearcher
	now    func() time.Time
}

func NewFlightService(client FlightSearcher) *FlightService {
	return &FlightService{client: client, now: time.Now}
}

// Search expands the request into sub-queries, fans them out concurrently,
// and merges surviving offers. A failing destination is skipped, never
// fatal; an empty final list routes to the fallback generator. The returned
// list is sorted ascending by price (unpriced last) and capped at the
// request's limit.
func (s *FlightService) Search(ctx context.Context, req FlightRequest) FlightResult {
	limit := req.MaxResults
	if limit <= 0 {
		limit = defaultFlightLimit
	}

	queries := expandFlightQueries(req, s.now())

	var offers []FlightOffer
	if s.client != nil {
		offers = s.fanOut(ctx, queries)
	}

	offers = dedupFlights(offers)
	sortFlightsByPrice(offers)
	if len(offers) > limit {
		offers = offers[:limit]
	}

	if len(offers) == 0 {
		departure := s.now().Add(defaultDepartureLead).Format(dateLayout)
		destination := req.Destination
		if len(queries) > 0 {
			departure = queries[0].DepartureDate
			destination = queries[0].Destination
		}
		log.Printf("⚠️  No live flights for %s → %s — using fallback", req.Origin, destination)
		return FlightResult{Flights: GenerateFlightsFallback(req.Origin, destination, departure)}
	}

	return FlightResult{Flights: offers, HasLive: true}
}

// fanOut issues every sub-query with bounded concurrency. Each goroutine
// writes only its own slot; slices are concatenated after the wait, so there
// is no shared mutable state beyond the slot array.
func (s *FlightService) fanOut(ctx context.Context, queries []FlightQuery) []FlightOffer {
	perQuery := make([][]FlightOffer, len(queries))

	var wg sync.WaitGroup
	sem := make(chan struct{}, maxConcurrentCalls)

	for i, q := range queries {
		wg.Add(1)
		go func(i int, q FlightQuery) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			page, err := s.client.SearchFlights(ctx, q)
			if err != nil {
				log.Printf("⚠️  Flight search %s → %s failed: %v — skipping destination", q.Origin, q.Destination, err)
				return
			}
			perQuery[i] = normalizeFlights(page.Flights, q)
		}(i, q)
	}
	wg.Wait()

	var merged []FlightOffer
	for _, offers := range perQuery {
		merged = append(merged, offers...)
	}
	return merged
}

// normalizeFlights converts raw records into offers, dropping anything
// without legs or without an acceptable booking link. A missing price is
// kept as "price unknown", not dropped.
func normalizeFlights(raw []RawFlight, q FlightQuery) []FlightOffer {
	if len(raw) > rawFlightScanLimit {
		raw = raw[:rawFlightScanLimit]
	}

	offers := make([]FlightOffer, 0, len(raw))
	for _, f := range raw {
		if len(f.Flights) == 0 {
			continue
		}

		link := flightBookingLink(f)
		if link == "" {
			continue
		}

		leg := f.Flights[0]
		airline := leg.Airline
		if airline == "" {
			airline = "Unknown"
		}

		price, display := flightPrice(f.Price)

		destName := ""
		if info, ok := locations.Info(q.Destination); ok {
			destName = info.Name
		}

		offer := FlightOffer{
			Airline:         airline,
			Origin:          q.Origin,
			Destination:     q.Destination,
			DestinationName: destName,
			DepartureTime:   clockTime(leg.DepartureAirport.Time),
			ArrivalTime:     clockTime(leg.ArrivalAirport.Time),
			DepartureDate:   q.DepartureDate,
			ReturnDate:      q.ReturnDate,
			Price:           price,
			PriceDisplay:    display,
			Duration:        formatDurationMin(leg.Duration),
			Stops:           len(f.Flights) - 1,
			BookingLink:     link,
			Source:          SourceLive,
		}
		offer.ID = offerID(offer.DedupKey())
		offers = append(offers, offer)
	}
	return offers
}

func dedupFlights(offers []FlightOffer) []FlightOffer {
	seen := make(map[string]bool, len(offers))
	out := offers[:0]
	for _, o := range offers {
		key := o.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}

// HotelService runs hotel searches for a single destination, widening a thin
// result set with locale variants and pagination before falling back.
type HotelService struct {
	client HotelSearcher
	now    func() time.Time
}

func NewHotelService(client HotelSearcher) *HotelService {
	return &HotelService{client: client, now: time.Now}
}

// Search issues the primary query, then best-effort widening until the
// target count is met or budgets are exhausted. Variant and page failures
// are swallowed; only a fully empty result routes to the fallback.
func (s *HotelService) Search(ctx context.Context, req HotelRequest) HotelResult {
	target := req.Target
	if target <= 0 {
		target = defaultHotelTarget
	}
	adults := req.Adults
	if adults <= 0 {
		adults = 2
	}

	city := locations.CityName(req.Destination)
	checkin, checkout := resolveHotelDates(req.CheckinDate, req.CheckoutDate, s.now())

	base := HotelQuery{
		City:         city,
		CheckinDate:  checkin,
		CheckoutDate: checkout,
		Adults:       adults,
	}

	var hotels []HotelOffer
	seen := make(map[string]bool)
	hasNextPage := false

	if s.client != nil {
		page, err := s.client.SearchHotels(ctx, base)
		if err != nil {
			log.Printf("⚠️  Hotel search for %s failed: %v", city, err)
		} else {
			hotels = mergeHotels(hotels, seen, normalizeHotels(page.Properties, rawHotelScanLimit))
			hasNextPage = page.HasNextPage
		}

		if len(hotels) < target {
			hotels = s.widenWithVariants(ctx, base, city, hotels, seen, target)
		}
		if hasNextPage && len(hotels) < target {
			hotels = s.widenWithPages(ctx, base, hotels, seen, target)
		}
	}

	sortHotelsByPrice(hotels)
	if len(hotels) > target {
		hotels = hotels[:target]
	}

	if len(hotels) == 0 {
		log.Printf("⚠️  No live hotels for %s — using fallback", city)
		return HotelResult{Hotels: GenerateHotelsFallback(city, checkin, checkout)}
	}

	return HotelResult{Hotels: hotels, HasLive: true}
}

// widenWithVariants re-runs the query through alternate locale/region and
// phrasing variants. The same inventory viewed from another region surfaces
// different listings, so variants are intentionally not deduplicated at the
// request level — offer dedup keys absorb the overlap.
func (s *HotelService) widenWithVariants(ctx context.Context, base HotelQuery, city string, hotels []HotelOffer, seen map[string]bool, target int) []HotelOffer {
	variants := []HotelQuery{
		{Locale: "en", Region: "us"},
		{Locale: "en", Region: "uk"},
		{QueryText: "hotels near " + city},
		{QueryText: city + " accommodation"},
		{Locale: "de", Region: "de"},
	}

	for _, v := range variants {
		if len(hotels) >= target {
			break
		}
		q := base
		q.Locale = v.Locale
		q.Region = v.Region
		q.QueryText = v.QueryText

		page, err := s.client.SearchHotels(ctx, q)
		if err != nil {
			// Widening is best effort; a failed variant never touches
			// the primary result.
			continue
		}
		hotels = mergeHotels(hotels, seen, normalizeHotels(page.Properties, hotelsPerVariant))
	}
	return hotels
}

// widenWithPages follows the provider's pagination while it reports more
// results, capped at maxWideningPages.
func (s *HotelService) widenWithPages(ctx context.Context, base HotelQuery, hotels []HotelOffer, seen map[string]bool, target int) []HotelOffer {
	start := len(hotels)
	for page := 0; page < maxWideningPages && len(hotels) < target; page++ {
		q := base
		q.Start = start + page*pageSize

		resp, err := s.client.SearchHotels(ctx, q)
		if err != nil {
			break
		}
		if len(resp.Properties) == 0 {
			break
		}
		hotels = mergeHotels(hotels, seen, normalizeHotels(resp.Properties, hotelsPerExtraPage))
		if !resp.HasNextPage {
			break
		}
	}
	return hotels
}

// normalizeHotels converts raw records into offers, dropping anything
// without an acceptable booking link. The rate is resolved through the
// price-extraction ladder, trying each of the provider's rate keys.
func normalizeHotels(raw []RawHotel, limit int) []HotelOffer {
	if len(raw) > limit {
		raw = raw[:limit]
	}

	offers := make([]HotelOffer, 0, len(raw))
	for _, h := range raw {
		link := hotelBookingLink(h)
		if link == "" {
			continue
		}

		price, display := hotelPrice(h)
		if display == "" {
			display = "Prix sur demande"
		}

		name := h.Name
		if name == "" {
			name = "Hotel"
		}

		amenities := h.Amenities
		if len(amenities) > 5 {
			amenities = amenities[:5]
		}

		image := ""
		if len(h.Images) > 0 {
			image = h.Images[0].Thumbnail
		}

		offer := HotelOffer{
			Name:         name,
			Rating:       h.OverallRating,
			Stars:        ExtractStars(h.HotelClass),
			Reviews:      h.Reviews,
			Price:        price,
			PriceDisplay: display,
			Description:  h.Description,
			Amenities:    amenities,
			Image:        image,
			BookingLink:  link,
			Source:       SourceLive,
		}
		offer.ID = offerID(offer.DedupKey())
		offers = append(offers, offer)
	}
	return offers
}

// flightPrice resolves a flight's price. The flight engine is asked for EUR
// explicitly, so a bare number is already in the home currency; anything
// else goes through the generic extraction ladder.
func flightPrice(v RawValue) (*int, string) {
	if v.kind == rawNumber {
		if v.Num <= 0 {
			return nil, ""
		}
		n := int(v.Num)
		return &n, displayPrice(&n)
	}
	return ExtractPrice(v)
}

// hotelPrice resolves the nightly rate from whichever key the provider
// populated.
func hotelPrice(h RawHotel) (*int, string) {
	for _, v := range []RawValue{h.RatePerNight, h.Prices, h.PriceField, h.Rates} {
		if v.IsAbsent() {
			continue
		}
		if price, display := ExtractPrice(v); price != nil {
			return price, display
		}
	}
	return nil, ""
}

func mergeHotels(hotels []HotelOffer, seen map[string]bool, incoming []HotelOffer) []HotelOffer {
	for _, h := range incoming {
		key := h.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		hotels = append(hotels, h)
	}
	return hotels
}

// clockTime reduces a provider timestamp ("2025-10-04 08:35" or ISO form) to
// an HH:MM clock.
func clockTime(ts string) string {
	if ts == "" {
		return ""
	}
	if idx := strings.IndexAny(ts, "T "); idx >= 0 && len(ts) > idx+5 {
		return ts[idx+1 : idx+6]
	}
	if len(ts) > 5 {
		return ts[:5]
	}
	return ts
}

// formatDurationMin renders minutes as "2h15"; unknown durations get the
// typical short-haul placeholder.
func formatDurationMin(minutes int) string {
	if minutes <= 0 {
		return "2h15"
	}
	return fmt.Sprintf("%dh%02d", minutes/60, minutes%60)
}
