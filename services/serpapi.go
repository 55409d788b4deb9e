package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"
)

// ─── Types ────────────────────────────────────────────────────────────────────

// FlightQuery is one concrete flight sub-query: a single origin/destination
// pair with resolved dates.
type FlightQuery struct {
	Origin        string
	Destination   string
	DepartureDate string // YYYY-MM-DD
	ReturnDate    string // YYYY-MM-DD
}

// HotelQuery is one concrete hotel sub-query. Locale/Region and QueryText
// carry the widening variants; Start is the pagination offset.
type HotelQuery struct {
	City         string
	CheckinDate  string
	CheckoutDate string
	Adults       int
	Locale       string
	Region       string
	QueryText    string
	Start        int
}

// RawFlight is one provider-shaped flight record.
type RawFlight struct {
	Flights        []RawFlightLeg     `json:"flights"`
	Price          RawValue           `json:"price"`
	BookingToken   string             `json:"booking_token"`
	BookingOptions []RawBookingOption `json:"booking_options"`
	Extensions     []string           `json:"extensions"`
}

type RawFlightLeg struct {
	Airline          string         `json:"airline"`
	DepartureAirport RawAirportTime `json:"departure_airport"`
	ArrivalAirport   RawAirportTime `json:"arrival_airport"`
	Duration         int            `json:"duration"` // minutes
}

type RawAirportTime struct {
	ID   string `json:"id"`
	Time string `json:"time"`
}

type RawBookingOption struct {
	Link string `json:"link"`
}

// RawHotel is one provider-shaped hotel record. The rate may arrive under
// several keys and shapes; all are kept raw and resolved by ExtractPrice.
type RawHotel struct {
	Name          string              `json:"name"`
	OverallRating float64             `json:"overall_rating"`
	RatePerNight  RawValue            `json:"rate_per_night"`
	Prices        RawValue            `json:"prices"`
	PriceField    RawValue            `json:"price"`
	Rates         RawValue            `json:"rates"`
	BookingLink   string              `json:"booking_link"`
	Link          string              `json:"link"`
	SerpapiLink   string              `json:"serpapi_link"`
	ExtractedLink string              `json:"extracted_link"`
	Extensions    []RawHotelExtension `json:"extensions"`
	HotelClass    string              `json:"hotel_class"`
	Reviews       int                 `json:"reviews"`
	Description   string              `json:"description"`
	Amenities     []string            `json:"amenities"`
	Images        []RawImage          `json:"images"`
}

type RawHotelExtension struct {
	Link string `json:"link"`
}

type RawImage struct {
	Thumbnail string `json:"thumbnail"`
}

// FlightPage is the usable part of one flight search response.
type FlightPage struct {
	Flights []RawFlight
}

// HotelPage is the usable part of one hotel search response.
type HotelPage struct {
	Properties  []RawHotel
	HasNextPage bool
}

// FlightSearcher issues one flight sub-query against an upstream provider.
type FlightSearcher interface {
	SearchFlights(ctx context.Context, q FlightQuery) (*FlightPage, error)
}

// HotelSearcher issues one hotel sub-query against an upstream provider.
type HotelSearcher interface {
	SearchHotels(ctx context.Context, q HotelQuery) (*HotelPage, error)
}

// ─── SerpApi Client ───────────────────────────────────────────────────────────

const (
	serpProviderName = "serpapi"
	serpTimeout      = 15 * time.Second
)

// SerpClient talks to the SerpApi Google Flights / Google Hotels engines.
// One request per call, bounded timeout, no internal retry — skipping and
// retrying are the aggregator's business.
type SerpClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var serpClient *SerpClient

func InitSerp() {
	serpClient = NewSerpClient(os.Getenv("SERPAPI_KEY"), "https://serpapi.com/search.json")

	if serpClient.apiKey == "" {
		log.Println("⚠️  SERPAPI_KEY not set — flight/hotel search will use fallback data")
		return
	}
	log.Println("✅ SerpApi search client configured")
}

func GetSerpClient() *SerpClient {
	return serpClient
}

func NewSerpClient(apiKey, baseURL string) *SerpClient {
	return &SerpClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: serpTimeout,
		},
	}
}

// Configured reports whether an API key is present. Without one every search
// goes straight to the fallback path.
func (c *SerpClient) Configured() bool {
	return c != nil && c.apiKey != ""
}

type flightSearchResponse struct {
	BestFlights  []RawFlight `json:"best_flights"`
	OtherFlights []RawFlight `json:"other_flights"`
	Error        string      `json:"error"`
}

// SearchFlights runs one round-trip flight query.
func (c *SerpClient) SearchFlights(ctx context.Context, q FlightQuery) (*FlightPage, error) {
	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.Origin)
	params.Set("arrival_id", q.Destination)
	params.Set("outbound_date", q.DepartureDate)
	params.Set("return_date", q.ReturnDate)
	params.Set("currency", "EUR")
	params.Set("hl", "fr")
	params.Set("gl", "fr")
	params.Set("type", "1") // round trip

	body, err := c.doSearch(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp flightSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UpstreamError{Provider: serpProviderName, Err: fmt.Errorf("unparsable flight payload: %w", err)}
	}
	if resp.Error != "" {
		return nil, &UpstreamError{Provider: serpProviderName, Err: fmt.Errorf("provider error: %s", resp.Error)}
	}

	// Best and other flights are one inventory split by the engine's own
	// ranking; the pipeline re-sorts by price anyway.
	flights := make([]RawFlight, 0, len(resp.BestFlights)+len(resp.OtherFlights))
	flights = append(flights, resp.BestFlights...)
	flights = append(flights, resp.OtherFlights...)

	return &FlightPage{Flights: flights}, nil
}

type hotelSearchResponse struct {
	Properties []RawHotel `json:"properties"`
	Error      string     `json:"error"`
	Pagination *struct {
		Next string `json:"next"`
	} `json:"serpapi_pagination"`
}

// SearchHotels runs one hotel query page.
func (c *SerpClient) SearchHotels(ctx context.Context, q HotelQuery) (*HotelPage, error) {
	queryText := q.QueryText
	if queryText == "" {
		queryText = q.City
	}
	locale := q.Locale
	if locale == "" {
		locale = "fr"
	}
	region := q.Region
	if region == "" {
		region = "fr"
	}

	params := url.Values{}
	params.Set("engine", "google_hotels")
	params.Set("q", queryText)
	params.Set("check_in_date", q.CheckinDate)
	params.Set("check_out_date", q.CheckoutDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("hl", locale)
	params.Set("gl", region)
	params.Set("num", "20")
	if q.Start > 0 {
		params.Set("start", strconv.Itoa(q.Start))
	}

	body, err := c.doSearch(ctx, params)
	if err != nil {
		return nil, err
	}

	var resp hotelSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &UpstreamError{Provider: serpProviderName, Err: fmt.Errorf("unparsable hotel payload: %w", err)}
	}
	if resp.Error != "" {
		return nil, &UpstreamError{Provider: serpProviderName, Err: fmt.Errorf("provider error: %s", resp.Error)}
	}

	return &HotelPage{
		Properties:  resp.Properties,
		HasNextPage: resp.Pagination != nil && resp.Pagination.Next != "",
	}, nil
}

// doSearch issues one GET and classifies failures: transport errors are
// transient, everything the provider rejected is permanent.
func (c *SerpClient) doSearch(ctx context.Context, params url.Values) ([]byte, error) {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Provider: serpProviderName, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &UpstreamError{Provider: serpProviderName, Transient: true, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, &UpstreamError{
			Provider:   serpProviderName,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%s", string(body)),
		}
	}
	return body, nil
}
