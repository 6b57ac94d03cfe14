package flightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
)

const defaultKiwiTimeout = 15 * time.Second

// kiwiRouteErrorCode appears inside the per-provider status message when the
// upstream cannot process a specific route/date combination. It arrives in a
// 200 response, so it has to be fished out of the body.
const kiwiRouteErrorCode = "code:422"

type KiwiConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// KiwiProvider prices round trips through the Kiwi.com cheap-flights API on
// RapidAPI. Locations are addressed by city name and country code, or by
// country alone.
type KiwiProvider struct {
	baseURL string
	host    string
	apiKey  string
	client  *http.Client
}

func NewKiwiProvider(cfg KiwiConfig) *KiwiProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultKiwiTimeout
	}
	host := ""
	if parsed, err := url.Parse(cfg.BaseURL); err == nil {
		host = parsed.Host
	}
	return &KiwiProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		host:    host,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *KiwiProvider) Name() string {
	return "kiwi"
}

func (p *KiwiProvider) Search(ctx context.Context, req SearchRequest) (*entity.QuoteResult, error) {
	if p.apiKey == "" {
		return nil, ErrMissingCredentials
	}

	source, err := kiwiLocation(req.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	destination, err := kiwiLocation(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/round-trip", nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("X-RapidAPI-Key", p.apiKey)
	httpReq.Header.Set("X-RapidAPI-Host", p.host)
	httpReq.URL.RawQuery = p.query(req, source, destination).Encode()

	resp, err := p.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return entity.Unavailable(p.Name(), entity.FailureTimeout, "flight API request timed out"), nil
		}
		return entity.Unavailable(p.Name(), entity.FailureTransport, fmt.Sprintf("flight API request failed: %v", err)), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		detail := fmt.Sprintf("flight API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		return entity.Unavailable(p.Name(), entity.FailureTransport, detail), nil
	}

	var payload kiwiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entity.Unavailable(p.Name(), entity.FailureTransport, fmt.Sprintf("decode flight response: %v", err)), nil
	}

	for _, status := range payload.Metadata.StatusPerProvider {
		if status.Provider.ID == "ContentProvider:KIWI" && status.ErrorHappened &&
			strings.Contains(status.ErrorMessage, kiwiRouteErrorCode) {
			return entity.Unavailable(p.Name(), entity.FailureUpstreamRoute,
				"the pricing API could not process this route/date combination; try different dates or a larger airport"), nil
		}
	}

	if len(payload.Itineraries) == 0 {
		return entity.Unavailable(p.Name(), entity.FailureNoResults, "no flights found for these dates and destination"), nil
	}

	// The API claims to pre-sort, but the cheapest offer is selected
	// explicitly rather than trusted to be first.
	best := payload.Itineraries[0]
	for _, itinerary := range payload.Itineraries[1:] {
		if itinerary.Price.Value < best.Price.Value {
			best = itinerary
		}
	}

	currency := best.Currency
	if currency == "" {
		currency = req.Currency
	}

	return entity.Quoted(p.Name(), entity.Offer{
		MinPrice:    best.Price.Value,
		Currency:    currency,
		BookingLink: best.DeepLink,
	}), nil
}

func (p *KiwiProvider) query(req SearchRequest, source, destination string) url.Values {
	start := req.StartDate + "T00:00:00"
	end := req.EndDate + "T00:00:00"

	q := url.Values{}
	q.Set("round_trip", "1")
	q.Set("source", source)
	q.Set("destination", destination)
	q.Set("outboundDepartmentDateStart", start)
	q.Set("outboundDepartmentDateEnd", end)
	q.Set("inboundDepartureDateStart", start)
	q.Set("inboundDepartureDateEnd", end)
	q.Set("adults", strconv.Itoa(req.Adults))
	q.Set("children", "0")
	q.Set("infants", "0")
	q.Set("currency", req.Currency)
	q.Set("limit", strconv.Itoa(req.Limit))
	q.Set("locale", "en")
	q.Set("handbags", "1")
	q.Set("holdbags", "0")
	q.Set("cabinClass", "ECONOMY")
	q.Set("sortBy", "QUALITY")
	q.Set("sortOrder", "ASCENDING")
	q.Set("applyMixedClasses", "true")
	q.Set("allowReturnFromDifferentCity", "true")
	q.Set("allowChangeInboundDestination", "true")
	q.Set("allowChangeInboundSource", "true")
	q.Set("allowDifferentStationConnection", "true")
	q.Set("enableSelfTransfer", "true")
	q.Set("allowOvernightStopover", "true")
	q.Set("enableTrueHiddenCity", "true")
	q.Set("enableThrowAwayTicketing", "true")
	q.Set("transportTypes", "FLIGHT")
	q.Set("contentProviders", "FRESH,KAYAK,KIWI")
	return q
}

// kiwiLocation renders the API's addressing grammar: Country:XX for a
// country-wide search, City:<name>_<cc> otherwise.
func kiwiLocation(loc entity.Location) (string, error) {
	city := strings.TrimSpace(loc.City)
	country := strings.TrimSpace(loc.CountryCode)

	if strings.EqualFold(city, "country") && len(country) == 2 {
		return "Country:" + strings.ToUpper(country), nil
	}
	if city == "" || country == "" {
		return "", fmt.Errorf("%w: need city and country code (e.g. warsaw/pl) or country code alone", ErrInvalidLocation)
	}
	compact := strings.ReplaceAll(strings.ToLower(city), " ", "")
	return "City:" + compact + "_" + strings.ToLower(country), nil
}

type kiwiResponse struct {
	ItinerariesCount int             `json:"itinerariesCount"`
	Itineraries      []kiwiItinerary `json:"itineraries"`
	Metadata         struct {
		StatusPerProvider []struct {
			Provider struct {
				ID string `json:"id"`
			} `json:"provider"`
			ErrorHappened bool   `json:"errorHappened"`
			ErrorMessage  string `json:"errorMessage"`
		} `json:"statusPerProvider"`
	} `json:"metadata"`
}

type kiwiItinerary struct {
	Price    kiwiPrice `json:"price"`
	Currency string    `json:"currency"`
	DeepLink string    `json:"deep_link"`
}

// kiwiPrice absorbs the price field's observed shapes: a bare number, a
// numeric string, or an {"amount": ...} object.
type kiwiPrice struct {
	Value float64
}

func (p *kiwiPrice) UnmarshalJSON(data []byte) error {
	var number float64
	if err := json.Unmarshal(data, &number); err == nil {
		p.Value = number
		return nil
	}

	var text string
	if err := json.Unmarshal(data, &text); err == nil {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return fmt.Errorf("parse price %q: %w", text, err)
		}
		p.Value = value
		return nil
	}

	var object struct {
		Amount json.RawMessage `json:"amount"`
	}
	if err := json.Unmarshal(data, &object); err != nil || len(object.Amount) == 0 {
		return fmt.Errorf("unsupported price shape: %s", string(data))
	}
	var nested kiwiPrice
	if err := nested.UnmarshalJSON(object.Amount); err != nil {
		return err
	}
	p.Value = nested.Value
	return nil
}
