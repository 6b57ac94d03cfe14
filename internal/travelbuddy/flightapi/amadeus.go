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

const defaultAmadeusTimeout = 30 * time.Second

type AmadeusConfig struct {
	BaseURL string
	Timeout time.Duration
}

// AmadeusProvider prices round trips through the Amadeus flight-offers API.
// Locations are addressed by IATA airport code and every request rides on a
// bearer token from the shared TokenSource.
type AmadeusProvider struct {
	baseURL string
	tokens  *TokenSource
	client  *http.Client
}

func NewAmadeusProvider(cfg AmadeusConfig, tokens *TokenSource) *AmadeusProvider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultAmadeusTimeout
	}
	return &AmadeusProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *AmadeusProvider) Name() string {
	return "amadeus"
}

func (p *AmadeusProvider) Search(ctx context.Context, req SearchRequest) (*entity.QuoteResult, error) {
	origin, err := iataCode(req.Origin)
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	destination, err := iataCode(req.Destination)
	if err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	token, err := p.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/v2/shopping/flight-offers", nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)

	q := url.Values{}
	q.Set("originLocationCode", origin)
	q.Set("destinationLocationCode", destination)
	q.Set("departureDate", req.StartDate)
	q.Set("returnDate", req.EndDate)
	q.Set("adults", strconv.Itoa(req.Adults))
	q.Set("currencyCode", req.Currency)
	q.Set("max", strconv.Itoa(req.Limit))
	httpReq.URL.RawQuery = q.Encode()

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

	var payload struct {
		Data []struct {
			Price struct {
				Currency   string `json:"currency"`
				GrandTotal string `json:"grandTotal"`
			} `json:"price"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return entity.Unavailable(p.Name(), entity.FailureTransport, fmt.Sprintf("decode flight response: %v", err)), nil
	}

	if len(payload.Data) == 0 {
		return entity.Unavailable(p.Name(), entity.FailureNoResults, "no flights found for these dates and destination"), nil
	}

	// Offers are expected pre-sorted by price, but the minimum is taken
	// explicitly.
	bestPrice := 0.0
	bestCurrency := req.Currency
	found := false
	for _, offer := range payload.Data {
		price, err := strconv.ParseFloat(offer.Price.GrandTotal, 64)
		if err != nil {
			continue
		}
		if !found || price < bestPrice {
			bestPrice = price
			found = true
			if offer.Price.Currency != "" {
				bestCurrency = offer.Price.Currency
			}
		}
	}
	if !found {
		return entity.Unavailable(p.Name(), entity.FailureTransport, "flight response carried no parseable prices"), nil
	}

	return entity.Quoted(p.Name(), entity.Offer{
		MinPrice: bestPrice,
		Currency: bestCurrency,
	}), nil
}

func iataCode(loc entity.Location) (string, error) {
	code := strings.ToUpper(strings.TrimSpace(loc.IATA))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: need a three-letter IATA airport code", ErrInvalidLocation)
	}
	return code, nil
}
