package inbound

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgerror"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/usecase"
)

func decodeJSONBody(r *http.Request, target any) error {
	err := json.NewDecoder(r.Body).Decode(target)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return pkgerror.NewBusiness("invalid JSON body", pkgerror.CodeInvalidInput)
}

func requireSessionID(r *http.Request) (string, error) {
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		return "", pkgerror.NewBusiness("session_id is required", pkgerror.CodeInvalidInput)
	}
	return sessionID, nil
}

func parsePriceCheckInput(r *http.Request) (usecase.PriceCheckInput, error) {
	q := r.URL.Query()

	origin := parseLocation(q, "origin")
	destination := parseLocation(q, "destination")

	startDate := strings.TrimSpace(q.Get("start_date"))
	endDate := strings.TrimSpace(q.Get("end_date"))
	if startDate == "" || endDate == "" {
		return usecase.PriceCheckInput{}, pkgerror.NewBusiness("start_date and end_date are required", pkgerror.CodeInvalidInput)
	}

	adults, err := parseOptionalInt(q, "adults")
	if err != nil {
		return usecase.PriceCheckInput{}, err
	}
	limit, err := parseOptionalInt(q, "limit")
	if err != nil {
		return usecase.PriceCheckInput{}, err
	}

	return usecase.PriceCheckInput{
		Origin:      origin,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Adults:      adults,
		Currency:    strings.ToUpper(strings.TrimSpace(q.Get("currency"))),
		Limit:       limit,
	}, nil
}

func parseScanInput(r *http.Request) (usecase.ScanInput, error) {
	q := r.URL.Query()

	priceInput, err := parsePriceCheckInput(r)
	if err != nil {
		return usecase.ScanInput{}, err
	}

	raw := strings.TrimSpace(q.Get("destinations"))
	if raw == "" {
		return usecase.ScanInput{}, pkgerror.NewBusiness("destinations is required", pkgerror.CodeInvalidInput)
	}

	destinations := make([]entity.Location, 0)
	for _, token := range strings.Split(raw, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		destinations = append(destinations, parseDestinationToken(token))
	}

	return usecase.ScanInput{
		Origin:       priceInput.Origin,
		Destinations: destinations,
		StartDate:    priceInput.StartDate,
		EndDate:      priceInput.EndDate,
		Adults:       priceInput.Adults,
		Currency:     priceInput.Currency,
		Limit:        priceInput.Limit,
	}, nil
}

// parseLocation reads <prefix>_city, <prefix>_country and <prefix>_iata so
// one query grammar serves both provider addressing schemes.
func parseLocation(q url.Values, prefix string) entity.Location {
	return entity.Location{
		City:        strings.TrimSpace(q.Get(prefix + "_city")),
		CountryCode: strings.TrimSpace(q.Get(prefix + "_country")),
		IATA:        strings.TrimSpace(q.Get(prefix + "_iata")),
	}
}

// parseDestinationToken resolves one scan-list entry: a bare three-letter
// token is an IATA code, city_cc addresses a city.
func parseDestinationToken(token string) entity.Location {
	if len(token) == 3 && !strings.Contains(token, "_") {
		return entity.Location{IATA: strings.ToUpper(token)}
	}
	if city, country, ok := strings.Cut(token, "_"); ok {
		return entity.Location{City: city, CountryCode: country}
	}
	return entity.Location{City: token}
}

func parseOptionalInt(q url.Values, key string) (int, error) {
	value := strings.TrimSpace(q.Get(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, pkgerror.NewBusiness("invalid "+key, pkgerror.CodeInvalidInput)
	}
	return parsed, nil
}

func describeLocation(loc entity.Location) string {
	if loc.IATA != "" {
		return loc.IATA
	}
	if loc.CountryCode != "" {
		return loc.City + "_" + loc.CountryCode
	}
	return loc.City
}
