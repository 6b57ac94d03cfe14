package travelbuddy

import (
	"fmt"
	"time"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgconfig"
	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgrouter"
	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkguid"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/flightapi"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/inbound"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/session"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/usecase"
)

type Dependency struct {
	Config pkgconfig.Config
	Router *pkgrouter.Router
	UID    pkguid.StringID
}

func New(dep Dependency) error {
	provider, err := buildProvider(dep.Config)
	if err != nil {
		return err
	}

	if rateLimitMs := dep.Config.GetInt("modules.travelbuddy.flight.rate_limit_ms"); rateLimitMs > 0 {
		provider = flightapi.NewRateLimitedProvider(provider, time.Duration(rateLimitMs)*time.Millisecond)
	}

	sessionTTL := 30 * time.Minute
	if ttlSeconds := dep.Config.GetInt("modules.travelbuddy.session.ttl_seconds"); ttlSeconds > 0 {
		sessionTTL = time.Duration(ttlSeconds) * time.Second
	}

	uc := usecase.New(usecase.Dependency{
		Provider: provider,
		Sessions: session.NewStore(sessionTTL, dep.UID),
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// buildProvider selects the pricing-API variant by configuration. Credentials
// come from the environment through viper's env binding, so an unset secret
// surfaces on first use of the affected provider, not here.
func buildProvider(cfg pkgconfig.Config) (flightapi.Provider, error) {
	timeout := time.Duration(cfg.GetInt("modules.travelbuddy.flight.timeout_seconds")) * time.Second

	switch variant := cfg.GetString("modules.travelbuddy.flight.provider"); variant {
	case "kiwi":
		return flightapi.NewKiwiProvider(flightapi.KiwiConfig{
			BaseURL: cfg.GetString("modules.travelbuddy.flight.kiwi.base_url"),
			APIKey:  cfg.GetString("rapidapi.key"),
			Timeout: timeout,
		}), nil
	case "amadeus", "":
		baseURL := cfg.GetString("modules.travelbuddy.flight.amadeus.base_url")
		tokens := flightapi.NewTokenSource(flightapi.TokenConfig{
			TokenURL:     baseURL + "/v1/security/oauth2/token",
			ClientID:     cfg.GetString("amadeus.client.id"),
			ClientSecret: cfg.GetString("amadeus.client.secret"),
		})
		return flightapi.NewAmadeusProvider(flightapi.AmadeusConfig{
			BaseURL: baseURL,
			Timeout: timeout,
		}, tokens), nil
	default:
		return nil, fmt.Errorf("unknown flight provider %q", variant)
	}
}
