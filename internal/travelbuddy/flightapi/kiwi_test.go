package flightapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
)

func kiwiRequest() SearchRequest {
	return SearchRequest{
		Origin:      entity.Location{City: "Warsaw", CountryCode: "pl"},
		Destination: entity.Location{City: "New York", CountryCode: "us"},
		StartDate:   "2025-07-01",
		EndDate:     "2025-07-10",
		Adults:      1,
		Currency:    "USD",
		Limit:       10,
	}
}

func newKiwiProvider(t *testing.T, handler http.HandlerFunc) *KiwiProvider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewKiwiProvider(KiwiConfig{BaseURL: server.URL, APIKey: "rapid-key"})
}

func TestKiwiProvider_PicksCheapestOffer(t *testing.T) {
	t.Parallel()

	provider := newKiwiProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/round-trip", r.URL.Path)
		assert.Equal(t, "rapid-key", r.Header.Get("X-RapidAPI-Key"))
		assert.Equal(t, r.Host, r.Header.Get("X-RapidAPI-Host"))

		q := r.URL.Query()
		assert.Equal(t, "City:warsaw_pl", q.Get("source"))
		assert.Equal(t, "City:newyork_us", q.Get("destination"))
		assert.Equal(t, "2025-07-01T00:00:00", q.Get("outboundDepartmentDateStart"))
		assert.Equal(t, "2025-07-10T00:00:00", q.Get("inboundDepartureDateEnd"))
		assert.Equal(t, "1", q.Get("adults"))
		assert.Equal(t, "USD", q.Get("currency"))
		assert.Equal(t, "10", q.Get("limit"))

		_, _ = w.Write([]byte(`{
			"itinerariesCount": 3,
			"itineraries": [
				{"price": 300, "currency": "USD", "deep_link": "https://kiwi.example/300"},
				{"price": 150, "currency": "USD", "deep_link": "https://kiwi.example/150"},
				{"price": 220, "currency": "USD", "deep_link": "https://kiwi.example/220"}
			]
		}`))
	})

	result, err := provider.Search(context.Background(), kiwiRequest())
	require.NoError(t, err)
	require.True(t, result.OK())

	assert.Equal(t, "kiwi", result.Provider)
	assert.Equal(t, 150.0, result.Offer.MinPrice, "must select the minimum, not the first element")
	assert.Equal(t, "USD", result.Offer.Currency)
	assert.Equal(t, "https://kiwi.example/150", result.Offer.BookingLink)
}

func TestKiwiProvider_NoResults(t *testing.T) {
	t.Parallel()

	provider := newKiwiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"itinerariesCount": 0, "itineraries": []}`))
	})

	result, err := provider.Search(context.Background(), kiwiRequest())
	require.NoError(t, err)
	require.False(t, result.OK())
	assert.Equal(t, entity.FailureNoResults, result.Failure.Kind)
}

func TestKiwiProvider_UpstreamRouteError(t *testing.T) {
	t.Parallel()

	provider := newKiwiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"itinerariesCount": 0,
			"itineraries": [],
			"metadata": {
				"statusPerProvider": [
					{
						"provider": {"id": "ContentProvider:KIWI"},
						"errorHappened": true,
						"errorMessage": "search failed with code:422"
					}
				]
			}
		}`))
	})

	result, err := provider.Search(context.Background(), kiwiRequest())
	require.NoError(t, err)
	require.False(t, result.OK())
	assert.Equal(t, entity.FailureUpstreamRoute, result.Failure.Kind)
	assert.Contains(t, result.Failure.Message, "different dates or a larger airport")
}

func TestKiwiProvider_OtherProviderErrorIsNotRouteError(t *testing.T) {
	t.Parallel()

	provider := newKiwiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"itinerariesCount": 1,
			"itineraries": [{"price": 99, "currency": "USD", "deep_link": "https://kiwi.example/99"}],
			"metadata": {
				"statusPerProvider": [
					{"provider": {"id": "ContentProvider:KAYAK"}, "errorHappened": true, "errorMessage": "code:422"}
				]
			}
		}`))
	})

	result, err := provider.Search(context.Background(), kiwiRequest())
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, 99.0, result.Offer.MinPrice)
}

func TestKiwiProvider_TransportFailures(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx", func(t *testing.T) {
		t.Parallel()

		provider := newKiwiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		})

		result, err := provider.Search(context.Background(), kiwiRequest())
		require.NoError(t, err)
		require.False(t, result.OK())
		assert.Equal(t, entity.FailureTransport, result.Failure.Kind)
		assert.Contains(t, result.Failure.Message, "429")
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(`{}`))
		}))
		t.Cleanup(server.Close)

		provider := NewKiwiProvider(KiwiConfig{
			BaseURL: server.URL,
			APIKey:  "rapid-key",
			Timeout: 20 * time.Millisecond,
		})

		result, err := provider.Search(context.Background(), kiwiRequest())
		require.NoError(t, err)
		require.False(t, result.OK())
		assert.Equal(t, entity.FailureTimeout, result.Failure.Kind)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()

		provider := newKiwiProvider(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"itineraries": [`))
		})

		result, err := provider.Search(context.Background(), kiwiRequest())
		require.NoError(t, err)
		require.False(t, result.OK())
		assert.Equal(t, entity.FailureTransport, result.Failure.Kind)
	})
}

func TestKiwiProvider_MissingAPIKey(t *testing.T) {
	t.Parallel()

	var called bool
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))
	t.Cleanup(server.Close)

	provider := NewKiwiProvider(KiwiConfig{BaseURL: server.URL})

	_, err := provider.Search(context.Background(), kiwiRequest())
	require.ErrorIs(t, err, ErrMissingCredentials)
	assert.False(t, called)
}

func TestKiwiLocation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		loc     entity.Location
		want    string
		wantErr bool
	}{
		{
			name: "city and country",
			loc:  entity.Location{City: "Warsaw", CountryCode: "PL"},
			want: "City:warsaw_pl",
		},
		{
			name: "city with spaces",
			loc:  entity.Location{City: "San Francisco", CountryCode: "us"},
			want: "City:sanfrancisco_us",
		},
		{
			name: "country-wide search",
			loc:  entity.Location{City: "Country", CountryCode: "gb"},
			want: "Country:GB",
		},
		{
			name:    "missing country code",
			loc:     entity.Location{City: "Warsaw"},
			wantErr: true,
		},
		{
			name:    "empty",
			loc:     entity.Location{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := kiwiLocation(tt.loc)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidLocation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKiwiPrice_Shapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want float64
	}{
		{name: "number", data: `123.45`, want: 123.45},
		{name: "string", data: `"678"`, want: 678},
		{name: "amount object", data: `{"amount": "90.5"}`, want: 90.5},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var price kiwiPrice
			require.NoError(t, price.UnmarshalJSON([]byte(tt.data)))
			assert.Equal(t, tt.want, price.Value)
		})
	}

	var price kiwiPrice
	require.Error(t, price.UnmarshalJSON([]byte(`"not-a-number"`)))
}
