package inbound

import (
	"context"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgrouter"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/usecase"
)

type uc interface {
	Greet(ctx context.Context, name string) string
	Farewell(ctx context.Context) string
	RecordPreference(ctx context.Context, in usecase.RecordPreferenceInput) (*usecase.RecordPreferenceOutput, error)
	Preferences(ctx context.Context, sessionID string) (*entity.Session, error)
	EndSession(ctx context.Context, sessionID string) error
	PriceCheck(ctx context.Context, in usecase.PriceCheckInput) (*usecase.PriceCheckOutput, error)
	Scan(ctx context.Context, in usecase.ScanInput) (*usecase.ScanOutput, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.GET("/", end.Banner)
	r.POST("/tools/greeting", end.Greeting)
	r.POST("/tools/farewell", end.Farewell)
	r.POST("/tools/preferences", end.RecordPreference)
	r.GET("/tools/preferences", end.Preferences)
	r.DELETE("/tools/preferences", end.EndSession)
	r.GET("/tools/flight-price", end.FlightPrice)
	r.GET("/tools/flight-scan", end.FlightScan)
}
