package inbound

import (
	"context"
	"net/http"
	"time"

	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/usecase"
)

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Banner(context.Context, *http.Request) (any, error) {
	return BannerResponse{Message: "Travel Idea Generator tool backend is running!"}, nil
}

func (h *HTTPEndpoint) Greeting(ctx context.Context, r *http.Request) (any, error) {
	var req GreetingRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}
	return MessageResponse{Message: h.uc.Greet(ctx, req.Name)}, nil
}

func (h *HTTPEndpoint) Farewell(ctx context.Context, _ *http.Request) (any, error) {
	return MessageResponse{Message: h.uc.Farewell(ctx)}, nil
}

func (h *HTTPEndpoint) RecordPreference(ctx context.Context, r *http.Request) (any, error) {
	var req RecordPreferenceRequest
	if err := decodeJSONBody(r, &req); err != nil {
		return nil, err
	}

	out, err := h.uc.RecordPreference(ctx, usecase.RecordPreferenceInput{
		SessionID: req.SessionID,
		Name:      req.Name,
		Value:     req.Value,
	})
	if err != nil {
		return nil, err
	}

	return RecordPreferenceResponse{SessionID: out.SessionID, Message: out.Message}, nil
}

func (h *HTTPEndpoint) Preferences(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		return nil, err
	}

	sess, err := h.uc.Preferences(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return PreferencesResponse{
		SessionID:   sess.ID,
		Preferences: sess.Preferences,
		UpdatedAt:   sess.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func (h *HTTPEndpoint) EndSession(ctx context.Context, r *http.Request) (any, error) {
	sessionID, err := requireSessionID(r)
	if err != nil {
		return nil, err
	}
	if err := h.uc.EndSession(ctx, sessionID); err != nil {
		return nil, err
	}
	return MessageResponse{Message: "session ended"}, nil
}

func (h *HTTPEndpoint) FlightPrice(ctx context.Context, r *http.Request) (any, error) {
	input, err := parsePriceCheckInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.PriceCheck(ctx, input)
	if err != nil {
		return nil, err
	}

	return FlightPriceResponse{
		StartDate: out.StartDate,
		EndDate:   out.EndDate,
		Quote:     mapQuoteResponse(out.Result),
	}, nil
}

func (h *HTTPEndpoint) FlightScan(ctx context.Context, r *http.Request) (any, error) {
	input, err := parseScanInput(r)
	if err != nil {
		return nil, err
	}

	out, err := h.uc.Scan(ctx, input)
	if err != nil {
		return nil, err
	}

	entries := make([]ScanEntryResponse, 0, len(out.Results))
	for _, result := range out.Results {
		entry := ScanEntryResponse{Destination: describeLocation(result.Destination)}
		if result.Err != "" {
			entry.Error = result.Err
		} else {
			quote := mapQuoteResponse(result.Result)
			entry.Quote = &quote
		}
		entries = append(entries, entry)
	}

	return FlightScanResponse{
		StartDate: out.StartDate,
		EndDate:   out.EndDate,
		Results:   entries,
	}, nil
}

func mapQuoteResponse(result *entity.QuoteResult) QuoteResponse {
	resp := QuoteResponse{Provider: result.Provider}
	if result.OK() {
		resp.Status = "success"
		resp.Offer = &OfferResponse{
			MinPrice:    result.Offer.MinPrice,
			Currency:    result.Offer.Currency,
			BookingLink: result.Offer.BookingLink,
		}
		return resp
	}
	resp.Status = string(result.Failure.Kind)
	resp.Message = result.Failure.Message
	return resp
}
