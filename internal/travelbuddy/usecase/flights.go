package usecase

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/travelbuddy/gotravelbuddy/internal/pkg/pkgerror"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/dateformat"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/entity"
	"github.com/travelbuddy/gotravelbuddy/internal/travelbuddy/flightapi"
)

const (
	defaultAdults   = 1
	defaultCurrency = "USD"
	defaultLimit    = 10

	maxScanDestinations = 8
	scanConcurrency     = 4
)

// PriceCheckInput is the caller-facing flight query, raw dates included.
type PriceCheckInput = entity.FlightQuery

type PriceCheckOutput struct {
	StartDate string
	EndDate   string
	Result    *entity.QuoteResult
}

// PriceCheck validates one flight query and delegates it to the configured
// pricing provider. Date problems never reach the network; query outcomes
// come back as data inside the result.
func (u *Usecase) PriceCheck(ctx context.Context, in PriceCheckInput) (*PriceCheckOutput, error) {
	req, err := u.buildRequest(in)
	if err != nil {
		return nil, err
	}

	result, err := u.provider.Search(ctx, req)
	if err != nil {
		return nil, mapProviderError(err)
	}

	return &PriceCheckOutput{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Result:    result,
	}, nil
}

type ScanInput struct {
	Origin       entity.Location
	Destinations []entity.Location
	StartDate    string
	EndDate      string
	Adults       int
	Currency     string
	Limit        int
}

type DestinationQuote struct {
	Destination entity.Location
	Result      *entity.QuoteResult
	Err         string
}

type ScanOutput struct {
	StartDate string
	EndDate   string
	Results   []DestinationQuote
}

// Scan prices several candidate destinations in parallel. One destination's
// failure never aborts the others; results keep the input order.
func (u *Usecase) Scan(ctx context.Context, in ScanInput) (*ScanOutput, error) {
	if len(in.Destinations) == 0 {
		return nil, pkgerror.NewBusiness("at least one destination is required", pkgerror.CodeInvalidInput)
	}
	if len(in.Destinations) > maxScanDestinations {
		return nil, pkgerror.NewBusiness("too many destinations in one scan", pkgerror.CodeInvalidInput)
	}

	base, err := u.buildRequest(PriceCheckInput{
		Origin:      in.Origin,
		Destination: in.Destinations[0],
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Adults:      in.Adults,
		Currency:    in.Currency,
		Limit:       in.Limit,
	})
	if err != nil {
		return nil, err
	}

	results := make([]DestinationQuote, len(in.Destinations))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(scanConcurrency)

	for i, destination := range in.Destinations {
		i, destination := i, destination
		group.Go(func() error {
			req := base
			req.Destination = destination

			result, err := u.provider.Search(groupCtx, req)
			if err != nil {
				slog.WarnContext(groupCtx, "destination scan entry failed",
					"provider", u.provider.Name(), "error", err)
				results[i] = DestinationQuote{Destination: destination, Err: err.Error()}
				return nil
			}
			results[i] = DestinationQuote{Destination: destination, Result: result}
			return nil
		})
	}
	// Workers never return errors; Wait only fences the goroutines.
	_ = group.Wait()

	return &ScanOutput{
		StartDate: base.StartDate,
		EndDate:   base.EndDate,
		Results:   results,
	}, nil
}

func (u *Usecase) buildRequest(in PriceCheckInput) (flightapi.SearchRequest, error) {
	start, err := dateformat.Parse(in.StartDate)
	if err != nil {
		return flightapi.SearchRequest{}, pkgerror.WrapBusiness(err, err.Error(), pkgerror.CodeInvalidInput)
	}
	end, err := dateformat.Parse(in.EndDate)
	if err != nil {
		return flightapi.SearchRequest{}, pkgerror.WrapBusiness(err, err.Error(), pkgerror.CodeInvalidInput)
	}
	if start.After(end) {
		return flightapi.SearchRequest{}, pkgerror.NewBusiness("start date is after end date", pkgerror.CodeInvalidInput)
	}

	adults := in.Adults
	if adults <= 0 {
		adults = defaultAdults
	}
	currency := in.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}

	return flightapi.SearchRequest{
		Origin:      in.Origin,
		Destination: in.Destination,
		StartDate:   start.Format(dateformat.Layout),
		EndDate:     end.Format(dateformat.Layout),
		Adults:      adults,
		Currency:    currency,
		Limit:       limit,
	}, nil
}

func mapProviderError(err error) error {
	switch {
	case errors.Is(err, flightapi.ErrInvalidLocation):
		return pkgerror.WrapBusiness(err, err.Error(), pkgerror.CodeInvalidInput)
	case errors.Is(err, flightapi.ErrMissingCredentials):
		return pkgerror.WrapBusiness(err, "flight pricing is not configured", pkgerror.CodeInternal)
	default:
		var authErr *flightapi.AuthError
		if errors.As(err, &authErr) {
			return pkgerror.WrapBusiness(err, "could not authenticate against the pricing API", pkgerror.CodeUpstreamUnavailable)
		}
		return pkgerror.WrapBusiness(err, err.Error(), pkgerror.CodeInternal)
	}
}
