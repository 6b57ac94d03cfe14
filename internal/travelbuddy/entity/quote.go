package entity

// Location addresses one end of a trip. Which fields matter depends on the
// configured pricing API: the city-based variant reads City and CountryCode,
// the IATA-based variant reads IATA.
type Location struct {
	City        string
	CountryCode string
	IATA        string
}

// FlightQuery is one price check as the caller supplied it. StartDate and
// EndDate are raw strings; they are normalized before any network call.
type FlightQuery struct {
	Origin      Location
	Destination Location
	StartDate   string
	EndDate     string
	Adults      int
	Currency    string
	Limit       int
}

// Offer is the minimal decision-relevant summary of the cheapest itinerary
// the pricing API returned.
type Offer struct {
	MinPrice    float64
	Currency    string
	BookingLink string
}

// FailureKind classifies a query-level outcome that produced no offer.
type FailureKind string

const (
	FailureTimeout       FailureKind = "timeout"
	FailureTransport     FailureKind = "transport"
	FailureUpstreamRoute FailureKind = "upstream_route_error"
	FailureNoResults     FailureKind = "no_results_found"
)

type Failure struct {
	Kind    FailureKind
	Message string
}

// QuoteResult is the outcome of one flight query: exactly one of Offer or
// Failure is set. Query-level problems travel as data so a caller scanning
// many destinations can continue past one bad route.
type QuoteResult struct {
	Provider string
	Offer    *Offer
	Failure  *Failure
}

func Quoted(provider string, offer Offer) *QuoteResult {
	return &QuoteResult{Provider: provider, Offer: &offer}
}

func Unavailable(provider string, kind FailureKind, message string) *QuoteResult {
	return &QuoteResult{Provider: provider, Failure: &Failure{Kind: kind, Message: message}}
}

func (r *QuoteResult) OK() bool {
	return r != nil && r.Offer != nil
}
