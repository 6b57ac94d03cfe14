package inbound

type BannerResponse struct {
	Message string `json:"message"`
}

type GreetingRequest struct {
	Name string `json:"name"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type RecordPreferenceRequest struct {
	SessionID string `json:"session_id"`
	Name      string `json:"name"`
	Value     string `json:"value"`
}

type RecordPreferenceResponse struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

type PreferencesResponse struct {
	SessionID   string            `json:"session_id"`
	Preferences map[string]string `json:"preferences"`
	UpdatedAt   string            `json:"updated_at"`
}

type QuoteResponse struct {
	Provider string         `json:"provider"`
	Status   string         `json:"status"`
	Offer    *OfferResponse `json:"offer,omitempty"`
	Message  string         `json:"message,omitempty"`
}

type OfferResponse struct {
	MinPrice    float64 `json:"min_price"`
	Currency    string  `json:"currency"`
	BookingLink string  `json:"booking_link,omitempty"`
}

type FlightPriceResponse struct {
	StartDate string        `json:"start_date"`
	EndDate   string        `json:"end_date"`
	Quote     QuoteResponse `json:"quote"`
}

type FlightScanResponse struct {
	StartDate string              `json:"start_date"`
	EndDate   string              `json:"end_date"`
	Results   []ScanEntryResponse `json:"results"`
}

type ScanEntryResponse struct {
	Destination string         `json:"destination"`
	Quote       *QuoteResponse `json:"quote,omitempty"`
	Error       string         `json:"error,omitempty"`
}
