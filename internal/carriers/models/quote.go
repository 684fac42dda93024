package models

// Premium is the payment breakdown of a single quoted coverage.
type Premium struct {
	Annual                int `json:"annual"`
	Monthly               int `json:"monthly"`
	Quarterly             int `json:"quarterly"`
	PaymentInFullDiscount int `json:"payment_in_full_discount"`
}

type OptionalCoverage struct {
	Name              string `json:"name"`
	AdditionalPremium int    `json:"additional_premium"`
	Description       string `json:"description"`
}

// Quote is one priced (or declined) coverage within a QuoteResponse.
type Quote struct {
	QuoteID           string             `json:"quote_id"`
	CoverageType      string             `json:"coverage_type"`
	Status            string             `json:"status"` // quoted | declined
	CoverageLimits    map[string]float64 `json:"coverage_limits"`
	Premium           Premium            `json:"premium"`
	Deductible        interface{}        `json:"deductible,omitempty"`
	EffectiveDate     string             `json:"effective_date"`
	ExpirationDate    string             `json:"expiration_date"`
	PolicyForm        string             `json:"policy_form"`
	Highlights        []string           `json:"highlights"`
	Exclusions        []string           `json:"exclusions"`
	OptionalCoverages []OptionalCoverage `json:"optional_coverages"`
	UnderwritingNotes []string           `json:"underwriting_notes"`
	DeclineReason     string             `json:"decline_reason,omitempty"`
	DeclineCode       string             `json:"decline_code,omitempty"`
}

type PackageDiscount struct {
	Available          bool   `json:"available"`
	DiscountPercentage int    `json:"discount_percentage"`
	DiscountAmount     int    `json:"discount_amount"`
	Description        string `json:"description"`
	AppliedTo          string `json:"applied_to"`
}

type UnderwritingSummary struct {
	OverallRiskRating  string   `json:"overall_risk_rating"`
	ApprovalLikelihood string   `json:"approval_likelihood"`
	Notes              []string `json:"notes"`
}

// QuoteResponse is the umbrella pricing result for one request. ValidUntil is
// stamped at first synthesis and comes back verbatim on cache hits.
type QuoteResponse struct {
	Success             bool                `json:"success"`
	CarrierID           string              `json:"carrier_id"`
	CarrierName         string              `json:"carrier_name"`
	CarrierQuoteID      string              `json:"carrier_quote_id"`
	RequestedQuoteID    string              `json:"requested_quote_id"`
	Timestamp           string              `json:"timestamp"`
	ValidUntil          string              `json:"valid_until"`
	Cached              bool                `json:"cached"`
	CacheKey            string              `json:"cache_key,omitempty"`
	Quotes              []Quote             `json:"quotes"`
	PackageDiscount     *PackageDiscount    `json:"package_discount"`
	UnderwritingSummary UnderwritingSummary `json:"underwriting_summary"`
	BindEligibility     string              `json:"bind_eligibility"`
	NextSteps           []string            `json:"next_steps"`
}

// QuoteRecord is what the quote index stores per id: the full response, the
// originating request, and (for per-coverage ids) the coverage it refers to.
type QuoteRecord struct {
	Response      QuoteResponse `json:"response"`
	SelectedQuote *Quote        `json:"selected_quote,omitempty"`
	Request       QuoteRequest  `json:"quote_request"`
	CreatedAt     string        `json:"created_at"`
}

// Selected resolves the quote a lookup refers to, defaulting to the first
// coverage when the umbrella id was used.
func (r QuoteRecord) Selected() *Quote {
	if r.SelectedQuote != nil {
		return r.SelectedQuote
	}
	if len(r.Response.Quotes) > 0 {
		return &r.Response.Quotes[0]
	}
	return nil
}

// CacheStats reports quote cache occupancy for the diagnostics endpoint.
type CacheStats struct {
	TotalCachedQuotes int      `json:"total_cached_quotes"`
	TotalQuotesByID   int      `json:"total_quotes_by_id"`
	CacheKeys         []string `json:"cache_keys"`
}
