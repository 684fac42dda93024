package models

// PolicyPremium carries the bound premium and the selected payment plan.
type PolicyPremium struct {
	Annual          int    `json:"annual"`
	PaymentPlan     string `json:"payment_plan"`
	MonthlyAmount   int    `json:"monthly_amount"`
	FirstPaymentDue string `json:"first_payment_due"`
	NextPaymentDate string `json:"next_payment_date"`
}

type CarrierContact struct {
	PolicyServicePhone string `json:"policy_service_phone"`
	ClaimsPhone        string `json:"claims_phone"`
	Email              string `json:"email"`
	ClaimsEmail        string `json:"claims_email"`
}

type Document struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	URL         string `json:"url"`
	SizeBytes   int    `json:"size_bytes,omitempty"`
	GeneratedAt string `json:"generated_at"`
}

// Policy is the bound record. Created only by bind; cancellation changes
// status fields on responses but never removes the record.
type Policy struct {
	PolicyID            string              `json:"policy_id"`
	PolicyNumber        string              `json:"policy_number"`
	Status              string              `json:"status"`
	InsuranceType       string              `json:"insurance_type"`
	CoverageType        string              `json:"coverage_type"`
	EffectiveDate       string              `json:"effective_date"`
	ExpirationDate      string              `json:"expiration_date"`
	InsuredName         string              `json:"insured_name"`
	InsuredAddress      string              `json:"insured_address"`
	CoverageLimits      map[string]float64  `json:"coverage_limits"`
	Premium             PolicyPremium       `json:"premium"`
	Deductible          interface{}         `json:"deductible,omitempty"`
	CarrierContact      CarrierContact      `json:"carrier_contact"`
	Documents           []Document          `json:"documents"`
	Endorsements        []Endorsement       `json:"endorsements"`
	AdditionalInsureds  []AdditionalInsured `json:"additional_insureds"`
	DaysUntilExpiration *int                `json:"days_until_expiration,omitempty"`
}

type PaymentConfirmation struct {
	PaymentID     string `json:"payment_id"`
	Amount        int    `json:"amount"`
	Currency      string `json:"currency"`
	PaymentMethod string `json:"payment_method"`
	Status        string `json:"status"`
	ReceiptURL    string `json:"receipt_url"`
}

type BindResult struct {
	Success               bool                `json:"success"`
	CarrierID             string              `json:"carrier_id"`
	BindID                string              `json:"bind_id"`
	Policy                Policy              `json:"policy"`
	PaymentConfirmation   PaymentConfirmation `json:"payment_confirmation"`
	BoundAt               string              `json:"bound_at"`
	ConfirmationEmailSent bool                `json:"confirmation_email_sent"`
	NextSteps             []string            `json:"next_steps"`
}

type PolicyView struct {
	Success bool   `json:"success"`
	Policy  Policy `json:"policy"`
}

type RenewalPremium struct {
	Annual    int `json:"annual"`
	Monthly   int `json:"monthly"`
	Quarterly int `json:"quarterly"`
}

type PremiumChange struct {
	Amount     int      `json:"amount"`
	Percentage int      `json:"percentage"`
	Reasons    []string `json:"reasons"`
}

type LoyaltyDiscount struct {
	Percentage  int    `json:"percentage"`
	Amount      int    `json:"amount"`
	Description string `json:"description"`
}

type RenewalCoverageQuote struct {
	QuoteID         string             `json:"quote_id"`
	CoverageType    string             `json:"coverage_type"`
	EffectiveDate   string             `json:"effective_date"`
	ExpirationDate  string             `json:"expiration_date"`
	CoverageLimits  map[string]float64 `json:"coverage_limits"`
	Premium         RenewalPremium     `json:"premium"`
	PremiumChange   PremiumChange      `json:"premium_change"`
	Deductible      interface{}        `json:"deductible,omitempty"`
	LoyaltyDiscount LoyaltyDiscount    `json:"loyalty_discount"`
	ValidUntil      string             `json:"valid_until"`
	Highlights      []string           `json:"highlights"`
}

type RenewalQuote struct {
	Success           bool                 `json:"success"`
	RenewalQuoteID    string               `json:"renewal_quote_id"`
	OriginalPolicyID  string               `json:"original_policy_id"`
	RenewalStatus     string               `json:"renewal_status"`
	Quote             RenewalCoverageQuote `json:"quote"`
	UnderwritingNotes []string             `json:"underwriting_notes"`
	BindEligibility   string               `json:"bind_eligibility"`
	NextSteps         []string             `json:"next_steps"`
}

type EndorsementPremiumChange struct {
	Amount           int    `json:"amount"`
	AnnualAdjustment int    `json:"annual_adjustment"`
	ProRatedCharge   int    `json:"pro_rated_charge"`
	Explanation      string `json:"explanation"`
}

// Endorsement is append-only: never mutated after creation.
type Endorsement struct {
	EndorsementID         string                   `json:"endorsement_id"`
	PolicyID              string                   `json:"policy_id"`
	Status                string                   `json:"status"`
	EndorsementType       string                   `json:"endorsement_type"`
	EffectiveDate         string                   `json:"effective_date"`
	PremiumChange         EndorsementPremiumChange `json:"premium_change"`
	Documents             []Document               `json:"documents"`
	ConfirmationEmailSent bool                     `json:"confirmation_email_sent"`
	NextSteps             []string                 `json:"next_steps"`
}

type UpdatedPolicySummary struct {
	TotalAnnualPremium int `json:"total_annual_premium"`
	EndorsementsCount  int `json:"endorsements_count"`
}

// EndorsementResult flattens the endorsement fields into the response body,
// alongside the success flag and updated policy summary.
type EndorsementResult struct {
	Success bool `json:"success"`
	Endorsement
	UpdatedPolicySummary UpdatedPolicySummary `json:"updated_policy_summary"`
}

type RefundBreakdown struct {
	TotalPremiumPaid int `json:"total_premium_paid"`
	DaysPolicyActive int `json:"days_policy_active"`
	TotalDays        int `json:"total_days"`
	PercentageEarned int `json:"percentage_earned"`
}

type Refund struct {
	EarnedPremium       int             `json:"earned_premium"`
	UnearnedPremium     int             `json:"unearned_premium"`
	CancellationFee     int             `json:"cancellation_fee"`
	ShortRatePenalty    int             `json:"short_rate_penalty"`
	NetRefund           int             `json:"net_refund"`
	RefundMethod        string          `json:"refund_method"`
	EstimatedRefundDate string          `json:"estimated_refund_date"`
	RefundBreakdown     RefundBreakdown `json:"refund_breakdown"`
}

type CancellationResult struct {
	Success               bool       `json:"success"`
	CancellationID        string     `json:"cancellation_id"`
	PolicyID              string     `json:"policy_id"`
	PolicyNumber          string     `json:"policy_number"`
	Status                string     `json:"status"`
	EffectiveDate         string     `json:"effective_date"`
	CancellationType      string     `json:"cancellation_type"`
	Refund                Refund     `json:"refund"`
	Documents             []Document `json:"documents"`
	ImportantNotes        []string   `json:"important_notes"`
	ConfirmationEmailSent bool       `json:"confirmation_email_sent"`
	NextSteps             []string   `json:"next_steps"`
}

type CertificateDocument struct {
	URL       string `json:"url"`
	Format    string `json:"format"`
	SizeBytes int    `json:"size_bytes"`
}

type CoverageSummary struct {
	CoverageType   string `json:"coverage_type"`
	Limits         string `json:"limits"`
	PolicyNumber   string `json:"policy_number"`
	EffectiveDate  string `json:"effective_date"`
	ExpirationDate string `json:"expiration_date"`
}

// CertificateHolderView is the holder as rendered on the certificate, with
// the address flattened to a single display line.
type CertificateHolderView struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Certificate is append-only, like Endorsement.
type Certificate struct {
	CertificateID           string                `json:"certificate_id"`
	PolicyID                string                `json:"policy_id"`
	CertificateNumber       string                `json:"certificate_number"`
	IssuedDate              string                `json:"issued_date"`
	CertificateHolder       CertificateHolderView `json:"certificate_holder"`
	Format                  string                `json:"format"`
	Document                CertificateDocument   `json:"document"`
	GeneratedAt             string                `json:"generated_at"`
	ExpiresAt               string                `json:"expires_at"`
	CoverageSummary         CoverageSummary       `json:"coverage_summary"`
	DescriptionOfOperations string                `json:"description_of_operations"`
	SpecialProvisions       []string              `json:"special_provisions"`
	ConfirmationEmailSent   bool                  `json:"confirmation_email_sent"`
	NextSteps               []string              `json:"next_steps"`
}

// CertificateResult flattens the certificate fields into the response body.
type CertificateResult struct {
	Success bool `json:"success"`
	Certificate
}
