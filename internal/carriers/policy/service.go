// Package policy implements the post-quote lifecycle: bind, retrieval,
// renewal, endorsement, cancellation and certificate issuance.
package policy

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"carrier-simulator/internal/carriers/ident"
	"carrier-simulator/internal/carriers/models"
	"carrier-simulator/internal/carriers/registry"
	"carrier-simulator/internal/common/errors"
	"carrier-simulator/internal/common/logger"
	"carrier-simulator/internal/common/metrics"
)

const (
	documentBaseURL     = "https://carrier-simulator.example.com"
	endorsementFee      = 25
	cancellationFee     = 50
	loyaltyDiscountPct  = 5
	policyTermDays      = 365
	refundProcessingDay = 15
)

// QuoteSource resolves previously issued quote ids. Satisfied by the quote
// engine.
type QuoteSource interface {
	GetQuote(quoteID string) (models.QuoteRecord, error)
}

// Service owns the policy lifecycle. Responses describe what the operation
// would do; only bind and the append-only histories mutate stored state.
type Service struct {
	quotes QuoteSource
	store  *store
	log    logger.Logger

	now func() time.Time
}

func NewService(quotes QuoteSource, log logger.Logger) *Service {
	return &Service{
		quotes: quotes,
		store:  newStore(),
		log:    log.WithFields(map[string]interface{}{"component": "policy-service"}),
		now:    time.Now,
	}
}

// Bind converts an unexpired quote into a bound policy.
func (s *Service) Bind(ctx context.Context, carrierID string, req models.BindRequest) (*models.BindResult, error) {
	cfg, ok := registry.Get(carrierID)
	if !ok {
		metrics.PolicyOperations.WithLabelValues("bind", "carrier_not_found").Inc()
		return nil, errors.NewCarrierNotFoundError(carrierID)
	}

	record, err := s.quotes.GetQuote(req.QuoteID)
	if err != nil {
		metrics.PolicyOperations.WithLabelValues("bind", "quote_not_found").Inc()
		return nil, err
	}

	validUntil, parseErr := time.Parse(time.RFC3339, record.Response.ValidUntil)
	if parseErr == nil && s.now().After(validUntil) {
		metrics.PolicyOperations.WithLabelValues("bind", "quote_expired").Inc()
		return nil, errors.NewQuoteExpiredError(req.QuoteID, record.Response.ValidUntil)
	}

	selected := record.Selected()
	policyID := ident.PolicyID(cfg.Prefix)
	policyNumber := ident.PolicyNumber(cfg.Prefix, selected.CoverageType)
	now := s.now().UTC()
	nowTS := now.Format(time.RFC3339)

	recurring := selected.Premium.Annual
	switch req.PaymentPlan {
	case "monthly":
		recurring = selected.Premium.Monthly
	case "quarterly":
		recurring = selected.Premium.Quarterly
	}

	quoteReq := record.Request
	insuredName := ""
	if quoteReq.BusinessInfo != nil && quoteReq.BusinessInfo.LegalName != "" {
		insuredName = quoteReq.BusinessInfo.LegalName
	} else if quoteReq.PersonalInfo != nil {
		insuredName = fmt.Sprintf("%s %s", quoteReq.PersonalInfo.FirstName, quoteReq.PersonalInfo.LastName)
	}

	var insuredAddr *models.Address
	if quoteReq.BusinessInfo != nil && quoteReq.BusinessInfo.Address != nil {
		insuredAddr = quoteReq.BusinessInfo.Address
	} else if quoteReq.PersonalInfo != nil {
		insuredAddr = quoteReq.PersonalInfo.Address
	}

	carrierDomain := strings.ReplaceAll(carrierID, "_", "")

	pol := models.Policy{
		PolicyID:       policyID,
		PolicyNumber:   policyNumber,
		Status:         "bound",
		InsuranceType:  quoteReq.InsuranceType,
		CoverageType:   selected.CoverageType,
		EffectiveDate:  req.EffectiveDate,
		ExpirationDate: selected.ExpirationDate,
		InsuredName:    insuredName,
		InsuredAddress: formatAddress(insuredAddr),
		CoverageLimits: selected.CoverageLimits,
		Premium: models.PolicyPremium{
			Annual:          selected.Premium.Annual,
			PaymentPlan:     req.PaymentPlan,
			MonthlyAmount:   recurring,
			FirstPaymentDue: req.EffectiveDate,
			NextPaymentDate: nextPaymentDate(req.EffectiveDate, req.PaymentPlan),
		},
		Deductible: selected.Deductible,
		CarrierContact: models.CarrierContact{
			PolicyServicePhone: "1-800-555-0300",
			ClaimsPhone:        "1-800-555-0400",
			Email:              fmt.Sprintf("service@%s.com", carrierDomain),
			ClaimsEmail:        fmt.Sprintf("claims@%s.com", carrierDomain),
		},
		Documents: []models.Document{
			{
				Type:        "policy",
				Name:        fmt.Sprintf("%s Policy", selected.CoverageType),
				URL:         fmt.Sprintf("%s/documents/%s/policy.pdf", documentBaseURL, policyID),
				SizeBytes:   524288,
				GeneratedAt: nowTS,
			},
			{
				Type:        "declarations",
				Name:        "Declarations Page",
				URL:         fmt.Sprintf("%s/documents/%s/declarations.pdf", documentBaseURL, policyID),
				SizeBytes:   102400,
				GeneratedAt: nowTS,
			},
		},
		Endorsements:       []models.Endorsement{},
		AdditionalInsureds: additionalInsureds(req.InsuredInfo),
	}

	paymentID := "pay_" + uuid.NewString()
	result := &models.BindResult{
		Success:   true,
		CarrierID: carrierID,
		BindID:    fmt.Sprintf("%s-B-%d", cfg.Prefix, now.UnixMilli()),
		Policy:    pol,
		PaymentConfirmation: models.PaymentConfirmation{
			PaymentID:     paymentID,
			Amount:        recurring,
			Currency:      "USD",
			PaymentMethod: fmt.Sprintf("card_ending_%04d", rand.Intn(10000)),
			Status:        "succeeded",
			ReceiptURL:    fmt.Sprintf("%s/receipts/%s.pdf", documentBaseURL, paymentID),
		},
		BoundAt:               nowTS,
		ConfirmationEmailSent: true,
		NextSteps: []string{
			"Policy documents are ready for download",
			fmt.Sprintf("First payment will be charged on %s", req.EffectiveDate),
			"Certificate of insurance available immediately",
			"24/7 customer service available",
		},
	}

	s.store.putPolicy(policyID, policyRecord{
		Policy:    pol,
		Bind:      req,
		Quote:     record,
		CreatedAt: nowTS,
	})

	s.log.Info("policy bound", map[string]interface{}{
		"carrierID": carrierID,
		"policyID":  policyID,
		"quoteID":   req.QuoteID,
	})
	metrics.PoliciesBound.WithLabelValues(carrierID).Inc()
	metrics.PolicyOperations.WithLabelValues("bind", "success").Inc()

	return result, nil
}

// Get returns a bound policy with its current term status.
func (s *Service) Get(ctx context.Context, carrierID, policyID string) (*models.PolicyView, error) {
	rec, ok := s.store.getPolicy(policyID)
	if !ok {
		metrics.PolicyOperations.WithLabelValues("get", "not_found").Inc()
		return nil, errors.NewPolicyNotFoundError(policyID)
	}

	pol := rec.Policy
	days := daysBetween(s.now(), pol.ExpirationDate)
	pol.DaysUntilExpiration = &days
	if days < 0 {
		pol.Status = "expired"
	} else {
		pol.Status = "active"
	}

	metrics.PolicyOperations.WithLabelValues("get", "success").Inc()
	return &models.PolicyView{Success: true, Policy: pol}, nil
}

// Renew prices a renewal term. The stored policy is not modified; the caller
// binds the renewal quote separately.
func (s *Service) Renew(ctx context.Context, carrierID, policyID string, req models.RenewRequest) (*models.RenewalQuote, error) {
	cfg, ok := registry.Get(carrierID)
	if !ok {
		metrics.PolicyOperations.WithLabelValues("renew", "carrier_not_found").Inc()
		return nil, errors.NewCarrierNotFoundError(carrierID)
	}
	rec, found := s.store.getPolicy(policyID)
	if !found {
		metrics.PolicyOperations.WithLabelValues("renew", "not_found").Inc()
		return nil, errors.NewPolicyNotFoundError(policyID)
	}

	original := rec.Policy
	base := float64(original.Premium.Annual)
	newPremium := base
	var reasons []string

	if req.BusinessChanges != nil && req.BusinessChanges.RevenueChanged {
		newPremium += base * 0.10
		reasons = append(reasons, fmt.Sprintf("Revenue increase: +10%% (+$%d premium)", roundInt(base*0.10)))
	}
	if req.BusinessChanges != nil && req.BusinessChanges.EmployeesChanged {
		newPremium += base * 0.05
		reasons = append(reasons, fmt.Sprintf("Employee count increase: +5%% (+$%d premium)", roundInt(base*0.05)))
	}
	if req.CoverageChanges != nil && req.CoverageChanges.IncreaseLimits {
		newPremium += base * 0.15
		reasons = append(reasons, fmt.Sprintf("Limit increase: +15%% (+$%d premium)", roundInt(base*0.15)))
	}

	discount := newPremium * loyaltyDiscountPct / 100
	newPremium -= discount
	reasons = append(reasons, fmt.Sprintf("Loyalty discount: -%d%% (-$%d premium)", loyaltyDiscountPct, roundInt(discount)))

	annual := roundInt(newPremium)

	effective := req.DesiredEffectiveDate
	if effective == "" {
		effective = original.ExpirationDate
	}

	limits := original.CoverageLimits
	if req.CoverageChanges != nil && len(req.CoverageChanges.NewLimits) > 0 {
		limits = req.CoverageChanges.NewLimits
	}

	now := s.now().UTC()
	renewalQuoteID := fmt.Sprintf("%s-RQ-%d", cfg.Prefix, now.UnixMilli())

	metrics.PolicyOperations.WithLabelValues("renew", "success").Inc()
	return &models.RenewalQuote{
		Success:          true,
		RenewalQuoteID:   renewalQuoteID,
		OriginalPolicyID: policyID,
		RenewalStatus:    "quoted",
		Quote: models.RenewalCoverageQuote{
			QuoteID:        fmt.Sprintf("%s-%s", renewalQuoteID, original.CoverageType),
			CoverageType:   original.CoverageType,
			EffectiveDate:  effective,
			ExpirationDate: addYear(effective),
			CoverageLimits: limits,
			Premium: models.RenewalPremium{
				Annual:    annual,
				Monthly:   roundInt(float64(annual) / 12),
				Quarterly: roundInt(float64(annual) / 4),
			},
			PremiumChange: models.PremiumChange{
				Amount:     annual - original.Premium.Annual,
				Percentage: roundInt(float64(annual-original.Premium.Annual) / base * 100),
				Reasons:    reasons,
			},
			Deductible: original.Deductible,
			LoyaltyDiscount: models.LoyaltyDiscount{
				Percentage:  loyaltyDiscountPct,
				Amount:      roundInt(discount),
				Description: "Claims-free discount",
			},
			ValidUntil: now.Add(30 * 24 * time.Hour).Format(time.RFC3339),
			Highlights: []string{
				"All prior endorsements maintained",
				"No underwriting required for renewal",
				"Streamlined renewal process",
			},
		},
		UnderwritingNotes: []string{
			"Positive renewal eligibility",
			"No claims in prior term",
			"Automatic renewal available",
		},
		BindEligibility: "eligible_automatic",
		NextSteps: []string{
			"Review renewal quote",
			"Accept renewal to bind new policy",
			fmt.Sprintf("Current policy expires %s", original.ExpirationDate),
		},
	}, nil
}

// Endorse records a mid-term change for a flat fee.
func (s *Service) Endorse(ctx context.Context, carrierID, policyID string, req models.EndorseRequest) (*models.EndorsementResult, error) {
	cfg, ok := registry.Get(carrierID)
	if !ok {
		metrics.PolicyOperations.WithLabelValues("endorse", "carrier_not_found").Inc()
		return nil, errors.NewCarrierNotFoundError(carrierID)
	}
	rec, found := s.store.getPolicy(policyID)
	if !found {
		metrics.PolicyOperations.WithLabelValues("endorse", "not_found").Inc()
		return nil, errors.NewPolicyNotFoundError(policyID)
	}

	now := s.now().UTC()
	endorsementID := fmt.Sprintf("%s-END-%d", cfg.Prefix, now.UnixMilli())

	endorsement := models.Endorsement{
		EndorsementID:   endorsementID,
		PolicyID:        policyID,
		Status:          "approved",
		EndorsementType: req.EndorsementType,
		EffectiveDate:   req.EffectiveDate,
		PremiumChange: models.EndorsementPremiumChange{
			Amount:           endorsementFee,
			AnnualAdjustment: endorsementFee,
			ProRatedCharge:   roundInt(endorsementFee * 0.92),
			Explanation:      "Endorsement fee, pro-rated to policy expiration",
		},
		Documents: []models.Document{
			{
				Type:        "endorsement",
				Name:        fmt.Sprintf("Endorsement - %s", strings.ReplaceAll(req.EndorsementType, "_", " ")),
				URL:         fmt.Sprintf("%s/documents/%s.pdf", documentBaseURL, endorsementID),
				GeneratedAt: now.Format(time.RFC3339),
			},
		},
		ConfirmationEmailSent: true,
		NextSteps: []string{
			fmt.Sprintf("Endorsement effective %s", req.EffectiveDate),
			"Updated documents available for download",
			"New certificate of insurance can be generated",
		},
	}

	count := s.store.addEndorsement(policyID, endorsement)

	metrics.PolicyOperations.WithLabelValues("endorse", "success").Inc()
	return &models.EndorsementResult{
		Success:     true,
		Endorsement: endorsement,
		UpdatedPolicySummary: models.UpdatedPolicySummary{
			TotalAnnualPremium: rec.Policy.Premium.Annual + endorsementFee,
			EndorsementsCount:  count,
		},
	}, nil
}

// Cancel quotes a cancellation and its refund. The stored policy record is
// left untouched; status changes only in the response.
func (s *Service) Cancel(ctx context.Context, carrierID, policyID string, req models.CancelRequest) (*models.CancellationResult, error) {
	cfg, ok := registry.Get(carrierID)
	if !ok {
		metrics.PolicyOperations.WithLabelValues("cancel", "carrier_not_found").Inc()
		return nil, errors.NewCarrierNotFoundError(carrierID)
	}
	rec, found := s.store.getPolicy(policyID)
	if !found {
		metrics.PolicyOperations.WithLabelValues("cancel", "not_found").Inc()
		return nil, errors.NewPolicyNotFoundError(policyID)
	}

	pol := rec.Policy
	// Days active may be negative when the cancellation predates the
	// effective date; the pro-rata math carries the sign through.
	daysActive := daysBetweenDates(pol.EffectiveDate, req.EffectiveDate)
	fractionEarned := float64(daysActive) / policyTermDays
	earned := roundInt(float64(pol.Premium.Annual) * fractionEarned)
	unearned := pol.Premium.Annual - earned
	netRefund := unearned - cancellationFee

	now := s.now().UTC()

	metrics.PolicyOperations.WithLabelValues("cancel", "success").Inc()
	return &models.CancellationResult{
		Success:          true,
		CancellationID:   fmt.Sprintf("%s-CAN-%d", cfg.Prefix, now.UnixMilli()),
		PolicyID:         policyID,
		PolicyNumber:     pol.PolicyNumber,
		Status:           "pending_cancellation",
		EffectiveDate:    req.EffectiveDate,
		CancellationType: req.CancellationType,
		Refund: models.Refund{
			EarnedPremium:       earned,
			UnearnedPremium:     unearned,
			CancellationFee:     cancellationFee,
			ShortRatePenalty:    0,
			NetRefund:           netRefund,
			RefundMethod:        "original_payment_method",
			EstimatedRefundDate: addDays(req.EffectiveDate, refundProcessingDay),
			RefundBreakdown: models.RefundBreakdown{
				TotalPremiumPaid: earned,
				DaysPolicyActive: daysActive,
				TotalDays:        policyTermDays,
				PercentageEarned: roundInt(fractionEarned * 100),
			},
		},
		Documents: []models.Document{
			{
				Type:        "cancellation_notice",
				Name:        "Cancellation Notice",
				URL:         fmt.Sprintf("%s/documents/cancellation_%d.pdf", documentBaseURL, now.UnixMilli()),
				GeneratedAt: now.Format(time.RFC3339),
			},
		},
		ImportantNotes: []string{
			fmt.Sprintf("Policy coverage ends at 12:01 AM on %s", req.EffectiveDate),
			"No coverage after cancellation date",
			"Refund will be processed within 15 business days",
			"Consider obtaining replacement coverage before cancellation",
		},
		ConfirmationEmailSent: true,
		NextSteps: []string{
			"Cancellation notice sent to your email",
			fmt.Sprintf("Secure replacement coverage before %s", req.EffectiveDate),
			fmt.Sprintf("Refund of $%d will be issued", netRefund),
		},
	}, nil
}

// Certificate issues a proof-of-insurance document for a policy.
func (s *Service) Certificate(ctx context.Context, carrierID, policyID string, req models.CertificateRequest) (*models.CertificateResult, error) {
	cfg, ok := registry.Get(carrierID)
	if !ok {
		metrics.PolicyOperations.WithLabelValues("certificate", "carrier_not_found").Inc()
		return nil, errors.NewCarrierNotFoundError(carrierID)
	}
	rec, found := s.store.getPolicy(policyID)
	if !found {
		metrics.PolicyOperations.WithLabelValues("certificate", "not_found").Inc()
		return nil, errors.NewPolicyNotFoundError(policyID)
	}

	pol := rec.Policy
	now := s.now().UTC()
	certificateID := fmt.Sprintf("%s-CERT-%d", cfg.Prefix, now.UnixMilli())

	specials := req.SpecialProvisions
	if specials == nil {
		specials = []string{}
	}

	cert := models.Certificate{
		CertificateID:     certificateID,
		PolicyID:          policyID,
		CertificateNumber: "CERT-" + certificateID,
		IssuedDate:        now.Format("2006-01-02"),
		CertificateHolder: models.CertificateHolderView{
			Name:    req.CertificateHolder.Name,
			Address: formatAddress(&req.CertificateHolder.Address),
		},
		Format: "ACORD 25",
		Document: models.CertificateDocument{
			URL:       fmt.Sprintf("%s/certificates/%s.pdf", documentBaseURL, certificateID),
			Format:    "PDF",
			SizeBytes: 245760,
		},
		GeneratedAt: now.Format(time.RFC3339),
		ExpiresAt:   pol.ExpirationDate,
		CoverageSummary: models.CoverageSummary{
			CoverageType:   pol.CoverageType,
			Limits:         joinLimits(pol.CoverageLimits),
			PolicyNumber:   pol.PolicyNumber,
			EffectiveDate:  pol.EffectiveDate,
			ExpirationDate: pol.ExpirationDate,
		},
		DescriptionOfOperations: req.DescriptionOfOperations,
		SpecialProvisions:       specials,
		ConfirmationEmailSent:   true,
		NextSteps: []string{
			"Certificate ready for download",
			"Valid until policy expiration",
			"Can generate additional certificates as needed",
		},
	}

	s.store.addCertificate(policyID, cert)

	metrics.PolicyOperations.WithLabelValues("certificate", "success").Inc()
	return &models.CertificateResult{Success: true, Certificate: cert}, nil
}

func formatAddress(a *models.Address) string {
	if a == nil {
		return ""
	}
	return fmt.Sprintf("%s, %s, %s %s", a.Street, a.City, a.State, a.Zip)
}

func additionalInsureds(info models.InsuredInfo) []models.AdditionalInsured {
	if info.AdditionalInsureds == nil {
		return []models.AdditionalInsured{}
	}
	return info.AdditionalInsureds
}

func nextPaymentDate(effectiveDate, paymentPlan string) string {
	t := parseDate(effectiveDate)
	switch paymentPlan {
	case "monthly":
		t = t.AddDate(0, 1, 0)
	case "quarterly":
		t = t.AddDate(0, 3, 0)
	default:
		t = t.AddDate(1, 0, 0)
	}
	return t.Format("2006-01-02")
}

func addYear(date string) string {
	return parseDate(date).AddDate(1, 0, 0).Format("2006-01-02")
}

func addDays(date string, days int) string {
	return parseDate(date).AddDate(0, 0, days).Format("2006-01-02")
}

// daysBetween counts whole days from now until a yyyy-mm-dd date, negative
// when the date has passed.
func daysBetween(now time.Time, date string) int {
	return int(math.Floor(parseDate(date).Sub(now).Hours() / 24))
}

func daysBetweenDates(from, to string) int {
	return int(math.Floor(parseDate(to).Sub(parseDate(from)).Hours() / 24))
}

func parseDate(s string) time.Time {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

func joinLimits(limits map[string]float64) string {
	parts := make([]string, 0, len(limits))
	for _, k := range sortedKeys(limits) {
		parts = append(parts, formatLimit(limits[k]))
	}
	return strings.Join(parts, "/")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatLimit(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
