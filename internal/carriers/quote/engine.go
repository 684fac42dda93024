// Package quote implements quote synthesis with content-addressable caching.
package quote

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"carrier-simulator/internal/carriers/ident"
	"carrier-simulator/internal/carriers/models"
	"carrier-simulator/internal/carriers/registry"
	"carrier-simulator/internal/common/errors"
	"carrier-simulator/internal/common/logger"
	"carrier-simulator/internal/common/metrics"
)

const (
	quoteValidity   = 30 * 24 * time.Hour
	referenceLimit  = 1000000
	revenueScale    = 5000000
	packageDiscount = 5 // percent
	declineCode     = "OUTSIDE_APPETITE"
)

// Engine generates quotes. Semantically identical requests (per the cache-key
// projection) return the exact same response; miss handling is serialized so
// concurrent identical misses cannot cache two different outcomes.
type Engine struct {
	cache CacheStore
	index *quoteIndex
	log   logger.Logger

	mu sync.Mutex

	// Injection points for tests. The approval roll is the one intentionally
	// non-deterministic step of the pipeline, modeling underwriting variance.
	now          func() time.Time
	approvalRoll func() float64
}

func NewEngine(cache CacheStore, log logger.Logger) *Engine {
	return &Engine{
		cache:        cache,
		index:        newQuoteIndex(),
		log:          log.WithFields(map[string]interface{}{"component": "quote-engine"}),
		now:          time.Now,
		approvalRoll: rand.Float64,
	}
}

// GenerateQuote prices a request against a carrier, returning the cached
// response when an identical request was already priced.
func (e *Engine) GenerateQuote(ctx context.Context, carrierID string, req models.QuoteRequest) (*models.QuoteResponse, error) {
	cfg, ok := registry.Get(carrierID)
	if !ok {
		metrics.QuoteRequests.WithLabelValues(carrierID, "carrier_not_found").Inc()
		return nil, errors.NewCarrierNotFoundError(carrierID)
	}

	cacheKey := BuildCacheKey(carrierID, req)

	// Lookup-then-insert for a given key must behave as if serialized; a
	// single lock is enough for simulation traffic.
	e.mu.Lock()
	defer e.mu.Unlock()

	cached, err := e.cache.Get(ctx, cacheKey)
	if err != nil && err != ErrCacheMiss {
		e.log.Warn("cache lookup failed, generating fresh quote", map[string]interface{}{
			"cacheKey": truncateKey(cacheKey),
			"error":    err.Error(),
		})
	}
	if cached != nil {
		e.log.Info("cache hit", map[string]interface{}{"cacheKey": truncateKey(cacheKey)})
		metrics.QuoteCacheHits.Inc()
		metrics.QuoteRequests.WithLabelValues(carrierID, "cached").Inc()

		// Return the stored response untouched apart from the hit markers:
		// ids, premiums and valid_until must be byte-identical to the
		// original synthesis.
		resp := *cached
		resp.Cached = true
		resp.CacheKey = truncateKey(cacheKey)
		return &resp, nil
	}

	e.log.Info("cache miss, generating new quote", map[string]interface{}{"cacheKey": truncateKey(cacheKey)})
	metrics.QuoteCacheMisses.Inc()
	metrics.QuoteRequests.WithLabelValues(carrierID, "generated").Inc()

	resp := e.synthesize(cfg, carrierID, req, cacheKey)

	if err := e.cache.Set(ctx, cacheKey, resp); err != nil {
		e.log.Warn("cache store failed", map[string]interface{}{
			"cacheKey": truncateKey(cacheKey),
			"error":    err.Error(),
		})
	}

	record := models.QuoteRecord{
		Response:  *resp,
		Request:   req,
		CreatedAt: resp.Timestamp,
	}
	e.index.put(resp.CarrierQuoteID, record)
	for i := range resp.Quotes {
		perCoverage := record
		selected := resp.Quotes[i]
		perCoverage.SelectedQuote = &selected
		e.index.put(selected.QuoteID, perCoverage)
	}

	return resp, nil
}

func (e *Engine) synthesize(cfg registry.CarrierConfig, carrierID string, req models.QuoteRequest, cacheKey string) *models.QuoteResponse {
	now := e.now()
	timestamp := now.UTC().Format(time.RFC3339)
	validUntil := now.Add(quoteValidity).UTC()

	quotes := make([]models.Quote, 0, len(req.CoverageRequests))
	for _, cr := range req.CoverageRequests {
		quotes = append(quotes, e.priceCoverage(cfg, req, cr, cacheKey))
	}

	var discount *models.PackageDiscount
	if len(quotes) > 1 && allQuoted(quotes) {
		total := 0
		for _, q := range quotes {
			total += q.Premium.Annual
		}
		discount = &models.PackageDiscount{
			Available:          true,
			DiscountPercentage: packageDiscount,
			DiscountAmount:     roundInt(float64(total) * packageDiscount / 100),
			Description:        "Multi-coverage package discount",
			AppliedTo:          "all_coverages",
		}
	}

	return &models.QuoteResponse{
		Success:          true,
		CarrierID:        carrierID,
		CarrierName:      cfg.Name,
		CarrierQuoteID:   ident.QuoteID(cfg.Prefix, "main", ""),
		RequestedQuoteID: req.QuoteRequestID,
		Timestamp:        timestamp,
		ValidUntil:       validUntil.Format(time.RFC3339),
		Cached:           false,
		Quotes:           quotes,
		PackageDiscount:  discount,
		UnderwritingSummary: models.UnderwritingSummary{
			OverallRiskRating:  "preferred",
			ApprovalLikelihood: "high",
			Notes: []string{
				fmt.Sprintf("%s standard underwriting", cfg.Name),
				"All requested coverages reviewed",
				"Competitive pricing applied",
			},
		},
		BindEligibility: "eligible_immediate",
		NextSteps: []string{
			"Review quotes and select coverages",
			"Proceed to bind endpoint to purchase",
			fmt.Sprintf("Quotes valid until %s", validUntil.Format("2006-01-02")),
		},
	}
}

func (e *Engine) priceCoverage(cfg registry.CarrierConfig, req models.QuoteRequest, cr models.CoverageRequest, cacheKey string) models.Quote {
	// The quote id is seeded by the cache key, so it is itself a deterministic
	// function of the pricing-relevant fields.
	quoteID := ident.QuoteID(cfg.Prefix, cr.CoverageType, cacheKey)

	base := basePremium(cr, req.BusinessInfo, cacheKey)
	annual := roundInt(float64(base) * cfg.PricingMultiplier)

	approved := e.approvalRoll() < cfg.ApprovalRate

	q := models.Quote{
		QuoteID:        quoteID,
		CoverageType:   cr.CoverageType,
		Status:         "quoted",
		CoverageLimits: cr.RequestedLimits,
		Premium: models.Premium{
			Annual:                annual,
			Monthly:               roundInt(float64(annual) / 12),
			Quarterly:             roundInt(float64(annual) / 4),
			PaymentInFullDiscount: roundInt(float64(annual) * 0.05),
		},
		Deductible:        cr.Deductible(),
		EffectiveDate:     cr.EffectiveDate,
		ExpirationDate:    addYear(cr.EffectiveDate, e.now),
		PolicyForm:        registry.PolicyForm(cr.CoverageType),
		Highlights:        registry.Highlights(cr.CoverageType),
		Exclusions:        registry.Exclusions(cr.CoverageType),
		OptionalCoverages: registry.OptionalCoverages(cr.CoverageType),
		UnderwritingNotes: registry.UnderwritingNotes(req.BusinessInfo, req.PersonalInfo),
	}

	if !approved {
		q.Status = "declined"
		q.DeclineReason = fmt.Sprintf(
			"%s has determined that this %s coverage request is outside our current risk appetite. Please consider alternative carriers.",
			cfg.Name, cr.CoverageType,
		)
		q.DeclineCode = declineCode
	}

	return q
}

// basePremium computes the carrier-independent premium for one coverage:
// type base, scaled by the requested limit and business revenue, with a
// seeded ±10% variation.
func basePremium(cr models.CoverageRequest, businessInfo *models.BusinessInfo, seed string) int {
	base := registry.BasePremium(cr.CoverageType)

	if v := firstLimit(cr.RequestedLimits); v > 0 {
		base = base * (v / referenceLimit)
	}

	if businessInfo != nil && businessInfo.FinancialInfo != nil && businessInfo.FinancialInfo.AnnualRevenue > 0 {
		base = base * (1 + businessInfo.FinancialInfo.AnnualRevenue/revenueScale)
	}

	seedValue := float64(ident.SeededValue(seed+cr.CoverageType, 1000)) / 1000
	factor := 0.9 + seedValue*0.2

	return roundInt(base * factor)
}

// firstLimit picks the limit the premium scales by. Limits arrive as a map,
// so the first key in sorted order is the deterministic choice.
func firstLimit(limits map[string]float64) float64 {
	if len(limits) == 0 {
		return 0
	}
	keys := make([]string, 0, len(limits))
	for k := range limits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return limits[keys[0]]
}

func allQuoted(quotes []models.Quote) bool {
	for _, q := range quotes {
		if q.Status != "quoted" {
			return false
		}
	}
	return true
}

// GetQuote looks up a quote record by umbrella or per-coverage id.
func (e *Engine) GetQuote(quoteID string) (models.QuoteRecord, error) {
	rec, ok := e.index.get(quoteID)
	if !ok {
		return models.QuoteRecord{}, errors.NewQuoteNotFoundError(quoteID)
	}
	return rec, nil
}

// CacheStats reports cache and index occupancy for diagnostics.
func (e *Engine) CacheStats(ctx context.Context) (models.CacheStats, error) {
	keys, err := e.cache.Keys(ctx)
	if err != nil {
		return models.CacheStats{}, err
	}
	truncated := make([]string, 0, len(keys))
	for _, k := range keys {
		truncated = append(truncated, truncateKey(k)+"...")
	}
	sort.Strings(truncated)
	return models.CacheStats{
		TotalCachedQuotes: len(keys),
		TotalQuotesByID:   e.index.size(),
		CacheKeys:         truncated,
	}, nil
}

// ClearCache drops the quote cache. The quote-by-id index is untouched:
// already issued quote ids stay bindable.
func (e *Engine) ClearCache(ctx context.Context) error {
	if err := e.cache.Clear(ctx); err != nil {
		return err
	}
	e.log.Info("quote cache cleared", nil)
	return nil
}

func roundInt(v float64) int {
	return int(math.Round(v))
}

// addYear computes the expiration date one year after the effective date.
func addYear(effectiveDate string, now func() time.Time) string {
	t, err := time.Parse("2006-01-02", effectiveDate)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, effectiveDate); err != nil {
			t = now()
		}
	}
	return t.AddDate(1, 0, 0).Format("2006-01-02")
}
