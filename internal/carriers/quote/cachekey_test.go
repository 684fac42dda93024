package quote

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"

	"carrier-simulator/internal/carriers/models"
)

// ==========================
// Test Helper Functions
// ==========================

func baseQuoteRequest() models.QuoteRequest {
	return models.QuoteRequest{
		QuoteRequestID: "req-001",
		InsuranceType:  "commercial",
		BusinessInfo: &models.BusinessInfo{
			LegalName:    "Acme Robotics LLC",
			Industry:     "manufacturing",
			IndustryCode: "333318",
			Address: &models.Address{
				Street: "500 Industrial Way",
				City:   "Austin",
				State:  "TX",
				Zip:    "78701",
			},
			FinancialInfo: &models.FinancialInfo{
				AnnualRevenue:     2500000,
				FullTimeEmployees: 40,
			},
		},
		CoverageRequests: []models.CoverageRequest{
			{
				CoverageType:    "general_liability",
				RequestedLimits: map[string]float64{"each_occurrence": 1000000, "aggregate": 2000000},
				EffectiveDate:   "2026-10-01",
			},
		},
	}
}

func float64Ptr(v float64) *float64 { return &v }

// ==========================
// Cache Key Tests
// ==========================

func TestBuildCacheKey_Stable(t *testing.T) {
	req := baseQuoteRequest()

	first := BuildCacheKey("reliable_insurance", req)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, BuildCacheKey("reliable_insurance", req))
	}
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), first)
}

func TestBuildCacheKey_IgnoresUnpricedFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.QuoteRequest)
	}{
		{
			name: "quote request id",
			mutate: func(r *models.QuoteRequest) {
				r.QuoteRequestID = "req-totally-different"
			},
		},
		{
			name: "business legal name",
			mutate: func(r *models.QuoteRequest) {
				r.BusinessInfo.LegalName = "Different Name Inc"
			},
		},
		{
			name: "business street address",
			mutate: func(r *models.QuoteRequest) {
				r.BusinessInfo.Address.Street = "1 Other Street"
				r.BusinessInfo.Address.City = "Dallas"
			},
		},
		{
			name: "contact info",
			mutate: func(r *models.QuoteRequest) {
				r.BusinessInfo.ContactInfo = &models.Contact{
					FirstName: "Pat",
					LastName:  "Doe",
					Email:     "pat@example.com",
					Phone:     "555-0100",
				}
			},
		},
		{
			name: "opaque additional data",
			mutate: func(r *models.QuoteRequest) {
				r.AdditionalData = json.RawMessage(`{"broker_notes":"rush this one"}`)
			},
		},
	}

	base := BuildCacheKey("reliable_insurance", baseQuoteRequest())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseQuoteRequest()
			tt.mutate(&req)
			assert.Equal(t, base, BuildCacheKey("reliable_insurance", req),
				"field outside the pricing projection must not change the key")
		})
	}
}

func TestBuildCacheKey_DiscriminatesPricedFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.QuoteRequest)
	}{
		{
			name: "insurance type",
			mutate: func(r *models.QuoteRequest) {
				r.InsuranceType = "personal"
			},
		},
		{
			name: "industry",
			mutate: func(r *models.QuoteRequest) {
				r.BusinessInfo.Industry = "technology"
			},
		},
		{
			name: "annual revenue",
			mutate: func(r *models.QuoteRequest) {
				r.BusinessInfo.FinancialInfo.AnnualRevenue = 9000000
			},
		},
		{
			name: "business state",
			mutate: func(r *models.QuoteRequest) {
				r.BusinessInfo.Address.State = "CA"
			},
		},
		{
			name: "requested limits",
			mutate: func(r *models.QuoteRequest) {
				r.CoverageRequests[0].RequestedLimits["each_occurrence"] = 2000000
			},
		},
		{
			name: "deductible",
			mutate: func(r *models.QuoteRequest) {
				r.CoverageRequests[0].RequestedDeductible = float64Ptr(5000)
			},
		},
		{
			name: "effective date",
			mutate: func(r *models.QuoteRequest) {
				r.CoverageRequests[0].EffectiveDate = "2027-01-01"
			},
		},
		{
			name: "extra coverage request",
			mutate: func(r *models.QuoteRequest) {
				r.CoverageRequests = append(r.CoverageRequests, models.CoverageRequest{
					CoverageType:    "cyber_liability",
					RequestedLimits: map[string]float64{"aggregate": 1000000},
					EffectiveDate:   "2026-10-01",
				})
			},
		},
	}

	base := BuildCacheKey("reliable_insurance", baseQuoteRequest())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseQuoteRequest()
			tt.mutate(&req)
			assert.NotEqual(t, base, BuildCacheKey("reliable_insurance", req),
				"pricing-relevant change must produce a new key")
		})
	}
}

func TestBuildCacheKey_DiscriminatesCarrier(t *testing.T) {
	req := baseQuoteRequest()
	assert.NotEqual(t,
		BuildCacheKey("reliable_insurance", req),
		BuildCacheKey("premier_underwriters", req),
	)
}

func TestBuildCacheKey_PersonalProjection(t *testing.T) {
	req := models.QuoteRequest{
		QuoteRequestID: "req-p1",
		InsuranceType:  "personal",
		PersonalInfo: &models.PersonalInfo{
			FirstName:       "Jordan",
			LastName:        "Smith",
			Occupation:      "engineer",
			CreditScoreTier: "excellent",
			Address:         &models.Address{City: "Denver", State: "CO", Zip: "80201"},
		},
		CoverageRequests: []models.CoverageRequest{
			{
				CoverageType:    "homeowners",
				RequestedLimits: map[string]float64{"dwelling": 450000},
				EffectiveDate:   "2026-09-15",
				PropertyInfo: &models.PropertyInfo{
					DwellingValue:    450000,
					YearBuilt:        1998,
					ConstructionType: "frame",
				},
			},
		},
	}

	base := BuildCacheKey("fastbind_insurance", req)

	renamed := req
	pi := *req.PersonalInfo
	pi.FirstName = "Alex"
	renamed.PersonalInfo = &pi
	assert.Equal(t, base, BuildCacheKey("fastbind_insurance", renamed),
		"name is not pricing-relevant for personal lines")

	retiered := req
	pi2 := *req.PersonalInfo
	pi2.CreditScoreTier = "poor"
	retiered.PersonalInfo = &pi2
	assert.NotEqual(t, base, BuildCacheKey("fastbind_insurance", retiered))
}

func TestTruncateKey(t *testing.T) {
	key := BuildCacheKey("reliable_insurance", baseQuoteRequest())
	assert.Len(t, truncateKey(key), 16)
	assert.Equal(t, key[:16], truncateKey(key))
	assert.Equal(t, "short", truncateKey("short"))
}
