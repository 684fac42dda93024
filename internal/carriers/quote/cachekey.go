package quote

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"carrier-simulator/internal/carriers/models"
)

// The cache key is a sha256 digest over the normalized projection of a quote
// request: only the fields that affect pricing participate. Contact details,
// additional insureds and opaque pass-through payloads stay out, so requests
// differing only in those fields hash to the same key.
//
// The projection structs below are the canonical serialization. Field order is
// fixed by struct order and encoding/json sorts map keys, so the digest is
// stable for semantically identical requests.

type personalProjection struct {
	Occupation      string `json:"occupation"`
	CreditScoreTier string `json:"credit_score_tier"`
	State           string `json:"state"`
	Zip             string `json:"zip"`
}

type businessProjection struct {
	Industry      string  `json:"industry"`
	IndustryCode  string  `json:"industry_code"`
	AnnualRevenue float64 `json:"annual_revenue"`
	Employees     int     `json:"employees"`
	State         string  `json:"state"`
	Zip           string  `json:"zip"`
}

type coverageProjection struct {
	CoverageType        string             `json:"coverage_type"`
	RequestedLimits     map[string]float64 `json:"requested_limits"`
	RequestedDeductible *float64           `json:"requested_deductible,omitempty"`
	EffectiveDate       string             `json:"effective_date"`

	// Homeowners
	DwellingValue    float64 `json:"dwelling_value,omitempty"`
	YearBuilt        int     `json:"year_built,omitempty"`
	ConstructionType string  `json:"construction_type,omitempty"`

	// Auto
	VehicleYear  int    `json:"vehicle_year,omitempty"`
	VehicleMake  string `json:"vehicle_make,omitempty"`
	VehicleModel string `json:"vehicle_model,omitempty"`

	// Cyber
	HasCybersecurity bool `json:"has_cybersecurity,omitempty"`
	NumberOfRecords  int  `json:"number_of_records,omitempty"`
}

type keyProjection struct {
	CarrierID        string               `json:"carrier_id"`
	InsuranceType    string               `json:"insurance_type"`
	PersonalInfo     *personalProjection  `json:"personal_info"`
	BusinessInfo     *businessProjection  `json:"business_info"`
	CoverageRequests []coverageProjection `json:"coverage_requests"`
}

// BuildCacheKey computes the cache key for a quote request against a carrier.
func BuildCacheKey(carrierID string, req models.QuoteRequest) string {
	proj := keyProjection{
		CarrierID:     carrierID,
		InsuranceType: req.InsuranceType,
	}

	if pi := req.PersonalInfo; pi != nil {
		p := personalProjection{
			Occupation:      pi.Occupation,
			CreditScoreTier: pi.CreditScoreTier,
		}
		if pi.Address != nil {
			p.State = pi.Address.State
			p.Zip = pi.Address.Zip
		}
		proj.PersonalInfo = &p
	}

	if bi := req.BusinessInfo; bi != nil {
		b := businessProjection{
			Industry:     bi.Industry,
			IndustryCode: bi.IndustryCode,
		}
		if bi.FinancialInfo != nil {
			b.AnnualRevenue = bi.FinancialInfo.AnnualRevenue
			b.Employees = bi.FinancialInfo.FullTimeEmployees
		}
		if bi.Address != nil {
			b.State = bi.Address.State
			b.Zip = bi.Address.Zip
		}
		proj.BusinessInfo = &b
	}

	proj.CoverageRequests = make([]coverageProjection, 0, len(req.CoverageRequests))
	for _, cr := range req.CoverageRequests {
		cp := coverageProjection{
			CoverageType:        cr.CoverageType,
			RequestedLimits:     cr.RequestedLimits,
			RequestedDeductible: cr.RequestedDeductible,
			EffectiveDate:       cr.EffectiveDate,
		}
		if p := cr.PropertyInfo; p != nil {
			cp.DwellingValue = p.DwellingValue
			cp.YearBuilt = p.YearBuilt
			cp.ConstructionType = p.ConstructionType
		}
		if v := cr.VehicleInfo; v != nil {
			cp.VehicleYear = v.Year
			cp.VehicleMake = v.Make
			cp.VehicleModel = v.Model
		}
		if c := cr.CyberInfo; c != nil {
			cp.HasCybersecurity = c.HasCybersecurityPolicy
			cp.NumberOfRecords = c.NumberOfRecords
		}
		proj.CoverageRequests = append(proj.CoverageRequests, cp)
	}

	data, _ := json.Marshal(proj)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// truncateKey shortens a cache key for log lines and diagnostics output.
func truncateKey(key string) string {
	if len(key) <= 16 {
		return key
	}
	return key[:16]
}
