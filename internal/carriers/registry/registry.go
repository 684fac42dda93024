// Package registry holds the static carrier and coverage reference tables.
// Everything here is immutable, process-wide data loaded at compile time.
package registry

import "sort"

// CarrierConfig describes one simulated carrier.
type CarrierConfig struct {
	ID                string
	Name              string
	Prefix            string
	PricingMultiplier float64
	ApprovalRate      float64
}

var carrierConfigs = map[string]CarrierConfig{
	"reliable_insurance": {
		ID:                "reliable_insurance",
		Name:              "Reliable Insurance Co.",
		Prefix:            "RIC",
		PricingMultiplier: 1.0,
		ApprovalRate:      0.85,
	},
	"techshield_underwriters": {
		ID:                "techshield_underwriters",
		Name:              "TechShield Underwriters",
		Prefix:            "TSU",
		PricingMultiplier: 0.95,
		ApprovalRate:      0.9,
	},
	"premier_underwriters": {
		ID:                "premier_underwriters",
		Name:              "Premier Underwriters",
		Prefix:            "PRE",
		PricingMultiplier: 1.25,
		ApprovalRate:      0.7,
	},
	"fastbind_insurance": {
		ID:                "fastbind_insurance",
		Name:              "FastBind Insurance",
		Prefix:            "FBI",
		PricingMultiplier: 0.85,
		ApprovalRate:      0.95,
	},
}

// Get looks up a carrier by id.
func Get(carrierID string) (CarrierConfig, bool) {
	cfg, ok := carrierConfigs[carrierID]
	return cfg, ok
}

// IDs returns the known carrier ids in sorted order.
func IDs() []string {
	ids := make([]string, 0, len(carrierConfigs))
	for id := range carrierConfigs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

var basePremiums = map[string]float64{
	// Personal
	"homeowners":        1200,
	"auto":              900,
	"renters":           250,
	"life":              500,
	"personal_umbrella": 300,
	// Commercial
	"general_liability":      1250,
	"professional_liability": 2500,
	"cyber_liability":        3000,
	"workers_compensation":   1800,
	"commercial_property":    2000,
	"business_auto":          1500,
	"umbrella":               800,
	"directors_officers":     3500,
	"employment_practices":   2200,
	"crime":                  1000,
	"media":                  1800,
	"fiduciary":              2500,
	"employee_benefits":      1200,
}

// BasePremium returns the reference annual premium for a coverage type.
// Unknown types price off a generic base.
func BasePremium(coverageType string) float64 {
	if base, ok := basePremiums[coverageType]; ok {
		return base
	}
	return 1000
}

var policyForms = map[string]string{
	"general_liability":      "ISO CGL",
	"professional_liability": "Claims-Made",
	"cyber_liability":        "Cyber Pro Form",
	"homeowners":             "HO-3",
	"auto":                   "Personal Auto Policy",
	"renters":                "HO-4",
	"life":                   "Term Life",
}

// PolicyForm returns the marketing name of the policy form for a coverage type.
func PolicyForm(coverageType string) string {
	if form, ok := policyForms[coverageType]; ok {
		return form
	}
	return "Standard Form"
}

// SupportedCoverages lists the coverage types each insurance type accepts,
// as reported by the health endpoint.
func SupportedCoverages() map[string][]string {
	return map[string][]string{
		"personal": {"homeowners", "auto", "renters", "life", "umbrella"},
		"commercial": {
			"general_liability",
			"professional_liability",
			"cyber_liability",
			"workers_comp",
			"commercial_property",
			"business_auto",
			"umbrella",
			"directors_officers",
			"employment_practices",
			"crime",
			"media",
			"fiduciary",
			"employee_benefits",
		},
	}
}
