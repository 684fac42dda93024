package registry

import (
	"strings"

	"carrier-simulator/internal/carriers/models"
)

var highlights = map[string][]string{
	"general_liability": {
		"Coverage for bodily injury and property damage",
		"Legal defense costs covered in addition to limits",
		"Medical payments included",
		"Products and completed operations coverage",
		"Contractual liability coverage",
	},
	"cyber_liability": {
		"Data breach notification and credit monitoring",
		"Forensic investigation costs",
		"Business interruption from cyber events",
		"Cyber extortion and ransomware coverage",
		"24/7 incident response hotline",
	},
	"professional_liability": {
		"Covers professional errors and omissions",
		"Defense costs in addition to policy limits",
		"Prior acts coverage included",
		"Extended reporting period available",
		"Contractual liability coverage",
	},
	"homeowners": {
		"Replacement cost dwelling coverage",
		"Personal property coverage",
		"Liability protection",
		"Additional living expenses covered",
		"24/7 claims support",
	},
	"auto": {
		"Liability coverage",
		"Collision and comprehensive coverage",
		"Uninsured/underinsured motorist protection",
		"Roadside assistance available",
		"Rental car reimbursement",
	},
}

// Highlights returns the marketing highlight strings for a coverage type.
func Highlights(coverageType string) []string {
	if h, ok := highlights[coverageType]; ok {
		return h
	}
	return []string{
		"Comprehensive coverage",
		"Competitive rates",
		"24/7 support",
		"Fast claims processing",
		"Flexible payment options",
	}
}

var exclusions = map[string][]string{
	"general_liability": {
		"Professional services (covered by E&O)",
		"Pollution liability",
		"Employee injuries (covered by Workers Comp)",
		"Auto liability (requires separate policy)",
		"Cyber incidents (requires cyber policy)",
	},
	"cyber_liability": {
		"War and terrorism",
		"Failure to maintain required security standards",
		"Theft of intellectual property",
		"Loss of future revenue",
	},
	"professional_liability": {
		"Bodily injury or property damage",
		"Intentional acts or fraud",
		"Violations of securities laws",
		"Patent or trademark infringement",
	},
	"homeowners": {
		"Flood damage (requires separate policy)",
		"Earthquake damage",
		"Wear and tear",
		"Intentional damage",
		"Business activities",
	},
}

// Exclusions returns the exclusion strings for a coverage type.
func Exclusions(coverageType string) []string {
	if e, ok := exclusions[coverageType]; ok {
		return e
	}
	return []string{
		"Intentional acts",
		"War and terrorism",
		"Nuclear hazards",
		"Certain natural disasters",
	}
}

var optionalCoverages = map[string][]models.OptionalCoverage{
	"general_liability": {
		{
			Name:              "Hired and Non-Owned Auto Liability",
			AdditionalPremium: 125,
			Description:       "Liability for rented, leased, or borrowed vehicles",
		},
		{
			Name:              "Employee Benefits Liability",
			AdditionalPremium: 300,
			Description:       "Coverage for errors in benefits administration",
		},
	},
	"cyber_liability": {
		{
			Name:              "Social Engineering Coverage",
			AdditionalPremium: 450,
			Description:       "Coverage for funds transfer fraud",
		},
		{
			Name:              "Media Liability",
			AdditionalPremium: 600,
			Description:       "Copyright infringement and defamation coverage",
		},
	},
}

// OptionalCoverages returns the add-on coverages offered for a coverage type.
func OptionalCoverages(coverageType string) []models.OptionalCoverage {
	if o, ok := optionalCoverages[coverageType]; ok {
		return o
	}
	return []models.OptionalCoverage{}
}

// UnderwritingNotes derives the note strings attached to every quote from the
// applicant profile.
func UnderwritingNotes(businessInfo *models.BusinessInfo, personalInfo *models.PersonalInfo) []string {
	notes := []string{}

	if businessInfo != nil {
		if businessInfo.FinancialInfo != nil && businessInfo.FinancialInfo.AnnualRevenue < 1000000 {
			notes = append(notes, "Small business with manageable risk profile")
		}
		if strings.Contains(strings.ToLower(businessInfo.Industry), "tech") {
			notes = append(notes, "Technology sector - aligned with carrier specialization")
		}
		notes = append(notes, "No prior claims history reported")
	}

	if personalInfo != nil {
		switch personalInfo.CreditScoreTier {
		case "excellent":
			notes = append(notes, "Excellent credit score provides 15% discount")
		case "good":
			notes = append(notes, "Good credit score provides 10% discount")
		}
	}

	notes = append(notes, "Competitive market conditions")
	notes = append(notes, "Standard underwriting approval")

	return notes
}
