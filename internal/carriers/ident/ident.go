// Package ident generates quote and policy identifiers. Seeded generation is
// a pure function of the seed, so identical requests reproduce identical ids
// across calls and process restarts.
package ident

import (
	"fmt"
	"math/rand"
	"time"
)

// SeededValue reduces seed to an integer in [0, modulus) via a 32-bit rolling
// hash. The hash is part of the id contract: changing it changes every
// deterministic quote id, so it stays a plain polynomial accumulation.
func SeededValue(seed string, modulus int) int {
	var h int32
	for i := 0; i < len(seed); i++ {
		h = h*31 + int32(seed[i])
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return int(v % int64(modulus))
}

var coverageSuffixes = map[string]string{
	"homeowners":             "HO",
	"auto":                   "AU",
	"renters":                "RN",
	"life":                   "LF",
	"personal_umbrella":      "UM",
	"general_liability":      "GL",
	"professional_liability": "PL",
	"cyber_liability":        "CY",
	"workers_compensation":   "WC",
	"commercial_property":    "CP",
	"business_auto":          "BA",
	"umbrella":               "UM",
	"directors_officers":     "DO",
	"employment_practices":   "EP",
	"crime":                  "CR",
	"media":                  "MD",
	"fiduciary":              "FD",
	"employee_benefits":      "EB",
}

// CoverageSuffix returns the fixed two-letter id suffix for a coverage type,
// falling back to "XX" for unrecognized types.
func CoverageSuffix(coverageType string) string {
	if s, ok := coverageSuffixes[coverageType]; ok {
		return s
	}
	return "XX"
}

// QuoteID builds a quote identifier like RIC-Q-2026-123456-GL. A non-empty
// seed makes the numeric part deterministic; otherwise it is random.
func QuoteID(prefix, coverageType, seed string) string {
	var n int
	if seed != "" {
		n = SeededValue(seed, 999999)
	} else {
		n = rand.Intn(999999)
	}
	return fmt.Sprintf("%s-Q-%d-%06d-%s", prefix, time.Now().Year(), n, CoverageSuffix(coverageType))
}

// PolicyID builds a policy identifier like RIC-P-2026-123456.
func PolicyID(prefix string) string {
	return fmt.Sprintf("%s-P-%d-%06d", prefix, time.Now().Year(), rand.Intn(999999))
}

// PolicyNumber builds a policy number like RIC-2026-GL-123456.
func PolicyNumber(prefix, coverageType string) string {
	return fmt.Sprintf("%s-%d-%s-%06d", prefix, time.Now().Year(), CoverageSuffix(coverageType), rand.Intn(999999))
}
