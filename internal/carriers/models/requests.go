// Package models defines the request and response shapes of the carrier API.
// JSON field names are the stable contract integrations rely on.
package models

import "encoding/json"

type Address struct {
	Street string `json:"street,omitempty"`
	Unit   string `json:"unit,omitempty"`
	Suite  string `json:"suite,omitempty"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

type PersonalInfo struct {
	FirstName       string   `json:"first_name"`
	LastName        string   `json:"last_name"`
	DateOfBirth     string   `json:"date_of_birth,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	MaritalStatus   string   `json:"marital_status,omitempty"`
	Occupation      string   `json:"occupation"`
	CreditScoreTier string   `json:"credit_score_tier"`
	Address         *Address `json:"address,omitempty"`
	Email           string   `json:"email,omitempty"`
	Phone           string   `json:"phone,omitempty"`
}

type FinancialInfo struct {
	AnnualRevenue     float64 `json:"annual_revenue"`
	AnnualPayroll     float64 `json:"annual_payroll,omitempty"`
	FullTimeEmployees int     `json:"full_time_employees"`
	PartTimeEmployees int     `json:"part_time_employees,omitempty"`
	Contractors       int     `json:"contractors,omitempty"`
}

type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Title     string `json:"title,omitempty"`
}

type BusinessInfo struct {
	LegalName      string         `json:"legal_name"`
	DBAName        string         `json:"dba_name,omitempty"`
	LegalStructure string         `json:"legal_structure,omitempty"`
	Industry       string         `json:"industry"`
	IndustryCode   string         `json:"industry_code"`
	Description    string         `json:"description,omitempty"`
	YearStarted    int            `json:"year_started,omitempty"`
	Address        *Address       `json:"address,omitempty"`
	FinancialInfo  *FinancialInfo `json:"financial_info,omitempty"`
	ContactInfo    *Contact       `json:"contact_info,omitempty"`
}

type PropertyInfo struct {
	DwellingValue    float64 `json:"dwelling_value,omitempty"`
	YearBuilt        int     `json:"year_built,omitempty"`
	SquareFeet       int     `json:"square_feet,omitempty"`
	ConstructionType string  `json:"construction_type,omitempty"`
	RoofType         string  `json:"roof_type,omitempty"`
	RoofAge          int     `json:"roof_age,omitempty"`
	Bedrooms         int     `json:"bedrooms,omitempty"`
	Bathrooms        int     `json:"bathrooms,omitempty"`
	Garage           bool    `json:"garage,omitempty"`
	Pool             bool    `json:"pool,omitempty"`
	AlarmSystem      bool    `json:"alarm_system,omitempty"`
}

type VehicleInfo struct {
	Year            int      `json:"year"`
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	VIN             string   `json:"vin,omitempty"`
	Usage           string   `json:"usage,omitempty"`
	AnnualMileage   int      `json:"annual_mileage,omitempty"`
	GaragingAddress *Address `json:"garaging_address,omitempty"`
}

type CyberInfo struct {
	HasCybersecurityPolicy bool `json:"has_cybersecurity_policy,omitempty"`
	HasIncidentResponse    bool `json:"has_incident_response_plan,omitempty"`
	HandlesPII             bool `json:"handles_pii,omitempty"`
	NumberOfRecords        int  `json:"number_of_records,omitempty"`
	HasEncryption          bool `json:"has_encryption,omitempty"`
	HasMFA                 bool `json:"has_mfa,omitempty"`
}

type DriverInfo struct {
	FirstName            string `json:"first_name"`
	LastName             string `json:"last_name"`
	DateOfBirth          string `json:"date_of_birth"`
	LicenseNumber        string `json:"license_number"`
	LicenseState         string `json:"license_state"`
	YearsLicensed        int    `json:"years_licensed"`
	AccidentsLast3Years  int    `json:"accidents_last_3_years"`
	ViolationsLast3Years int    `json:"violations_last_3_years"`
}

// CoverageRequest describes one coverage line the client wants priced.
// RequestedDeductible holds a single amount; auto coverages send the per-peril
// RequestedDeductibles map instead (the plural wins when both are present).
type CoverageRequest struct {
	CoverageType         string             `json:"coverage_type"`
	RequestedLimits      map[string]float64 `json:"requested_limits"`
	RequestedDeductible  *float64           `json:"requested_deductible,omitempty"`
	RequestedDeductibles map[string]float64 `json:"requested_deductibles,omitempty"`
	EffectiveDate        string             `json:"effective_date"`
	PropertyInfo         *PropertyInfo      `json:"property_info,omitempty"`
	VehicleInfo          *VehicleInfo       `json:"vehicle_info,omitempty"`
	CyberInfo            *CyberInfo         `json:"cyber_info,omitempty"`
	DriverInfo           []DriverInfo       `json:"driver_info,omitempty"`
}

// Deductible returns whichever deductible representation the request carried.
func (c CoverageRequest) Deductible() interface{} {
	if len(c.RequestedDeductibles) > 0 {
		return c.RequestedDeductibles
	}
	if c.RequestedDeductible != nil {
		return *c.RequestedDeductible
	}
	return nil
}

// QuoteRequest is the top-level pricing request. AdditionalData is an opaque
// pass-through payload: stored and echoed byte-for-byte, never inspected by
// pricing and never part of the cache key.
type QuoteRequest struct {
	QuoteRequestID   string            `json:"quote_request_id"`
	InsuranceType    string            `json:"insurance_type"`
	PersonalInfo     *PersonalInfo     `json:"personal_info,omitempty"`
	BusinessInfo     *BusinessInfo     `json:"business_info,omitempty"`
	CoverageRequests []CoverageRequest `json:"coverage_requests"`
	AdditionalData   json.RawMessage   `json:"additional_data,omitempty"`
}

type PaymentInfo struct {
	Method         string  `json:"method"`
	Token          string  `json:"token"`
	BillingAddress Address `json:"billing_address"`
}

type AdditionalInsured struct {
	Name         string  `json:"name"`
	Address      Address `json:"address"`
	Relationship string  `json:"relationship,omitempty"`
}

type InsuredInfo struct {
	PrimaryContact     Contact             `json:"primary_contact"`
	AdditionalInsureds []AdditionalInsured `json:"additional_insureds,omitempty"`
}

type Signature struct {
	FullName  string `json:"full_name"`
	SignedAt  string `json:"signed_at"`
	IPAddress string `json:"ip_address"`
}

// BindRequest turns a quote into a policy. Customizations is opaque
// pass-through, like QuoteRequest.AdditionalData.
type BindRequest struct {
	QuoteID        string          `json:"quote_id"`
	EffectiveDate  string          `json:"effective_date"`
	PaymentPlan    string          `json:"payment_plan"`
	PaymentInfo    PaymentInfo     `json:"payment_info"`
	InsuredInfo    InsuredInfo     `json:"insured_info"`
	Signature      Signature       `json:"signature"`
	Customizations json.RawMessage `json:"customizations,omitempty"`
}

type BusinessChanges struct {
	RevenueChanged       bool    `json:"revenue_changed,omitempty"`
	NewAnnualRevenue     float64 `json:"new_annual_revenue,omitempty"`
	EmployeesChanged     bool    `json:"employees_changed,omitempty"`
	NewFullTimeEmployees int     `json:"new_full_time_employees,omitempty"`
	NewPartTimeEmployees int     `json:"new_part_time_employees,omitempty"`
	LocationsChanged     bool    `json:"locations_changed,omitempty"`
	OperationsChanged    bool    `json:"operations_changed,omitempty"`
}

type CoverageChanges struct {
	IncreaseLimits  bool               `json:"increase_limits,omitempty"`
	NewLimits       map[string]float64 `json:"new_limits,omitempty"`
	AddCoverages    []string           `json:"add_coverages,omitempty"`
	RemoveCoverages []string           `json:"remove_coverages,omitempty"`
}

type RenewRequest struct {
	RenewalType          string           `json:"renewal_type"`
	BusinessChanges      *BusinessChanges `json:"business_changes,omitempty"`
	CoverageChanges      *CoverageChanges `json:"coverage_changes,omitempty"`
	DesiredEffectiveDate string           `json:"desired_effective_date,omitempty"`
}

type EndorseRequest struct {
	EndorsementType string          `json:"endorsement_type"`
	EffectiveDate   string          `json:"effective_date"`
	Details         json.RawMessage `json:"details"`
}

type CancelRequest struct {
	CancellationType string    `json:"cancellation_type"`
	EffectiveDate    string    `json:"effective_date"`
	Reason           string    `json:"reason"`
	Signature        Signature `json:"signature"`
}

type CertificateHolder struct {
	Name    string  `json:"name"`
	Address Address `json:"address"`
}

type CertificateRequest struct {
	CertificateHolder       CertificateHolder `json:"certificate_holder"`
	AdditionalInsured       bool              `json:"additional_insured"`
	DescriptionOfOperations string            `json:"description_of_operations"`
	SpecialProvisions       []string          `json:"special_provisions,omitempty"`
	ProjectNumber           string            `json:"project_number,omitempty"`
	ProjectDescription      string            `json:"project_description,omitempty"`
}
