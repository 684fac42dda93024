package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carrier-simulator/internal/carriers/policy"
	"carrier-simulator/internal/carriers/quote"
	"carrier-simulator/internal/common/config"
	"carrier-simulator/internal/common/logger"
	"carrier-simulator/internal/common/observability"
)

const testAPIKey = "test_clarence_key_123"

// effectiveDate keeps the bound term in the future regardless of when the
// suite runs.
func effectiveDate() string {
	return time.Now().AddDate(0, 1, 0).Format("2006-01-02")
}

// ==========================
// Test Helper Functions
// ==========================

func newTestServer(t *testing.T) *httptest.Server {
	log := logger.NewTestLogger(t)
	engine := quote.NewEngine(quote.NewMemoryCache(), log)
	policies := policy.NewService(engine, log)

	cfg := config.Config{
		Auth: config.AuthConfig{APIKey: testAPIKey},
	}

	srv := NewServer(cfg, engine, policies, &observability.Observability{}, log)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func doRequest(t *testing.T, ts *httptest.Server, method, path string, body interface{}, apiKey string) (*http.Response, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func validQuoteBody() map[string]interface{} {
	return map[string]interface{}{
		"quote_request_id": "req-api-1",
		"insurance_type":   "commercial",
		"business_info": map[string]interface{}{
			"legal_name":    "Hilltop Coffee Roasters",
			"industry":      "food_service",
			"industry_code": "722515",
			"address": map[string]interface{}{
				"street": "12 Main St", "city": "Portland", "state": "OR", "zip": "97201",
			},
			"financial_info": map[string]interface{}{
				"annual_revenue":      800000,
				"full_time_employees": 12,
			},
		},
		"coverage_requests": []map[string]interface{}{
			{
				"coverage_type":    "general_liability",
				"requested_limits": map[string]interface{}{"each_occurrence": 1000000},
				"effective_date":   effectiveDate(),
			},
		},
	}
}

func validBindBody(quoteID string) map[string]interface{} {
	return map[string]interface{}{
		"quote_id":       quoteID,
		"effective_date": effectiveDate(),
		"payment_plan":   "monthly",
		"payment_info": map[string]interface{}{
			"method": "credit_card",
			"token":  "tok_abc123",
			"billing_address": map[string]interface{}{
				"street": "12 Main St", "city": "Portland", "state": "OR", "zip": "97201",
			},
		},
		"insured_info": map[string]interface{}{
			"primary_contact": map[string]interface{}{
				"first_name": "Dana", "last_name": "Reyes",
				"email": "dana@hilltop.example", "phone": "555-0101",
			},
		},
	}
}

func errorCode(t *testing.T, body map[string]interface{}) string {
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error envelope, got %v", body)
	code, _ := errObj["code"].(string)
	return code
}

// ==========================
// Authentication Tests
// ==========================

func TestAuth_MissingKey(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", validQuoteBody(), "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

func TestAuth_WrongKey(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", validQuoteBody(), "wrong_key")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, body))
}

// ==========================
// Validation Tests
// ==========================

func TestQuote_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(body map[string]interface{})
	}{
		{
			name: "missing quote_request_id",
			mutate: func(b map[string]interface{}) {
				delete(b, "quote_request_id")
			},
		},
		{
			name: "bad insurance_type",
			mutate: func(b map[string]interface{}) {
				b["insurance_type"] = "maritime"
			},
		},
		{
			name: "empty coverage_requests",
			mutate: func(b map[string]interface{}) {
				b["coverage_requests"] = []map[string]interface{}{}
			},
		},
		{
			name: "coverage missing effective_date",
			mutate: func(b map[string]interface{}) {
				b["coverage_requests"] = []map[string]interface{}{
					{"coverage_type": "general_liability", "requested_limits": map[string]interface{}{"x": 1}},
				}
			},
		},
	}

	ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validQuoteBody()
			tt.mutate(body)

			resp, respBody := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", body, testAPIKey)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "INVALID_REQUEST", errorCode(t, respBody))

			errObj := respBody["error"].(map[string]interface{})
			assert.NotEmpty(t, errObj["details"], "validation errors should name the offending fields")
		})
	}
}

func TestBind_ValidationFailure(t *testing.T) {
	ts := newTestServer(t)

	body := validBindBody("RIC-Q-2026-000001-GL")
	body["payment_plan"] = "weekly"

	resp, respBody := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/bind", body, testAPIKey)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, respBody))
}

// ==========================
// Quote Endpoint Tests
// ==========================

func TestQuote_UnknownCarrier(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/bogus_carrier/quote", validQuoteBody(), testAPIKey)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "CARRIER_NOT_FOUND", errorCode(t, body))
}

func TestQuote_MissThenHit(t *testing.T) {
	ts := newTestServer(t)

	resp, first := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", validQuoteBody(), testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, first["success"])
	assert.Equal(t, false, first["cached"])

	resp, second := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", validQuoteBody(), testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, second["cached"])
	assert.Len(t, second["cache_key"], 16)
	assert.Equal(t, first["valid_until"], second["valid_until"])
}

// ==========================
// Policy Lifecycle Flow
// ==========================

func TestQuoteBindPolicyFlow(t *testing.T) {
	ts := newTestServer(t)

	// Quote
	resp, quoteBody := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", validQuoteBody(), testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	quotes := quoteBody["quotes"].([]interface{})
	require.NotEmpty(t, quotes)
	quoteID := quotes[0].(map[string]interface{})["quote_id"].(string)

	// Bind
	resp, bindBody := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/bind", validBindBody(quoteID), testAPIKey)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, bindBody["success"])

	pol := bindBody["policy"].(map[string]interface{})
	policyID := pol["policy_id"].(string)
	assert.Equal(t, "bound", pol["status"])

	base := fmt.Sprintf("/api/v1/carriers/reliable_insurance/policies/%s", policyID)

	// Retrieve
	resp, getBody := doRequest(t, ts, http.MethodGet, base, nil, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	gotPolicy := getBody["policy"].(map[string]interface{})
	assert.Equal(t, "active", gotPolicy["status"])
	assert.NotNil(t, gotPolicy["days_until_expiration"])

	// Renew
	resp, renewBody := doRequest(t, ts, http.MethodPost, base+"/renew", map[string]interface{}{
		"renewal_type": "standard",
	}, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "quoted", renewBody["renewal_status"])

	// Endorse
	resp, endorseBody := doRequest(t, ts, http.MethodPost, base+"/endorse", map[string]interface{}{
		"endorsement_type": "additional_insured",
		"effective_date":   "2026-11-15",
	}, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", endorseBody["status"])

	// Certificate
	resp, certBody := doRequest(t, ts, http.MethodPost, base+"/certificate", map[string]interface{}{
		"certificate_holder": map[string]interface{}{
			"name": "Landlord Properties LLC",
			"address": map[string]interface{}{
				"street": "88 Oak Ave", "city": "Portland", "state": "OR", "zip": "97205",
			},
		},
		"description_of_operations": "Coffee roasting and retail operations",
	}, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ACORD 25", certBody["format"])

	// Cancel
	resp, cancelBody := doRequest(t, ts, http.MethodPost, base+"/cancel", map[string]interface{}{
		"cancellation_type": "insured_request",
		"effective_date":    "2027-01-01",
		"reason":            "sold the business",
	}, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pending_cancellation", cancelBody["status"])
}

func TestBind_UnknownQuote(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/bind", validBindBody("RIC-Q-2026-000000-GL"), testAPIKey)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "QUOTE_NOT_FOUND", errorCode(t, body))
}

func TestGetPolicy_NotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodGet, "/api/v1/carriers/reliable_insurance/policies/RIC-P-2026-999999", nil, testAPIKey)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "POLICY_NOT_FOUND", errorCode(t, body))
}

// ==========================
// Health & Cache Endpoints
// ==========================

func TestHealth_KnownCarrier(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodGet, "/api/v1/carriers/techshield_underwriters/health", nil, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "operational", body["status"])
	assert.Equal(t, "TechShield Underwriters", body["carrier_name"])
	assert.NotNil(t, body["supported_coverages"])
}

func TestHealth_UnknownCarrier(t *testing.T) {
	ts := newTestServer(t)

	resp, body := doRequest(t, ts, http.MethodGet, "/api/v1/carriers/bogus_carrier/health", nil, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "unknown", body["status"])
	assert.Equal(t, []interface{}{
		"fastbind_insurance",
		"premier_underwriters",
		"reliable_insurance",
		"techshield_underwriters",
	}, body["known_carriers"])
}

func TestCacheStatsAndClear(t *testing.T) {
	ts := newTestServer(t)

	_, _ = doRequest(t, ts, http.MethodPost, "/api/v1/carriers/reliable_insurance/quote", validQuoteBody(), testAPIKey)

	resp, statsBody := doRequest(t, ts, http.MethodGet, "/api/v1/carriers/cache/stats", nil, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := statsBody["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_cached_quotes"])
	assert.Equal(t, float64(2), stats["total_quotes_by_id"])

	resp, clearBody := doRequest(t, ts, http.MethodPost, "/api/v1/carriers/cache/clear", nil, testAPIKey)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Cache cleared successfully", clearBody["message"])

	_, statsBody = doRequest(t, ts, http.MethodGet, "/api/v1/carriers/cache/stats", nil, testAPIKey)
	stats = statsBody["stats"].(map[string]interface{})
	assert.Equal(t, float64(0), stats["total_cached_quotes"])
	assert.Equal(t, float64(2), stats["total_quotes_by_id"], "clearing the cache keeps issued quote ids resolvable")
}
