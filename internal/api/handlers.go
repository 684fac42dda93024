package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"carrier-simulator/internal/carriers/models"
	"carrier-simulator/internal/carriers/registry"
	"carrier-simulator/internal/common/errors"
)

// readValidated reads the request body, validates it against schema, and
// decodes it into dst.
func readValidated(r *http.Request, schema map[string]interface{}, dst interface{}) error {
	raw, err := io.ReadAll(r.Body)
	r.Body.Close()
	if err != nil {
		return errors.NewInvalidRequestError("Unable to read request body", nil)
	}
	if err := validateBody(raw, schema); err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.NewInvalidRequestError("Request body does not match the expected shape", nil)
	}
	return nil
}

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")

	var req models.QuoteRequest
	if err := readValidated(r, quoteRequestSchema, &req); err != nil {
		writeError(w, s.log, err)
		return
	}

	resp, err := s.engine.GenerateQuote(r.Context(), carrierID, req)
	if err != nil {
		s.obs.RecordOperation(r.Context(), "quote", "error")
		writeError(w, s.log, err)
		return
	}
	s.obs.RecordOperation(r.Context(), "quote", "success")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBind(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")

	var req models.BindRequest
	if err := readValidated(r, bindRequestSchema, &req); err != nil {
		writeError(w, s.log, err)
		return
	}

	result, err := s.policies.Bind(r.Context(), carrierID, req)
	if err != nil {
		s.obs.RecordOperation(r.Context(), "bind", "error")
		writeError(w, s.log, err)
		return
	}
	s.obs.RecordOperation(r.Context(), "bind", "success")
	writeJSON(w, http.StatusCreated, result)
}

func (s *Server) handleGetPolicy(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")
	policyID := r.PathValue("policy_id")

	view, err := s.policies.Get(r.Context(), carrierID, policyID)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleRenew(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")
	policyID := r.PathValue("policy_id")

	var req models.RenewRequest
	if err := readValidated(r, renewRequestSchema, &req); err != nil {
		writeError(w, s.log, err)
		return
	}

	result, err := s.policies.Renew(r.Context(), carrierID, policyID, req)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleEndorse(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")
	policyID := r.PathValue("policy_id")

	var req models.EndorseRequest
	if err := readValidated(r, endorseRequestSchema, &req); err != nil {
		writeError(w, s.log, err)
		return
	}

	result, err := s.policies.Endorse(r.Context(), carrierID, policyID, req)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")
	policyID := r.PathValue("policy_id")

	var req models.CancelRequest
	if err := readValidated(r, cancelRequestSchema, &req); err != nil {
		writeError(w, s.log, err)
		return
	}

	result, err := s.policies.Cancel(r.Context(), carrierID, policyID, req)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCertificate(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")
	policyID := r.PathValue("policy_id")

	var req models.CertificateRequest
	if err := readValidated(r, certificateRequestSchema, &req); err != nil {
		writeError(w, s.log, err)
		return
	}

	result, err := s.policies.Certificate(r.Context(), carrierID, policyID, req)
	if err != nil {
		writeError(w, s.log, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleHealth reports per-carrier service status. An unknown carrier gets a
// 200 with status "unknown" rather than an error; monitors poll this blindly.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	carrierID := r.PathValue("carrier_id")

	cfg, ok := registry.Get(carrierID)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":         "unknown",
			"carrier_id":     carrierID,
			"message":        "Carrier not found",
			"known_carriers": registry.IDs(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "operational",
		"carrier_id":   carrierID,
		"carrier_name": cfg.Name,
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
		"services": map[string]string{
			"quoting":             "operational",
			"binding":             "operational",
			"policy_management":   "operational",
			"document_generation": "operational",
		},
		"supported_insurance_types": []string{"personal", "commercial"},
		"supported_coverages":       registry.SupportedCoverages(),
	})
}

func (s *Server) handleCacheStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.engine.CacheStats(r.Context())
	if err != nil {
		writeError(w, s.log, errors.NewInternalError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"stats":     stats,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearCache(r.Context()); err != nil {
		writeError(w, s.log, errors.NewInternalError(err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"message":   "Cache cleared successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
