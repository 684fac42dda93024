package api

import (
	"encoding/json"
	"net/http"

	"carrier-simulator/internal/common/errors"
	"carrier-simulator/internal/common/logger"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError renders any error as the uniform envelope
// {"success": false, "error": {"code": ..., "message": ..., ...}}.
// StandardError metadata keys are flattened into the error object so
// fields like expired_at and quote_id sit alongside code and message.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	stdErr, ok := errors.AsStandardError(err)
	if !ok {
		log.Error("unhandled error", map[string]interface{}{"error": err.Error()})
		stdErr = errors.NewInternalError(err)
	}

	errObj := map[string]interface{}{
		"code":    stdErr.Code,
		"message": stdErr.Message,
	}
	for k, v := range stdErr.Metadata {
		errObj[k] = v
	}

	writeJSON(w, errors.HTTPStatus(stdErr.Code), map[string]interface{}{
		"success": false,
		"error":   errObj,
	})
}
