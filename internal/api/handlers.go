package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/pigeonworks-llc/payment-instructions/pkg/payment"
	"github.com/pigeonworks-llc/payment-instructions/pkg/processor"
)

// maxBodyBytes caps the size of a request body.
const maxBodyBytes = 1 << 20

// processRequest mirrors processor.Request with an optional instruction so
// that a missing field can be told apart from an empty one.
type processRequest struct {
	Accounts    []payment.Account `json:"accounts"`
	Instruction *string           `json:"instruction"`
}

// handleProcess handles POST /payment-instructions.
// Failed instructions are answered with 400 and the full result body.
func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	var body processRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Request body must be a JSON object: "+err.Error())
		return
	}

	if body.Instruction == nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Missing required field: instruction")
		return
	}

	start := time.Now()
	result := s.processor.Process(r.Context(), processor.Request{
		Accounts:    body.Accounts,
		Instruction: *body.Instruction,
	})
	s.metrics.observe(result, time.Since(start).Seconds())

	status := http.StatusOK
	if result.Failed() {
		status = http.StatusBadRequest
	}

	writeJSON(w, status, result)
}
