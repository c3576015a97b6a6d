package httputil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Envelope is the uniform response wrapper of the diagram/flow contract.
// Data stays raw so callers can unmarshal it into the expected shape after
// checking Success.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// DecodeEnvelope reads a JSON envelope from r.
func DecodeEnvelope(r io.Reader) (*Envelope, error) {
	var env Envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	return &env, nil
}

// Unmarshal decodes the envelope's data field into v.
func (e *Envelope) Unmarshal(v any) error {
	if len(e.Data) == 0 {
		return fmt.Errorf("envelope has no data")
	}
	return json.Unmarshal(e.Data, v)
}

// WriteEnvelope writes a success envelope with the given payload.
// Marshal failures degrade to a 500 error envelope.
func WriteEnvelope(w http.ResponseWriter, status int, message string, data any) {
	raw, err := json.Marshal(data)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "failed to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Success: true,
		Message: message,
		Data:    raw,
	})
}

// WriteError writes a failure envelope carrying only a message.
func WriteError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Envelope{
		Success: false,
		Message: message,
	})
}
