package httpx

import (
	"encoding/json"
	"log"
	"net/http"
)

// Envelope is the body of every response: a success flag, a human-readable
// message and an optional payload.
type Envelope struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// StatusFunc maps the status code of a failure to the one sent on the wire.
type StatusFunc func(code int) int

// NativeStatus sends a failure with its own status code.
func NativeStatus(code int) int { return code }

// AlwaysOK sends every failure as 200; clients read the envelope's status flag.
func AlwaysOK(int) int { return http.StatusOK }

// FailureStatus returns AlwaysOK in legacy mode and NativeStatus otherwise.
func FailureStatus(legacy bool) StatusFunc {
	if legacy {
		return AlwaysOK
	}
	return NativeStatus
}

// JSON writes env with the given status code.
func JSON(w http.ResponseWriter, statusCode int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		log.Printf("encode response failed: error=%v", err)
	}
}

// JSONSuccess writes a 200 success envelope carrying data.
func JSONSuccess(w http.ResponseWriter, message string, data any) {
	JSON(w, http.StatusOK, Envelope{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// JSONMessage writes a 200 success envelope without a payload.
func JSONMessage(w http.ResponseWriter, message string) {
	JSON(w, http.StatusOK, Envelope{
		Status:  true,
		Message: message,
	})
}

// JSONError writes a failure envelope. The payload is always omitted.
func JSONError(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, Envelope{
		Status:  false,
		Message: message,
	})
}
