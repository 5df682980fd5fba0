// Package respond writes the adapter's uniform JSON envelope.
//
// Every response is HTTP 200; the success field in the body is the only
// success indicator. Clients of the original upstream already handle the
// envelope shape, so the adapter mirrors it exactly.
package respond

import (
	"encoding/json"
	"net/http"
)

type successBody struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// OK writes {"success":true,"data":...}. Callers pass a non-nil slice so
// an empty result marshals as [] rather than null.
func OK(w http.ResponseWriter, data interface{}) {
	writeJSON(w, successBody{Success: true, Data: data})
}

// Fail writes {"success":false,"error":...}.
func Fail(w http.ResponseWriter, msg string) {
	writeJSON(w, errorBody{Success: false, Error: msg})
}

func writeJSON(w http.ResponseWriter, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}
