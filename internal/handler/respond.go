package handler

import (
	"encoding/json"
	"net/http"
)

// writeJSON writes v as a JSON response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeMessage writes the uniform {"message": ...} envelope used for every
// error and most success responses.
func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decode parses the JSON request body into dst and validates it. On failure
// it writes a 400 response and returns false.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}

	if err := h.validate.Struct(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, err.Error())
		return false
	}

	return true
}
