package rest

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

func WriteJSONError(w http.ResponseWriter, statusCode int, message, code string) {
	RespondWithJSON(w, statusCode, ErrorEnvelope{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

// The filter surface is deliberately permissive: a malformed numeric
// parameter behaves as if it were absent instead of failing the request.
// These helpers are the single place that rule lives.

func parseFloatOrAbsent(q url.Values, name string) *float64 {
	raw := q.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntOrAbsent(q url.Values, name string) *int {
	raw := q.Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

// parseIntOrDefault is for page/limit, which always have a value.
func parseIntOrDefault(q url.Values, name string, fallback int) int {
	if v := parseIntOrAbsent(q, name); v != nil {
		return *v
	}
	return fallback
}
