package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"teambalancer/internal/apperror"
	"teambalancer/internal/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(text))
}

// writeError maps any error to its JSON body. Internal causes are logged,
// never returned.
func writeError(w http.ResponseWriter, log *logger.Logger, err error) {
	appErr := apperror.From(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(err).Error("request error")
	}
	writeJSON(w, appErr.StatusCode, appErr.Response())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.NewValidationError("invalid request body", nil)
	}
	return nil
}

// queryInt returns the integer query parameter or def when absent
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperror.NewValidationError(name+" must be a non-negative integer", map[string]interface{}{name: raw})
	}
	return n, nil
}
