package respond

import (
	"encoding/json"
	"net/http"

	zlog "github.com/rs/zerolog/log"
)

// JSON writes a payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zlog.Error().Err(err).Msg("respond: encode payload failed")
	}
}

// Error writes `{"error": message}` with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
