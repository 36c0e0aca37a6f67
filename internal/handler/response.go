package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/yusufkecer/body-composition-backend/internal/middleware"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeValidationError reports every problem multierr collected.
func writeValidationError(w http.ResponseWriter, err error) {
	messages := make([]string, 0)
	for _, e := range multierr.Errors(err) {
		messages = append(messages, e.Error())
	}
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error":   strings.Join(messages, "; "),
		"details": messages,
	})
}

// decodeJSON decodes a single JSON object and rejects unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func accountID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, ok := middleware.AccountID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return id, ok
}
