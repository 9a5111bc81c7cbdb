package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrov/gormadmin/core"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// writeError maps domain errors to their HTTP shape: validation errors to
// 422 with per-field messages, action failures to 400, absence to 404,
// everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	var validation *core.FormValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": validation.Fields})
		return
	}

	var failed *core.ActionFailedError
	if errors.As(err, &failed) {
		writeDetail(w, http.StatusBadRequest, failed.Msg)
		return
	}

	if errors.Is(err, core.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}

	writeDetail(w, http.StatusInternalServerError, "Internal Server Error")
}
