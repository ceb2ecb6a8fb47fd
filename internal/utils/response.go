package utils

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/madhava-poojari/dashboard-web/internal/models"
)

// WriteJSONResponse writes the standard envelope. errDetail becomes the
// envelope "error" field on failures and is ignored on success.
func WriteJSONResponse(w http.ResponseWriter, status int, success bool, message string, data interface{}, errDetail interface{}) {
	if success {
		env := models.Success[any]{Message: message}
		if data != nil {
			env.Data = &data
		}
		writeJSON(w, status, env)
		return
	}
	writeJSON(w, status, models.Failure{Error: errorString(errDetail, message), Message: message})
}

// WriteFailure writes a failure envelope carrying code and meta.
func WriteFailure(w http.ResponseWriter, status int, message, code string, meta *models.Meta) {
	if code == "" {
		code = http.StatusText(status)
	}
	writeJSON(w, status, models.Failure{Error: code, Message: message, Meta: meta})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorString(e interface{}, fallback string) string {
	switch v := e.(type) {
	case nil:
		return fallback
	case string:
		return v
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}
