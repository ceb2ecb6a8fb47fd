package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/madhava-poojari/dashboard-web/internal/utils"
)

func HealthHandler(rec FetchRecorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := map[string]interface{}{
			"time": time.Now(),
		}
		if rec == nil {
			data["db"] = "disabled"
			utils.WriteJSONResponse(w, http.StatusOK, true, "ok", data, nil)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := rec.Ping(ctx); err != nil {
			utils.WriteJSONResponse(w, http.StatusServiceUnavailable, false, "db unreachable", nil, err.Error())
			return
		}
		data["db"] = "ok"
		utils.WriteJSONResponse(w, http.StatusOK, true, "ok", data, nil)
	}
}
