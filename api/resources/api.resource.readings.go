// FilePath: api/resources/api.resource.readings.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// ReadingHandlers encapsulates the reading-related HTTP handlers
type ReadingHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Get readings and statistics
// @Description Get every stored reading plus per-date min/max/average statistics
// @Tags readings
// @Produce json
// @Success 200 {object} models.ReadingsSnapshot
// @Failure 500 {object} errors.APIError
// @Router /data [get]
func (h *ReadingHandlers) GetData(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	snapshot, err := h.hubservice.Snapshot(r.Context())
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to load readings", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot)
}

func respondWithError(w http.ResponseWriter, err *errors.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.Code)
	json.NewEncoder(w).Encode(err)
	nuts.L.Errorf("[API] %s", err.Error())
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
