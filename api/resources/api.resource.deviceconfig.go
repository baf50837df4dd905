// FilePath: api/resources/api.resource.deviceconfig.go
package resources

import (
	"encoding/json"
	"net/http"

	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/hubservice"
	nuts "github.com/vaudience/go-nuts"
)

// DeviceConfigHandlers encapsulates the device-configuration HTTP handlers
type DeviceConfigHandlers struct {
	hubservice *hubservice.HubService
}

// @Summary Get current device configuration
// @Description Get the last reported device state with an anomaly notification
// @Tags device
// @Produce json
// @Success 200 {object} hubservice.CurrentConfig
// @Failure 500 {object} errors.APIError
// @Router /currentConfig [get]
func (h *DeviceConfigHandlers) GetCurrentConfig(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	config, err := h.hubservice.CurrentConfig(r.Context())
	if err != nil {
		respondWithError(w, errors.NewInternalError("failed to load current configuration", err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, config)
}

// @Summary Update device configuration
// @Description Forward allowed configuration fields to the device; unknown fields are ignored
// @Tags device
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.APIError
// @Failure 502 {object} errors.APIError
// @Router /updateConfig [post]
func (h *DeviceConfigHandlers) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	requestID := nuts.NID("req", 12)

	var delta map[string]any
	if err := json.NewDecoder(r.Body).Decode(&delta); err != nil {
		respondWithError(w, errors.NewValidationError("invalid request body", err).WithRequestID(requestID))
		return
	}

	if _, err := h.hubservice.PublishConfigDelta(delta); err != nil {
		respondWithError(w, errors.AsAPIError(err).WithRequestID(requestID))
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "Configuration updated successfully",
	})
}
