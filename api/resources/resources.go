// FilePath: api/resources/resources.go
package resources

import (
	"net/http"

	"github.com/envsense/envhub/internal/hubservice"
	"github.com/envsense/envhub/internal/monitoring"
	nuts "github.com/vaudience/go-nuts"
)

// Resources holds all HTTP resource handlers
type Resources struct {
	Readings   *ReadingHandlers
	Device     *DeviceConfigHandlers
	monitoring *monitoring.Service
}

// NewResources creates a new Resources instance
func NewResources(svc *hubservice.HubService, mon *monitoring.Service) *Resources {
	return &Resources{
		Readings:   &ReadingHandlers{hubservice: svc},
		Device:     &DeviceConfigHandlers{hubservice: svc},
		monitoring: mon,
	}
}

// HealthCheck reports liveness and the running version
func (r *Resources) HealthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok","version":"` + nuts.GetVersion() + `"}`))
}

// Metrics exposes the accumulated event counters
func (r *Resources) Metrics(w http.ResponseWriter, req *http.Request) {
	respondWithJSON(w, http.StatusOK, r.monitoring.Counts())
}
