package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/envsense/envhub/api/resources"
	"github.com/envsense/envhub/internal/hubservice"
	"github.com/envsense/envhub/internal/monitoring"
)

type Router struct {
	router    *mux.Router
	resources *resources.Resources
}

func NewRouter(svc *hubservice.HubService, mon *monitoring.Service) *Router {
	r := &Router{
		router:    mux.NewRouter(),
		resources: resources.NewResources(svc, mon),
	}

	r.setupRoutes()
	return r
}

func (r *Router) setupRoutes() {
	// Dashboard-facing routes, paths kept stable for existing clients
	api := r.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/data", r.resources.Readings.GetData).Methods(http.MethodGet)
	api.HandleFunc("/currentConfig", r.resources.Device.GetCurrentConfig).Methods(http.MethodGet)
	api.HandleFunc("/updateConfig", r.resources.Device.UpdateConfig).Methods(http.MethodPost)

	// Operational routes
	v1 := r.router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
	v1.HandleFunc("/metrics", r.resources.Metrics).Methods(http.MethodGet)

	// Bare liveness probe for load balancers
	r.router.HandleFunc("/health", r.resources.HealthCheck).Methods(http.MethodGet)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
