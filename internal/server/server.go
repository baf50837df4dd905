// FilePath: internal/server/server.go
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"

	"github.com/envsense/envhub/api"
	"github.com/envsense/envhub/internal/config"
	"github.com/envsense/envhub/internal/database"
	"github.com/envsense/envhub/internal/devicestate"
	"github.com/envsense/envhub/internal/hubservice"
	"github.com/envsense/envhub/internal/ingest"
	"github.com/envsense/envhub/internal/messaging"
	"github.com/envsense/envhub/internal/monitoring"
	"github.com/envsense/envhub/internal/repository/postgres"
)

// Server wires the ingest pipeline and the HTTP API around one broker
// connection and one database.
type Server struct {
	config     *config.Config
	srv        *http.Server
	db         database.DB
	redis      *redis.Client
	mqtt       *messaging.Client
	pipeline   *ingest.Pipeline
	hubservice *hubservice.HubService
	monitoring *monitoring.Service
}

// New creates a new server instance
func New(cfg *config.Config) *Server {
	return &Server{config: cfg}
}

// Start connects the collaborators, begins consuming device messages and
// serves HTTP until an interrupt arrives.
func (s *Server) Start() error {
	db, err := database.NewPostgresDB(s.config.Database.Postgres)
	if err != nil {
		return err
	}
	s.db = db

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	readings, err := postgres.NewReadingRepository(db)
	if err != nil {
		return err
	}

	cache := s.initDeviceCache()

	mqttClient, err := messaging.Connect(s.config.MQTT)
	if err != nil {
		return err
	}
	s.mqtt = mqttClient

	s.monitoring = monitoring.NewService()
	s.pipeline = ingest.New(readings, cache, s.config.MQTT.QueueSize)
	s.setupEventHandlers()
	s.pipeline.Start()

	// Subscribe only after the consumer is running so no message is lost
	// between connect and first poll.
	if err := mqttClient.Subscribe(s.config.MQTT.StoreTopic, s.pipeline.Enqueue); err != nil {
		return err
	}

	s.hubservice = hubservice.New(readings, cache, mqttClient, s.config.MQTT.UpdateTopic)
	if err := s.hubservice.Validate(); err != nil {
		return err
	}

	router := api.NewRouter(s.hubservice, s.monitoring)
	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	s.srv = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:      cors(router),
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	go func() {
		nuts.L.Infof("[Server] Starting server on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			nuts.L.Errorf("[Server] Error starting server: %v", err)
			os.Exit(1)
		}
	}()

	return s.waitForShutdown()
}

// initDeviceCache builds the latest-config cache, mirrored through redis when
// a redis host is configured.
func (s *Server) initDeviceCache() *devicestate.Cache {
	if s.config.Redis.Host == "" {
		return devicestate.New()
	}

	s.redis = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", s.config.Redis.Host, s.config.Redis.Port),
		Password: s.config.Redis.Password,
		DB:       s.config.Redis.DB,
	})

	cache := devicestate.NewWithMirror(devicestate.NewRedisMirror(s.redis, s.config.Redis.SnapshotKey))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cache.Restore(ctx); err != nil {
		nuts.L.Warnf("[Server] Could not restore device snapshot from redis: %v", err)
	}
	return cache
}

// setupEventHandlers forwards pipeline events to monitoring
func (s *Server) setupEventHandlers() {
	s.pipeline.OnEvent(ingest.EventReadingStored, func(deviceID string) {
		s.monitoring.RecordEvent("reading_stored", map[string]string{
			"device_id": deviceID,
		})
	})

	s.pipeline.OnEvent(ingest.EventReadingDropped, func(deviceID string) {
		nuts.L.Warnf("[Server] Reading from device %s was not persisted", deviceID)
		s.monitoring.RecordEvent("reading_dropped", map[string]string{
			"device_id": deviceID,
		})
	})

	s.pipeline.OnEvent(ingest.EventMessageRejected, func(string) {
		s.monitoring.RecordEvent("message_rejected", nil)
	})
}

// waitForShutdown waits for interrupt signal and gracefully shuts down
func (s *Server) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	nuts.L.Infof("[Server] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}

	// Stop the inbound flow before the pipeline so no message is enqueued
	// into a stopped consumer.
	s.mqtt.Disconnect()
	s.pipeline.Stop()

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			nuts.L.Warnf("[Server] Error closing redis: %v", err)
		}
	}
	if err := s.db.Close(); err != nil {
		nuts.L.Warnf("[Server] Error closing database: %v", err)
	}

	nuts.L.Infof("[Server] Server shut down successfully")
	return nil
}
