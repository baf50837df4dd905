// FilePath: internal/hubservice/hubservice.go
package hubservice

import (
	"time"

	"github.com/envsense/envhub/internal/devicestate"
	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/repository"
)

// Publisher forwards a payload to the device over the messaging channel.
type Publisher interface {
	Publish(topic string, payload []byte) error
}

// HubService contains the repositories and device-facing dependencies
type HubService struct {
	Readings repository.ReadingRepository
	Device   *devicestate.Cache

	publisher   Publisher
	updateTopic string
	now         func() time.Time
}

// New creates a new HubService instance
func New(
	readings repository.ReadingRepository,
	device *devicestate.Cache,
	publisher Publisher,
	updateTopic string,
) *HubService {
	return &HubService{
		Readings:    readings,
		Device:      device,
		publisher:   publisher,
		updateTopic: updateTopic,
		now:         time.Now,
	}
}

// Validate checks if all required dependencies are initialized
func (s *HubService) Validate() error {
	if s.Readings == nil {
		return ErrMissingDependency("readings")
	}
	if s.Device == nil {
		return ErrMissingDependency("device")
	}
	if s.publisher == nil {
		return ErrMissingDependency("publisher")
	}
	if s.updateTopic == "" {
		return ErrMissingDependency("updateTopic")
	}
	return nil
}

func ErrMissingDependency(name string) error {
	return errors.NewInternalError("missing dependency: "+name, nil)
}
