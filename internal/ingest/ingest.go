// FilePath: internal/ingest/ingest.go
package ingest

import (
	"context"
	"encoding/json"
	"time"

	"github.com/envsense/envhub/internal/devicestate"
	"github.com/envsense/envhub/internal/errors"
	"github.com/envsense/envhub/internal/models"
	"github.com/envsense/envhub/internal/repository"
	nuts "github.com/vaudience/go-nuts"
)

// Pipeline events
const (
	EventReadingStored   = "reading.stored"
	EventReadingDropped  = "reading.dropped"
	EventMessageRejected = "message.rejected"
)

const storeTimeout = 5 * time.Second

// Message is one raw inbound payload waiting to be processed.
type Message struct {
	Topic   string
	Payload []byte
}

// Pipeline consumes inbound device messages strictly one at a time. The
// transport callback only enqueues; a single consumer goroutine does the
// decoding, persistence and snapshot overwrite, so two messages can never
// interleave and the snapshot stays last-write-wins per message.
type Pipeline struct {
	readings repository.ReadingRepository
	cache    *devicestate.Cache
	queue    chan Message
	done     chan struct{}
	events   *nuts.EventEmitter
	now      func() time.Time
}

// New creates a pipeline. queueSize bounds the inbound buffer; when it is
// full further messages are dropped rather than blocking the transport.
func New(readings repository.ReadingRepository, cache *devicestate.Cache, queueSize int) *Pipeline {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Pipeline{
		readings: readings,
		cache:    cache,
		queue:    make(chan Message, queueSize),
		done:     make(chan struct{}),
		events:   nuts.NewEventEmitter(),
		now:      time.Now,
	}
}

// OnEvent registers a callback for pipeline events
func (p *Pipeline) OnEvent(event string, handler func(deviceID string)) {
	p.events.On(event, "ingest_handler", func(args ...interface{}) {
		if len(args) > 0 {
			if id, ok := args[0].(string); ok {
				handler(id)
			}
		}
	})
}

// Enqueue hands a raw message to the consumer. Safe to call from the
// transport's callback goroutine.
func (p *Pipeline) Enqueue(topic string, payload []byte) {
	msg := Message{Topic: topic, Payload: payload}
	select {
	case <-p.done:
	case p.queue <- msg:
	default:
		nuts.L.Warnf("[Ingest] Queue full, dropping message from topic %s", topic)
		p.events.Emit(EventMessageRejected, "")
	}
}

// Start launches the consumer goroutine.
func (p *Pipeline) Start() {
	go p.run()
}

// Stop terminates the consumer. Messages still queued are discarded.
func (p *Pipeline) Stop() {
	close(p.done)
}

func (p *Pipeline) run() {
	for {
		select {
		case <-p.done:
			return
		case msg := <-p.queue:
			p.process(msg)
		}
	}
}

// process handles a single message. Errors never escape: an invalid message
// is dropped without touching the store or the snapshot, a store failure is
// logged and the snapshot is still overwritten.
func (p *Pipeline) process(msg Message) {
	var payload models.TelemetryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		payloadErr := errors.NewPayloadError("malformed device payload", err)
		nuts.L.Warnf("[Ingest] Dropping message from topic %s: %v", msg.Topic, payloadErr)
		p.events.Emit(EventMessageRejected, "")
		return
	}
	if field := payload.MissingField(); field != "" {
		payloadErr := errors.NewPayloadError("missing required field: "+field, nil)
		nuts.L.Warnf("[Ingest] Dropping message from topic %s: %v", msg.Topic, payloadErr)
		p.events.Emit(EventMessageRejected, "")
		return
	}

	// The reading and the snapshot share one ingest-time wall clock reading;
	// device-supplied timestamps are not trusted.
	now := p.now()
	reading := &models.Reading{
		Date:        now.Format(models.DateLayout),
		Time:        now.Format(models.TimeLayout),
		Temperature: *payload.Temp,
		Humidity:    *payload.Humi,
		CO2:         *payload.Concentration,
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
	defer cancel()
	if err := p.readings.Insert(ctx, reading); err != nil {
		// No retry and no replay queue: the sample is lost, the operator is
		// told, and the next message is processed normally.
		nuts.L.Errorf("[Ingest] Failed to persist reading from device %s: %v", *payload.DeviceID, err)
		p.events.Emit(EventReadingDropped, *payload.DeviceID)
	} else {
		p.events.Emit(EventReadingStored, *payload.DeviceID)
	}

	// Device state is independent of persistence success.
	p.cache.Set(payload.Snapshot())
}
