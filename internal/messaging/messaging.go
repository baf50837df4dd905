// FilePath: internal/messaging/messaging.go
package messaging

import (
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/envsense/envhub/internal/config"
	"github.com/envsense/envhub/internal/errors"
	nuts "github.com/vaudience/go-nuts"
)

// Client wraps the shared MQTT connection used by both the inbound ingest
// path and the outbound config publisher.
type Client struct {
	client mqtt.Client
	qos    byte
}

// Connect dials the broker and blocks until the connection is established or
// fails.
func Connect(cfg config.MQTTConfig) (*Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetKeepAlive(cfg.Keepalive).
		SetCleanSession(true).
		SetAutoReconnect(true)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		nuts.L.Warnf("[MQTT] Connection lost: %v", err)
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		nuts.L.Infof("[MQTT] Reconnecting to %s", cfg.BrokerURL)
	})

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.NewTransportError("failed to connect to broker", token.Error())
	}

	nuts.L.Infof("[MQTT] Connected to %s as %s", cfg.BrokerURL, cfg.ClientID)
	return &Client{client: client, qos: cfg.QoS}, nil
}

// Subscribe registers handler for every message delivered on topic. The
// handler runs on the transport's goroutine and must not block.
func (c *Client) Subscribe(topic string, handler func(topic string, payload []byte)) error {
	token := c.client.Subscribe(topic, c.qos, func(_ mqtt.Client, msg mqtt.Message) {
		handler(msg.Topic(), msg.Payload())
	})
	if token.Wait() && token.Error() != nil {
		return errors.NewTransportError("failed to subscribe to "+topic, token.Error())
	}

	nuts.L.Infof("[MQTT] Subscribed to %s", topic)
	return nil
}

// Publish sends payload on topic and waits for the transport to accept it.
// Delivery to the device is not confirmed beyond the broker handshake.
func (c *Client) Publish(topic string, payload []byte) error {
	token := c.client.Publish(topic, c.qos, false, payload)
	if token.Wait() && token.Error() != nil {
		return errors.NewTransportError("failed to publish to "+topic, token.Error())
	}
	return nil
}

// Disconnect closes the connection, allowing a short grace period for
// in-flight work.
func (c *Client) Disconnect() {
	c.client.Disconnect(250)
}
