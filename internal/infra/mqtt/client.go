package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

//go:generate mockgen -source=client.go -destination=../../../test/unit/doubles/infra/mqtt/client_mock.go -package=mqtt

const (
	_defaultQoS      = 1
	_defaultRetained = false
	_connectTimeout  = 5 * time.Second
	_publishTimeout  = 5 * time.Second
	_disconnectQuiet = 250
)

var ErrPublishTimeout = errors.New("mqtt publish timed out")

// Client publishes JSON hints to the broker. The server never subscribes:
// agents listen for wake-ups and then poll the task API.
type Client interface {
	Publish(topic string, msg any) error
	Disconnect()
}

type SimpleClientOpts struct {
	Broker   string
	ClientID string
	Username string
	Password string
}

func (o SimpleClientOpts) validate() error {
	if o.Broker == "" {
		return errors.New("mqtt broker address is required")
	}
	if o.ClientID == "" {
		return errors.New("mqtt client id is required")
	}
	return nil
}

func NewSimpleClient(opts SimpleClientOpts) (*SimpleClient, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	pahoOpts := paho.NewClientOptions().
		AddBroker(opts.Broker).
		SetClientID(opts.ClientID).
		SetUsername(opts.Username).
		SetPassword(opts.Password).
		SetAutoReconnect(true).
		SetKeepAlive(10 * time.Second).
		SetConnectTimeout(_connectTimeout).
		SetOnConnectHandler(func(paho.Client) {
			slog.Info("connected to MQTT broker", slog.String("broker", opts.Broker))
		}).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			slog.Error("connection lost to MQTT broker", slog.String("error", err.Error()))
		})

	client := paho.NewClient(pahoOpts)
	token := client.Connect()
	if !token.WaitTimeout(_connectTimeout) {
		return nil, fmt.Errorf("connecting to %s: timed out", opts.Broker)
	}
	if token.Error() != nil {
		return nil, fmt.Errorf("connecting to %s: %w", opts.Broker, token.Error())
	}

	return NewSimpleClientWithPaho(client), nil
}

func NewSimpleClientWithPaho(client paho.Client) *SimpleClient {
	return &SimpleClient{client: client}
}

var _ Client = (*SimpleClient)(nil)

type SimpleClient struct {
	client paho.Client
}

func (c *SimpleClient) Publish(topic string, msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message: %w", err)
	}

	token := c.client.Publish(topic, _defaultQoS, _defaultRetained, payload)
	if !token.WaitTimeout(_publishTimeout) {
		return fmt.Errorf("publishing to topic %s: %w", topic, ErrPublishTimeout)
	}
	if token.Error() != nil {
		return fmt.Errorf("publishing to topic %s: %w", topic, token.Error())
	}

	return nil
}

func (c *SimpleClient) Disconnect() {
	c.client.Disconnect(_disconnectQuiet)
}
