// Package mqtt feeds presence transitions published on an MQTT broker into
// the presence service.
package mqtt

import (
	"encoding/json"
	"errors"
	"fmt"
	"presencewatch/internal/core/domain"
	coreerrors "presencewatch/internal/core/errors"
	"presencewatch/internal/core/ports"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

const (
	qos            = 1
	connectTimeout = 10 * time.Second
	quiesceMillis  = 250
)

type Config struct {
	Broker   string
	Topic    string
	Username string
	Password string
	ClientID string
}

// transitionMessage is the payload published by device probes. DeviceID may
// be omitted when the topic carries it as presence/<mac>/transitions.
type transitionMessage struct {
	DeviceID  string    `json:"device_id"`
	Timestamp time.Time `json:"timestamp"`
	State     string    `json:"state"`
}

type Subscriber struct {
	cfg         Config
	client      paho.Client
	presenceSvc ports.PresenceService
	logger      *zap.Logger
}

func NewSubscriber(cfg Config, svc ports.PresenceService, logger *zap.Logger) *Subscriber {
	s := &Subscriber{cfg: cfg, presenceSvc: svc, logger: logger}

	opts := paho.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetAutoReconnect(true)
	opts.SetCleanSession(true)
	opts.SetConnectTimeout(connectTimeout)
	// subscriptions do not survive a clean-session reconnect
	opts.SetOnConnectHandler(func(c paho.Client) {
		token := c.Subscribe(cfg.Topic, qos, s.onMessage)
		if token.Wait() && token.Error() != nil {
			s.logger.Error("MQTT subscribe failed",
				zap.String("topic", cfg.Topic),
				zap.Error(token.Error()))
			return
		}
		s.logger.Info("MQTT subscribed", zap.String("topic", cfg.Topic))
	})
	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		s.logger.Warn("MQTT connection lost", zap.Error(err))
	})

	s.client = paho.NewClient(opts)
	return s
}

// Start connects to the broker. Subscription happens in the connect handler.
func (s *Subscriber) Start() error {
	token := s.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connect to MQTT broker %s: timed out", s.cfg.Broker)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect to MQTT broker %s: %w", s.cfg.Broker, err)
	}
	return nil
}

func (s *Subscriber) Close() {
	if s.client.IsConnected() {
		s.client.Disconnect(quiesceMillis)
	}
}

func (s *Subscriber) onMessage(_ paho.Client, msg paho.Message) {
	err := s.handleMessage(msg.Topic(), msg.Payload())
	switch {
	case err == nil:
	case errors.Is(err, coreerrors.ErrOutOfOrder):
		// already logged by the service
	default:
		s.logger.Warn("MQTT message rejected",
			zap.String("topic", msg.Topic()),
			zap.Error(err))
	}
}

func (s *Subscriber) handleMessage(topic string, payload []byte) error {
	var m transitionMessage
	if err := json.Unmarshal(payload, &m); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	deviceID := m.DeviceID
	if deviceID == "" {
		deviceID = deviceFromTopic(topic)
	}
	if deviceID == "" {
		return fmt.Errorf("%w: no device id in payload or topic", coreerrors.ErrInvalidDeviceID)
	}
	if m.Timestamp.IsZero() {
		return errors.New("missing timestamp")
	}

	state, err := domain.ParseState(m.State)
	if err != nil {
		return err
	}

	return s.presenceSvc.ReportTransition(deviceID, m.Timestamp, state)
}

// deviceFromTopic returns the second level of presence/<mac>/transitions.
func deviceFromTopic(topic string) string {
	parts := strings.Split(topic, "/")
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
