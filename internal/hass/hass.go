// Package hass announces all entities to Home Assistant through MQTT
// discovery and publishes their states on every device state snapshot.
package hass

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clambin/go-common/set"
	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/internal/sensors"
	pahomqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	payloadOnline  = "online"
	payloadOffline = "offline"
)

// Config holds the MQTT connection & topic layout settings.
type Config struct {
	Broker          string
	ClientID        string
	Username        string
	Password        string
	TopicPrefix     string
	DiscoveryPrefix string
	// Keys restricts publishing to these descriptor keys. Empty means all.
	Keys []string
}

type mqttClient interface {
	Connect() pahomqtt.Token
	Publish(topic string, qos byte, retained bool, payload any) pahomqtt.Token
	Disconnect(quiesce uint)
}

// Bridge connects the poller to an MQTT broker: retained discovery configs
// announce each entity once, state topics carry the entity states.
type Bridge struct {
	Poller    poller.Poller
	Logger    *slog.Logger
	cfg       Config
	client    mqttClient
	keys      set.Set[string]
	announced set.Set[string]
}

// New returns a Bridge for the provided broker configuration.
func New(cfg Config, p poller.Poller, logger *slog.Logger) *Bridge {
	if cfg.TopicPrefix == "" {
		cfg.TopicPrefix = "lyric"
	}
	if cfg.DiscoveryPrefix == "" {
		cfg.DiscoveryPrefix = "homeassistant"
	}
	if cfg.ClientID == "" {
		cfg.ClientID = "lyric-monitor"
	}

	b := Bridge{
		Poller:    p,
		Logger:    logger,
		cfg:       cfg,
		keys:      set.New(cfg.Keys...),
		announced: set.New[string](),
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetWill(b.availabilityTopic(), payloadOffline, 1, true)
	if cfg.Username != "" {
		opts = opts.SetUsername(cfg.Username).SetPassword(cfg.Password)
	}
	b.client = pahomqtt.NewClient(opts)
	return &b
}

// Run publishes until ctx is canceled.
func (b *Bridge) Run(ctx context.Context) error {
	if token := b.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt: connect: %w", token.Error())
	}
	b.publish(b.availabilityTopic(), payloadOnline, true)
	b.Logger.Debug("started", slog.String("broker", b.cfg.Broker))
	defer b.Logger.Debug("stopped")

	ch := b.Poller.Subscribe()
	defer b.Poller.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			b.publish(b.availabilityTopic(), payloadOffline, true)
			b.client.Disconnect(250)
			return nil
		case update := <-ch:
			b.publishUpdate(update)
		}
	}
}

func (b *Bridge) publishUpdate(update poller.Update) {
	for _, entity := range sensors.Build(update) {
		if len(b.keys) > 0 && !b.keys.Contains(entity.Key) {
			continue
		}
		uid := slug(entity.ID)
		if !b.announced.Contains(uid) {
			b.announce(uid, entity)
		}
		if entity.State == nil {
			continue
		}
		b.publish(b.stateTopic(uid), formatState(entity.State), false)
	}
}

func (b *Bridge) announce(uid string, entity sensors.Entity) {
	payload, err := json.Marshal(discoveryMessage{
		Name:              entity.Name,
		UniqueID:          uid,
		ObjectID:          uid,
		StateTopic:        b.stateTopic(uid),
		AvailabilityTopic: b.availabilityTopic(),
		DeviceClass:       string(entity.DeviceClass),
		StateClass:        string(entity.StateClass),
		UnitOfMeasurement: entity.Unit,
		Device: discoveryDevice{
			Identifiers:  []string{slug(entity.Location + "_" + entity.Device)},
			Name:         entity.Device,
			Manufacturer: "Honeywell",
		},
	})
	if err != nil {
		b.Logger.Error("failed to build discovery message", slog.String("id", entity.ID), slog.Any("err", err))
		return
	}
	b.publish(b.cfg.DiscoveryPrefix+"/"+string(entity.Platform)+"/"+uid+"/config", string(payload), true)
	b.announced.Add(uid)
}

func (b *Bridge) publish(topic, payload string, retained bool) {
	token := b.client.Publish(topic, 1, retained, payload)
	if token.Wait() && token.Error() != nil {
		b.Logger.Error("failed to publish", slog.String("topic", topic), slog.Any("err", token.Error()))
	}
}

func (b *Bridge) availabilityTopic() string {
	return b.cfg.TopicPrefix + "/status"
}

func (b *Bridge) stateTopic(uid string) string {
	return b.cfg.TopicPrefix + "/" + uid + "/state"
}

// slug normalizes an entity ID for use in topics & unique IDs.
func slug(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, id)
}
