// Package collector exposes the entities built from the latest device state
// snapshot as Prometheus metrics.
package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/internal/sensors"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sensorValue = prometheus.NewDesc(
		prometheus.BuildFQName("lyric", "sensor", "value"),
		"Current value of a sensor entity. Unit as per the 'unit' label",
		[]string{"location", "device", "key", "class", "unit"},
		nil,
	)
	sensorTimestamp = prometheus.NewDesc(
		prometheus.BuildFQName("lyric", "sensor", "timestamp_seconds"),
		"Value of a timestamp sensor entity, as seconds since epoch",
		[]string{"location", "device", "key"},
		nil,
	)
	sensorInfo = prometheus.NewDesc(
		prometheus.BuildFQName("lyric", "sensor", "info"),
		"Textual state of a sensor entity. Always 1. See label 'state'",
		[]string{"location", "device", "key", "state"},
		nil,
	)
	binarySensorState = prometheus.NewDesc(
		prometheus.BuildFQName("lyric", "binary_sensor", "state"),
		"State of a binary sensor entity. 1 if the condition is detected",
		[]string{"location", "device", "key", "class"},
		nil,
	)
)

var _ prometheus.Collector = &Collector{}

// Collector caches the latest snapshot received from the Poller and renders
// it on every scrape. Entities without a state are skipped.
type Collector struct {
	Poller     poller.Poller
	Logger     *slog.Logger
	lock       sync.RWMutex
	lastUpdate *poller.Update
}

// Run caches updates until ctx is canceled.
func (c *Collector) Run(ctx context.Context) error {
	c.Logger.Debug("started")
	defer c.Logger.Debug("stopped")

	ch := c.Poller.Subscribe()
	defer c.Poller.Unsubscribe(ch)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update := <-ch:
			c.lock.Lock()
			c.lastUpdate = &update
			c.lock.Unlock()
		}
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- sensorValue
	ch <- sensorTimestamp
	ch <- sensorInfo
	ch <- binarySensorState
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.lastUpdate == nil {
		return
	}
	for _, entity := range sensors.Build(*c.lastUpdate) {
		c.collectEntity(ch, entity)
	}
}

func (c *Collector) collectEntity(ch chan<- prometheus.Metric, entity sensors.Entity) {
	switch state := entity.State.(type) {
	case nil:
	case float64:
		ch <- prometheus.MustNewConstMetric(sensorValue, prometheus.GaugeValue, state,
			entity.Location, entity.Device, entity.Key, string(entity.DeviceClass), entity.Unit)
	case bool:
		var value float64
		if state {
			value = 1.0
		}
		ch <- prometheus.MustNewConstMetric(binarySensorState, prometheus.GaugeValue, value,
			entity.Location, entity.Device, entity.Key, string(entity.DeviceClass))
	case time.Time:
		ch <- prometheus.MustNewConstMetric(sensorTimestamp, prometheus.GaugeValue, float64(state.Unix()),
			entity.Location, entity.Device, entity.Key)
	case string:
		ch <- prometheus.MustNewConstMetric(sensorInfo, prometheus.GaugeValue, 1,
			entity.Location, entity.Device, entity.Key, state)
	default:
		c.Logger.Warn("unexpected state type in entity. skipping collection",
			slog.String("id", entity.ID), slog.Any("state", entity.State))
	}
}
