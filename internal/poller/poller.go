// Package poller periodically fetches the state of all registered devices
// and fans it out to subscribers.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/clambin/lyric-monitor/pkg/lyric"
	"github.com/clambin/lyric-monitor/pkg/pubsub"
	"golang.org/x/sync/errgroup"
)

// Poller gives subscribers access to the device state snapshots.
type Poller interface {
	Subscribe() chan Update
	Unsubscribe(ch chan Update)
	Refresh()
}

// LyricGetter is the part of the lyric API client used by the poller.
type LyricGetter interface {
	GetLocations(ctx context.Context) ([]lyric.Location, error)
	GetPriority(ctx context.Context, locationID int, deviceID string) (lyric.Priority, error)
}

var _ Poller = &LyricPoller{}

// LyricPoller polls the Honeywell Home API at a fixed interval and publishes
// each snapshot to all subscribers.
type LyricPoller struct {
	LyricClient LyricGetter
	*pubsub.Publisher[Update]
	interval time.Duration
	logger   *slog.Logger
	refresh  chan struct{}
}

// New returns a LyricPoller polling with the provided client & interval.
func New(lyricClient LyricGetter, interval time.Duration, logger *slog.Logger) *LyricPoller {
	return &LyricPoller{
		LyricClient: lyricClient,
		Publisher:   pubsub.New[Update](logger.With(slog.String("component", "registry"))),
		interval:    interval,
		logger:      logger,
		refresh:     make(chan struct{}),
	}
}

// Run polls until ctx is canceled. The first poll happens after one
// interval; call Refresh to poll immediately.
func (p *LyricPoller) Run(ctx context.Context) error {
	p.logger.Debug("started", slog.Duration("interval", p.interval))
	defer p.logger.Debug("stopped")

	timer := time.NewTicker(p.interval)
	defer timer.Stop()

	for {
		shouldPoll := false
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			shouldPoll = true
		case <-p.refresh:
			shouldPoll = true
		}

		if shouldPoll {
			if err := p.poll(ctx); err != nil {
				p.logger.Error("failed to get device state", slog.Any("err", err))
			}
		}
	}
}

// Refresh triggers an immediate poll.
func (p *LyricPoller) Refresh() {
	p.refresh <- struct{}{}
}

func (p *LyricPoller) poll(ctx context.Context) error {
	start := time.Now()
	update, err := p.update(ctx)
	if err == nil {
		p.Publisher.Publish(update)
		p.logger.Debug("poll completed", slog.Duration("duration", time.Since(start)))
	}
	return err
}

func (p *LyricPoller) update(ctx context.Context) (Update, error) {
	var update Update
	var err error
	if update.Locations, err = p.LyricClient.GetLocations(ctx); err != nil {
		return Update{}, err
	}
	update.Rooms, err = p.getRooms(ctx, update.Locations)
	return update, err
}

// getRooms fetches the rooms & accessories for every thermostat. Leak
// detectors have no rooms.
func (p *LyricPoller) getRooms(ctx context.Context, locations []lyric.Location) (map[string][]lyric.Room, error) {
	rooms := make(map[string][]lyric.Room)
	var lock sync.Mutex
	var g errgroup.Group
	for _, location := range locations {
		for _, device := range location.Devices {
			if !device.IsThermostat() {
				continue
			}
			g.Go(func() error {
				priority, err := p.LyricClient.GetPriority(ctx, location.LocationID, device.DeviceID)
				if err != nil {
					return err
				}
				lock.Lock()
				defer lock.Unlock()
				rooms[device.MacID] = priority.CurrentPriority.Rooms
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rooms, nil
}
