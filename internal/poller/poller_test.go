package poller_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/internal/poller/testutils"
	"github.com/clambin/lyric-monitor/pkg/lyric"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLyricPoller_Run(t *testing.T) {
	client := fakeLyricClient{update: testutils.Update()}

	p := poller.New(client, time.Minute, slog.Default())
	ctx, cancel := context.WithCancel(context.Background())

	ch := p.Subscribe()
	errCh := make(chan error)
	go func() {
		errCh <- p.Run(ctx)
	}()
	p.Refresh()
	update := <-ch

	require.Len(t, update.Locations, 1)
	assert.Equal(t, "Home", update.Locations[0].Name)
	require.Len(t, update.Thermostats(), 1)
	assert.Equal(t, "Living Room", update.Thermostats()[0].Name)
	require.Len(t, update.LeakDetectors(), 1)
	assert.Equal(t, "Basement", update.LeakDetectors()[0].UserDefinedName())

	rooms, ok := update.Rooms[update.Thermostats()[0].MacID]
	require.True(t, ok)
	require.Len(t, rooms, 1)
	assert.Equal(t, "Bedroom", rooms[0].RoomName)

	_, ok = update.GetLocation("Home")
	assert.True(t, ok)
	_, ok = update.GetLocation("Office")
	assert.False(t, ok)

	p.Unsubscribe(ch)
	cancel()
	assert.NoError(t, <-errCh)
}

var _ poller.LyricGetter = fakeLyricClient{}

type fakeLyricClient struct {
	update poller.Update
	err    error
}

func (f fakeLyricClient) GetLocations(_ context.Context) ([]lyric.Location, error) {
	return f.update.Locations, f.err
}

func (f fakeLyricClient) GetPriority(_ context.Context, _ int, deviceID string) (lyric.Priority, error) {
	if f.err != nil {
		return lyric.Priority{}, f.err
	}
	for _, location := range f.update.Locations {
		for _, device := range location.Devices {
			if device.DeviceID == deviceID {
				return lyric.Priority{
					DeviceID:        deviceID,
					CurrentPriority: lyric.CurrentPriority{DeviceID: deviceID, Rooms: f.update.Rooms[device.MacID]},
				}, nil
			}
		}
	}
	return lyric.Priority{}, errors.New("unknown device: " + deviceID)
}
