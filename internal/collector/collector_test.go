package collector

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/internal/poller/testutils"
	"github.com/clambin/lyric-monitor/pkg/pubsub"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Collect(t *testing.T) {
	update := testutils.Update()
	c := Collector{Logger: slog.Default()}
	c.lastUpdate = &update

	require.NoError(t, testutil.CollectAndCompare(&c, strings.NewReader(`
# HELP lyric_binary_sensor_state State of a binary sensor entity. 1 if the condition is detected
# TYPE lyric_binary_sensor_state gauge
lyric_binary_sensor_state{class="connectivity",device="Basement",key="is_alive",location="Home"} 1
lyric_binary_sensor_state{class="connectivity",device="Living Room",key="is_alive",location="Home"} 1
lyric_binary_sensor_state{class="moisture",device="Basement",key="water_present",location="Home"} 0

# HELP lyric_sensor_info Textual state of a sensor entity. Always 1. See label 'state'
# TYPE lyric_sensor_info gauge
lyric_sensor_info{device="Basement",key="last_checkin",location="Home",state="2024-09-01T10:12:00Z"} 1
lyric_sensor_info{device="Living Room",key="setpoint_status",location="Home",state="Following Schedule"} 1

# HELP lyric_sensor_value Current value of a sensor entity. Unit as per the 'unit' label
# TYPE lyric_sensor_value gauge
lyric_sensor_value{class="battery",device="Basement",key="battery",location="Home",unit="%"} 94
lyric_sensor_value{class="humidity",device="Basement",key="humidity",location="Home",unit="%"} 52
lyric_sensor_value{class="humidity",device="Basement",key="warn_hum_max",location="Home",unit="%"} 70
lyric_sensor_value{class="humidity",device="Basement",key="warn_hum_min",location="Home",unit="%"} 20
lyric_sensor_value{class="humidity",device="Bedroom",key="room_humidity",location="Home",unit="%"} 48
lyric_sensor_value{class="humidity",device="Living Room",key="indoor_humidity",location="Home",unit="%"} 45
lyric_sensor_value{class="humidity",device="Living Room",key="outdoor_humidity",location="Home",unit="%"} 71
lyric_sensor_value{class="signal_strength",device="Basement",key="wifi_strength",location="Home",unit=""} 62
lyric_sensor_value{class="temperature",device="Basement",key="temperature",location="Home",unit="°C"} 18.1
lyric_sensor_value{class="temperature",device="Basement",key="warn_temp_max",location="Home",unit="°C"} 30
lyric_sensor_value{class="temperature",device="Basement",key="warn_temp_min",location="Home",unit="°C"} 5
lyric_sensor_value{class="temperature",device="Bedroom",key="room_temperature",location="Home",unit="°C"} 19
lyric_sensor_value{class="temperature",device="Living Room",key="indoor_temperature",location="Home",unit="°C"} 20.5
lyric_sensor_value{class="temperature",device="Living Room",key="outdoor_temperature",location="Home",unit="°C"} 9.5
`), "lyric_sensor_value", "lyric_sensor_info", "lyric_binary_sensor_state"))

	// next_period_time resolves against the wall clock; only check it's there
	assert.Equal(t, 1, testutil.CollectAndCount(&c, "lyric_sensor_timestamp_seconds"))
}

func TestCollector_Run(t *testing.T) {
	p := fakePoller{Publisher: pubsub.New[poller.Update](slog.Default())}
	c := Collector{Poller: &p, Logger: slog.Default()}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error)
	go func() {
		errCh <- c.Run(ctx)
	}()

	assert.Eventually(t, func() bool { return p.Subscribers() > 0 }, time.Second, 10*time.Millisecond)
	assert.Zero(t, testutil.CollectAndCount(&c))

	p.Publish(testutils.Update())
	assert.Eventually(t, func() bool { return testutil.CollectAndCount(&c) > 0 }, time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-errCh)
}

var _ poller.Poller = &fakePoller{}

type fakePoller struct {
	*pubsub.Publisher[poller.Update]
}

func (f *fakePoller) Refresh() {}
