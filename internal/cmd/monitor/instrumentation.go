package monitor

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/clambin/go-common/http/metrics"
	"github.com/clambin/go-common/http/roundtripper"
	"github.com/prometheus/client_golang/prometheus"
)

func instrumentRoundTripper(rt http.RoundTripper, registry prometheus.Registerer) http.RoundTripper {
	m := newLyricCallMetrics("lyric", "monitor")
	registry.MustRegister(m)
	return roundtripper.New(
		roundtripper.WithRequestMetrics(m),
		roundtripper.WithRoundTripper(rt),
	)
}

func newLyricCallMetrics(namespace, subsystem string) metrics.RequestMetrics {
	return metrics.NewRequestMetrics(metrics.Options{
		Namespace: namespace,
		Subsystem: subsystem,
		LabelValues: func(request *http.Request, statusCode int) (string, string, string) {
			const thermostatPath = "/v2/devices/thermostats"
			path := request.URL.Path
			if strings.HasPrefix(path, thermostatPath) {
				path = thermostatPath
			}
			return request.Method, path, strconv.Itoa(statusCode)
		},
	})
}
