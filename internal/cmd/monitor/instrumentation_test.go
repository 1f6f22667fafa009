package monitor

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/clambin/go-common/http/roundtripper"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_instrumentRoundTripper(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "locations",
			url:  "http://localhost/v2/locations",
			want: `
# HELP lyric_monitor_http_requests_total total number of http requests
# TYPE lyric_monitor_http_requests_total counter
lyric_monitor_http_requests_total{code="404",method="GET",path="/v2/locations"} 1
`,
		},
		{
			name: "priority",
			url:  "http://localhost/v2/devices/thermostats/00A01234/priority",
			want: `
# HELP lyric_monitor_http_requests_total total number of http requests
# TYPE lyric_monitor_http_requests_total counter
lyric_monitor_http_requests_total{code="404",method="GET",path="/v2/devices/thermostats"} 1
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			finalRoundTripper := roundtripper.RoundTripperFunc(func(request *http.Request) (*http.Response, error) {
				return &http.Response{StatusCode: http.StatusNotFound, Body: io.NopCloser(&bytes.Buffer{})}, nil
			})

			r := prometheus.NewPedanticRegistry()
			c := http.Client{Transport: instrumentRoundTripper(finalRoundTripper, r)}

			resp, err := c.Get(tt.url)
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.NoError(t, testutil.GatherAndCompare(r, strings.NewReader(tt.want), "lyric_monitor_http_requests_total"))
		})
	}
}
