package monitor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/clambin/go-common/charmer"
	"github.com/clambin/go-common/taskmanager"
	"github.com/clambin/go-common/taskmanager/httpserver"
	promserver "github.com/clambin/go-common/taskmanager/prometheus"
	"github.com/clambin/lyric-monitor/internal/collector"
	"github.com/clambin/lyric-monitor/internal/hass"
	"github.com/clambin/lyric-monitor/internal/health"
	"github.com/clambin/lyric-monitor/internal/poller"
	"github.com/clambin/lyric-monitor/pkg/lyric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Cmd = cobra.Command{
	Use:   "monitor",
	Short: "Export Honeywell Home sensors to Prometheus & Home Assistant",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		logger := charmer.GetLogger(cmd)
		m, err := New(ctx, viper.GetViper(), prometheus.DefaultRegisterer, logger)
		if err != nil {
			return err
		}

		logger.Info("lyric-monitor starting", "version", cmd.Root().Version)
		defer logger.Info("lyric-monitor stopped")
		return m.Run(ctx)
	},
}

func New(ctx context.Context, cfg *viper.Viper, registry prometheus.Registerer, logger *slog.Logger) (*taskmanager.Manager, error) {
	httpClient := lyric.NewOAuth2Client(ctx,
		cfg.GetString("lyric.apikey"),
		cfg.GetString("lyric.secret"),
		cfg.GetString("lyric.refreshToken"),
	)
	httpClient.Transport = instrumentRoundTripper(httpClient.Transport, registry)
	api := lyric.New(httpClient, cfg.GetString("lyric.apikey"))

	// Do we have an entity filter for the Home Assistant bridge?
	keys, err := maybeLoadEntityFilter(filepath.Join(filepath.Dir(cfg.ConfigFileUsed()), "entities.yaml"))
	if err != nil {
		return nil, err
	}
	return taskmanager.New(makeTasks(cfg, api, keys, registry, logger)...), nil
}

func maybeLoadEntityFilter(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return hass.LoadEntityFilter(f)
}

func makeTasks(cfg *viper.Viper, api poller.LyricGetter, keys []string, registry prometheus.Registerer, l *slog.Logger) []taskmanager.Task {
	var tasks []taskmanager.Task

	// Poller
	p := poller.New(api, cfg.GetDuration("poller.interval"), l.With("component", "poller"))
	tasks = append(tasks, p)

	// Collector
	coll := &collector.Collector{Poller: p, Logger: l.With("component", "collector")}
	registry.MustRegister(coll)
	tasks = append(tasks, coll)

	// Prometheus Server
	tasks = append(tasks, promserver.New(promserver.WithAddr(cfg.GetString("exporter.addr"))))

	// Health Endpoint
	h := health.New(p, l.With("component", "health"))
	tasks = append(tasks, h)
	r := http.NewServeMux()
	r.Handle("/health", h)
	tasks = append(tasks, httpserver.New(cfg.GetString("health.addr"), r))

	// Home Assistant bridge
	if broker := cfg.GetString("mqtt.broker"); broker != "" {
		b := hass.New(hass.Config{
			Broker:          broker,
			Username:        cfg.GetString("mqtt.username"),
			Password:        cfg.GetString("mqtt.password"),
			TopicPrefix:     cfg.GetString("mqtt.topicPrefix"),
			DiscoveryPrefix: cfg.GetString("mqtt.discoveryPrefix"),
			Keys:            keys,
		}, p, l.With("component", "hass"))
		tasks = append(tasks, b)
	} else {
		l.Info("no mqtt broker configured. home assistant bridge will not run")
	}

	return tasks
}
