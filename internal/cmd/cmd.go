// Package cmd implements the lyric-monitor command line interface.
package cmd

import (
	"log/slog"
	"os"
	"time"

	"github.com/clambin/go-common/charmer"
	"github.com/clambin/lyric-monitor/internal/cmd/devices"
	"github.com/clambin/lyric-monitor/internal/cmd/monitor"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilename string
	RootCmd        = cobra.Command{
		Use:   "lyric-monitor",
		Short: "Monitor for Honeywell Home thermostats & leak detectors",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			charmer.SetJSONLogger(cmd, viper.GetBool("debug"))
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	RootCmd.PersistentFlags().StringVar(&configFilename, "config", "", "Configuration file")
	RootCmd.PersistentFlags().Bool("debug", false, "Log debug messages")
	_ = viper.BindPFlag("debug", RootCmd.PersistentFlags().Lookup("debug"))

	RootCmd.AddCommand(&monitor.Cmd, &devices.Cmd)
}

var args = charmer.Arguments{
	"debug":                charmer.Argument{Default: false, Help: "Log debug messages"},
	"lyric.apikey":         charmer.Argument{Default: "", Help: "Honeywell Home API consumer key"},
	"lyric.secret":         charmer.Argument{Default: "", Help: "Honeywell Home API consumer secret"},
	"lyric.refreshToken":   charmer.Argument{Default: "", Help: "Honeywell Home OAuth2 refresh token"},
	"exporter.addr":        charmer.Argument{Default: ":9090", Help: "Address of Prometheus exporter"},
	"poller.interval":      charmer.Argument{Default: 30 * time.Second, Help: "Poller interval"},
	"health.addr":          charmer.Argument{Default: ":8080", Help: "Address of /health endpoint"},
	"mqtt.broker":          charmer.Argument{Default: "", Help: "MQTT broker (empty: no Home Assistant bridge)"},
	"mqtt.username":        charmer.Argument{Default: "", Help: "MQTT username"},
	"mqtt.password":        charmer.Argument{Default: "", Help: "MQTT password"},
	"mqtt.topicPrefix":     charmer.Argument{Default: "lyric", Help: "MQTT state topic prefix"},
	"mqtt.discoveryPrefix": charmer.Argument{Default: "homeassistant", Help: "Home Assistant discovery topic prefix"},
}

func initConfig() {
	if configFilename != "" {
		viper.SetConfigFile(configFilename)
	} else {
		viper.AddConfigPath("/etc/lyric-monitor/")
		viper.AddConfigPath("$HOME/.lyric-monitor")
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
	}

	if err := charmer.SetDefaults(viper.GetViper(), args); err != nil {
		panic("failed to set viper defaults: " + err.Error())
	}

	viper.SetEnvPrefix("LYRIC_MONITOR")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		slog.Error("failed to read config file", "err", err)
		os.Exit(1)
	}
}
