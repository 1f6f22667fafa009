// Package devices implements the "devices" command, which lists all locations
// and devices registered to the account. Useful to find the MAC IDs to use in
// an entity filter file.
package devices

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/clambin/lyric-monitor/pkg/lyric"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Cmd = cobra.Command{
	Use:   "devices",
	Short: "List all registered Honeywell Home devices",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := viper.GetViper()
		httpClient := lyric.NewOAuth2Client(cmd.Context(),
			cfg.GetString("lyric.apikey"),
			cfg.GetString("lyric.secret"),
			cfg.GetString("lyric.refreshToken"),
		)
		api := lyric.New(httpClient, cfg.GetString("lyric.apikey"))

		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "  ")
		return ShowDevices(cmd.Context(), api, e)
	},
}

type Encoder interface {
	Encode(any) error
}

type LyricGetter interface {
	GetLocations(context.Context) ([]lyric.Location, error)
}

type device struct {
	MacID string
	Name  string
	Class string
}

type location struct {
	ID      int
	Name    string
	Devices []device
}

type report struct {
	Locations []location
}

func ShowDevices(ctx context.Context, c LyricGetter, e Encoder) error {
	locations, err := c.GetLocations(ctx)
	if err != nil {
		return fmt.Errorf("lyric: locations: %w", err)
	}

	var r report
	for _, l := range locations {
		entry := location{
			ID:   l.LocationID,
			Name: l.Name,
		}
		for _, d := range l.Devices {
			entry.Devices = append(entry.Devices, device{
				MacID: d.MacID,
				Name:  d.UserDefinedName(),
				Class: d.DeviceClass,
			})
		}
		r.Locations = append(r.Locations, entry)
	}

	return e.Encode(r)
}
