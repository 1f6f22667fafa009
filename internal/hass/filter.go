package hass

import (
	"io"

	"gopkg.in/yaml.v3"
)

// LoadEntityFilter reads the list of descriptor keys to publish, e.g.:
//
//	keys:
//	  - indoor_temperature
//	  - water_present
func LoadEntityFilter(r io.Reader) ([]string, error) {
	var cfg struct {
		Keys []string `yaml:"keys"`
	}
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Keys, nil
}
