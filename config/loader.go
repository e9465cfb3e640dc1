package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults for the SMART line.
const (
	DefaultPort                    = 8080
	DefaultTimezone                = "America/Los_Angeles"
	DefaultTimetablePath           = "timetable.yml"
	DefaultTripUpdatesIntervalMS   = 30000
	DefaultServiceAlertsIntervalMS = 300000
	DefaultTimeoutMS               = 10000
	DefaultRetries                 = 2
)

// defaultStopStations maps SMART's platform stop ids from stops.txt to
// station names. Overridable from the config file when the agency reissues
// its static feed.
var defaultStopStations = map[string]string{
	"71011": "Larkspur",
	"71012": "Larkspur",
	"71021": "San Rafael",
	"71022": "San Rafael",
	"71031": "Marin Civic Center",
	"71032": "Marin Civic Center",
	"71041": "Novato Hamilton",
	"71042": "Novato Hamilton",
	"71051": "Novato Downtown",
	"71052": "Novato Downtown",
	"71061": "Novato San Marin",
	"71062": "Novato San Marin",
	"71071": "Petaluma Downtown",
	"71072": "Petaluma Downtown",
	"71081": "Petaluma North",
	"71082": "Petaluma North",
	"71091": "Cotati",
	"71092": "Cotati",
	"71101": "Rohnert Park",
	"71102": "Rohnert Park",
	"71111": "Santa Rosa Downtown",
	"71112": "Santa Rosa Downtown",
	"71121": "Santa Rosa North",
	"71122": "Santa Rosa North",
	"71131": "Sonoma County Airport",
	"71132": "Sonoma County Airport",
	"71141": "Windsor",
	"71142": "Windsor",
}

// LoadAppConfig loads and validates the application configuration. A missing
// file yields the defaults; a present but malformed or invalid file is an
// error.
func LoadAppConfig(path string) (*AppConfig, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *AppConfig {
	cfg := &AppConfig{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultPort
	}
	if cfg.Schedule.Timezone == "" {
		cfg.Schedule.Timezone = DefaultTimezone
	}
	if cfg.Schedule.TimetablePath == "" {
		cfg.Schedule.TimetablePath = DefaultTimetablePath
	}
	if cfg.GTFSRT.TripUpdatesIntervalMS == 0 {
		cfg.GTFSRT.TripUpdatesIntervalMS = DefaultTripUpdatesIntervalMS
	}
	if cfg.GTFSRT.ServiceAlertsIntervalMS == 0 {
		cfg.GTFSRT.ServiceAlertsIntervalMS = DefaultServiceAlertsIntervalMS
	}
	if cfg.GTFSRT.TimeoutMS == 0 {
		cfg.GTFSRT.TimeoutMS = DefaultTimeoutMS
	}
	if cfg.GTFSRT.Retries == 0 {
		cfg.GTFSRT.Retries = DefaultRetries
	}
	if len(cfg.StopStations) == 0 {
		cfg.StopStations = defaultStopStations
	}
}
