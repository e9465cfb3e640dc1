package config

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration. Empty URLs disable
// the corresponding feed; the app then serves static schedule data only.
type GTFSRTConfig struct {
	TripUpdatesURL          string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	ServiceAlertsURL        string `yaml:"serviceAlertsURL" validate:"omitempty,url"`
	TripUpdatesIntervalMS   int    `yaml:"tripUpdatesIntervalMS" validate:"gte=0"`
	ServiceAlertsIntervalMS int    `yaml:"serviceAlertsIntervalMS" validate:"gte=0"`
	TimeoutMS               int    `yaml:"timeoutMS" validate:"gte=0"`
	Retries                 int    `yaml:"retries" validate:"gte=0,lte=10"`
}

// ScheduleConfig contains static timetable configuration
type ScheduleConfig struct {
	TimetablePath string `yaml:"timetablePath" validate:"required"`
	Timezone      string `yaml:"timezone" validate:"required"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Server   ServerConfig   `yaml:"server"`
	GTFSRT   GTFSRTConfig   `yaml:"gtfsrt"`
	Schedule ScheduleConfig `yaml:"schedule"`

	// StopStations maps GTFS platform stop ids to station names. Each
	// physical station has two platform entries, one per direction.
	StopStations map[string]string `yaml:"stopStations"`
}
