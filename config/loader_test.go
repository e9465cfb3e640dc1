package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadAppConfigDefaults(t *testing.T) {
	cfg, err := LoadAppConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults, got %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("expected default port, got %d", cfg.Server.Port)
	}
	if cfg.Schedule.Timezone != DefaultTimezone {
		t.Errorf("expected default timezone, got %q", cfg.Schedule.Timezone)
	}
	if cfg.GTFSRT.TripUpdatesIntervalMS != DefaultTripUpdatesIntervalMS {
		t.Errorf("expected default poll interval, got %d", cfg.GTFSRT.TripUpdatesIntervalMS)
	}
	if cfg.StopStations["71071"] != "Petaluma Downtown" {
		t.Errorf("expected built-in stop mapping, got %q", cfg.StopStations["71071"])
	}
}

func TestLoadAppConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
gtfsrt:
  tripUpdatesURL: https://example.org/tripupdates
  tripUpdatesIntervalMS: 15000
schedule:
  timetablePath: data/timetable.yml
stopStations:
  "90001": Windsor
`)
	cfg, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected overridden port, got %d", cfg.Server.Port)
	}
	if cfg.GTFSRT.TripUpdatesURL != "https://example.org/tripupdates" {
		t.Errorf("unexpected feed URL: %q", cfg.GTFSRT.TripUpdatesURL)
	}
	if cfg.GTFSRT.TripUpdatesIntervalMS != 15000 {
		t.Errorf("expected overridden interval, got %d", cfg.GTFSRT.TripUpdatesIntervalMS)
	}
	if cfg.GTFSRT.ServiceAlertsIntervalMS != DefaultServiceAlertsIntervalMS {
		t.Errorf("unset fields keep defaults, got %d", cfg.GTFSRT.ServiceAlertsIntervalMS)
	}
	if cfg.StopStations["90001"] != "Windsor" || len(cfg.StopStations) != 1 {
		t.Errorf("explicit stop map should replace the default: %v", cfg.StopStations)
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	tests := []struct {
		name, content string
	}{
		{"malformed yaml", "server: ["},
		{"bad url", "gtfsrt:\n  tripUpdatesURL: not-a-url\n"},
		{"negative interval", "gtfsrt:\n  tripUpdatesIntervalMS: -5\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadAppConfig(writeConfig(t, tc.content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
