// Package smartschedule assembles the schedule index, the realtime poller
// and the HTTP API into one application.
package smartschedule

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"

	"github.com/theoremus-urban-solutions/smart-schedule/config"
	"github.com/theoremus-urban-solutions/smart-schedule/gtfsrt"
	"github.com/theoremus-urban-solutions/smart-schedule/poller"
	"github.com/theoremus-urban-solutions/smart-schedule/realtime"
	"github.com/theoremus-urban-solutions/smart-schedule/schedule"
)

const (
	// Derived status maps are cached just under the trip-updates poll
	// interval so a fresh snapshot is never masked by a stale entry.
	statusCacheTTL  = 25 * time.Second
	statusCacheSize = 512
)

// App wires the static schedule, the feed poller and the realtime
// reconciliation together.
type App struct {
	cfg         *config.AppConfig
	index       *schedule.Index
	correlator  *realtime.Correlator
	alertFilter *realtime.AlertFilter
	poller      *poller.Poller
	loc         *time.Location
	statusCache gcache.Cache
	now         func() time.Time
}

// NewApp builds the application from configuration: loads the timetable,
// builds the station-pair index and prepares the poller. Call Start to begin
// feed polling.
func NewApp(cfg *config.AppConfig) (*App, error) {
	loc, err := time.LoadLocation(cfg.Schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	tt, err := schedule.LoadTimetable(cfg.Schedule.TimetablePath)
	if err != nil {
		return nil, fmt.Errorf("timetable: %w", err)
	}

	stops := make(map[string]schedule.Station, len(cfg.StopStations))
	for id, name := range cfg.StopStations {
		st := schedule.Station(name)
		if !schedule.IsStation(st) {
			return nil, fmt.Errorf("stop %s maps to unknown station %q", id, name)
		}
		stops[id] = st
	}

	client := gtfsrt.NewClient(time.Duration(cfg.GTFSRT.TimeoutMS) * time.Millisecond)
	p := poller.New(client, poller.Config{
		TripUpdatesURL:      cfg.GTFSRT.TripUpdatesURL,
		AlertsURL:           cfg.GTFSRT.ServiceAlertsURL,
		TripUpdatesInterval: time.Duration(cfg.GTFSRT.TripUpdatesIntervalMS) * time.Millisecond,
		AlertsInterval:      time.Duration(cfg.GTFSRT.ServiceAlertsIntervalMS) * time.Millisecond,
		Retries:             cfg.GTFSRT.Retries,
	})

	return &App{
		cfg:         cfg,
		index:       schedule.BuildIndex(tt),
		correlator:  realtime.NewCorrelator(stops, loc),
		alertFilter: realtime.NewAlertFilter(stops),
		poller:      p,
		loc:         loc,
		statusCache: gcache.New(statusCacheSize).LRU().Expiration(statusCacheTTL).Build(),
		now:         time.Now,
	}, nil
}

// Start begins feed polling. A failed initial fetch is logged by the caller
// and not fatal; the display degrades to static schedule data.
func (a *App) Start(ctx context.Context) error {
	return a.poller.Start(ctx)
}

// Stop halts feed polling.
func (a *App) Stop() {
	a.poller.Stop()
}

// statusMap returns the derived realtime status map for a station pair,
// computing and caching it on miss. The cache TTL keeps recomputation to
// roughly once per poll per requested pair.
func (a *App) statusMap(from, to schedule.Station, day schedule.DayType, trips []schedule.ProcessedTrip) realtime.StatusMap {
	key := fmt.Sprintf("%s|%s|%s", from, to, day)
	if v, err := a.statusCache.Get(key); err == nil {
		if m, ok := v.(realtime.StatusMap); ok {
			return m
		}
	}
	feed, _ := a.poller.TripUpdates()
	m := a.correlator.StatusForTrips(from, to, trips, feed)
	_ = a.statusCache.Set(key, m)
	return m
}
