package poller

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/theoremus-urban-solutions/smart-schedule/gtfsrt"
)

// Defaults match the cadence the feeds are published at: trip updates move
// every poll, alerts rarely do.
const (
	DefaultTripUpdatesInterval = 30 * time.Second
	DefaultAlertsInterval      = 5 * time.Minute
	DefaultRetries             = 2
	retryDelay                 = time.Second
)

// Config holds the feed endpoints and polling cadence. Zero values fall back
// to the defaults above; an empty URL disables that feed.
type Config struct {
	TripUpdatesURL      string
	AlertsURL           string
	TripUpdatesInterval time.Duration
	AlertsInterval      time.Duration
	Retries             int
}

// Poller periodically fetches both feeds and serves the latest successful
// snapshot of each. Safe for concurrent use.
type Poller struct {
	client *gtfsrt.Client
	cfg    Config

	mu              sync.RWMutex
	trips           *gtfsrt.TripUpdatesFeed
	alerts          *gtfsrt.AlertsFeed
	tripsRefreshed  time.Time
	alertsRefreshed time.Time

	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a poller over the given client. Call Start to begin polling.
func New(client *gtfsrt.Client, cfg Config) *Poller {
	if cfg.TripUpdatesInterval <= 0 {
		cfg.TripUpdatesInterval = DefaultTripUpdatesInterval
	}
	if cfg.AlertsInterval <= 0 {
		cfg.AlertsInterval = DefaultAlertsInterval
	}
	if cfg.Retries < 0 {
		cfg.Retries = DefaultRetries
	}
	return &Poller{
		client: client,
		cfg:    cfg,
		stopCh: make(chan struct{}),
	}
}

// Start performs an initial fetch of both feeds in parallel, then launches
// the background refresh loops. The returned error reports initial fetch
// failures only; the loops run regardless, so a feed that was down at boot
// is picked up on its next tick.
func (p *Poller) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return p.refreshTrips(gctx) })
	g.Go(func() error { return p.refreshAlerts(gctx) })
	err := g.Wait()

	p.wg.Add(2)
	go p.loop(ctx, p.cfg.TripUpdatesInterval, "trip updates", p.refreshTrips)
	go p.loop(ctx, p.cfg.AlertsInterval, "service alerts", p.refreshAlerts)
	return err
}

// Stop halts the refresh loops and waits for them to exit. Idempotent.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
	p.wg.Wait()
}

func (p *Poller) loop(ctx context.Context, interval time.Duration, name string, refresh func(context.Context) error) {
	defer p.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := refresh(ctx); err != nil {
				log.Printf("poller: %s refresh failed, keeping previous snapshot: %v", name, err)
			}
		}
	}
}

func (p *Poller) refreshTrips(ctx context.Context) error {
	var feed *gtfsrt.TripUpdatesFeed
	err := p.withRetry(ctx, func(ctx context.Context) error {
		var err error
		feed, err = p.client.FetchTripUpdates(ctx, p.cfg.TripUpdatesURL)
		return err
	})
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.trips = feed
	p.tripsRefreshed = time.Now()
	p.mu.Unlock()
	return nil
}

func (p *Poller) refreshAlerts(ctx context.Context) error {
	var feed *gtfsrt.AlertsFeed
	err := p.withRetry(ctx, func(ctx context.Context) error {
		var err error
		feed, err = p.client.FetchAlerts(ctx, p.cfg.AlertsURL)
		return err
	})
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.alerts = feed
	p.alertsRefreshed = time.Now()
	p.mu.Unlock()
	return nil
}

func (p *Poller) withRetry(ctx context.Context, fetch func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= p.cfg.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(retryDelay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = fetch(ctx); err == nil {
			return nil
		}
	}
	return err
}

// TripUpdates returns the latest trip-updates snapshot and when it was
// fetched. Nil until the first successful fetch.
func (p *Poller) TripUpdates() (*gtfsrt.TripUpdatesFeed, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.trips, p.tripsRefreshed
}

// Alerts returns the latest service-alerts snapshot and when it was fetched.
// Nil until the first successful fetch.
func (p *Poller) Alerts() (*gtfsrt.AlertsFeed, time.Time) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.alerts, p.alertsRefreshed
}
