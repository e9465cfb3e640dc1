package main

import (
	"context"
	"flag"
	"log"

	smartschedule "github.com/theoremus-urban-solutions/smart-schedule"
	"github.com/theoremus-urban-solutions/smart-schedule/config"
	"github.com/theoremus-urban-solutions/smart-schedule/internal"
)

func main() {
	configPath := flag.String("config", "config.yml", "path to configuration file")
	timetablePath := flag.String("timetable", "", "path to timetable file (overrides config)")
	tripUpdates := flag.String("tripUpdates", "", "GTFS-RT TripUpdates URL (overrides config)")
	serviceAlerts := flag.String("serviceAlerts", "", "GTFS-RT ServiceAlerts URL (overrides config)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	internal.InitLogging()

	cfg, err := config.LoadAppConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *timetablePath != "" {
		cfg.Schedule.TimetablePath = *timetablePath
	}
	if *tripUpdates != "" {
		cfg.GTFSRT.TripUpdatesURL = *tripUpdates
	}
	if *serviceAlerts != "" {
		cfg.GTFSRT.ServiceAlertsURL = *serviceAlerts
	}
	if *port > 0 {
		cfg.Server.Port = *port
	}

	app, err := smartschedule.NewApp(cfg)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := app.Start(ctx); err != nil {
		log.Printf("initial feed fetch failed, serving static schedule until feeds recover: %v", err)
	}

	server := app.StartServer()
	app.HandleGracefulShutdown(server)
}
