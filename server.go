package smartschedule

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
)

// Router builds the HTTP routing table.
func (a *App) Router() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/api/health", a.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/stations", a.handleStations).Methods(http.MethodGet)
	r.HandleFunc("/api/trips/{from}/{to}", a.handleTrips).Methods(http.MethodGet)
	r.HandleFunc("/api/alerts", a.handleAlerts).Methods(http.MethodGet)
	return r
}

// StartServer starts the HTTP server in the background and returns it for
// shutdown handling.
func (a *App) StartServer() *http.Server {
	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()
	log.Printf("server listening on %s", addr)
	return server
}

// HandleGracefulShutdown blocks until SIGINT or SIGTERM, then stops the
// poller and drains the server.
func (a *App) HandleGracefulShutdown(server *http.Server) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Printf("shutdown signal received")

	a.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	} else {
		log.Printf("server shut down successfully")
	}
}
