package smartschedule

import "net/http"

type healthResponse struct {
	Status                 string `json:"status"`
	TripUpdatesEpoch       int64  `json:"trip_updates_epoch"`
	TripUpdatesRefreshed   int64  `json:"trip_updates_refreshed"`
	ServiceAlertsRefreshed int64  `json:"service_alerts_refreshed"`
}

// handleHealth reports liveness plus the age of the realtime snapshots.
// Zero epochs mean the feed has not been fetched successfully yet; the
// service is still healthy, just static-only.
func (a *App) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok"}
	if feed, at := a.poller.TripUpdates(); feed != nil {
		resp.TripUpdatesEpoch = feed.Timestamp
		resp.TripUpdatesRefreshed = at.Unix()
	}
	if feed, at := a.poller.Alerts(); feed != nil {
		resp.ServiceAlertsRefreshed = at.Unix()
	}
	writeJSON(w, http.StatusOK, resp)
}
