package smartschedule

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/theoremus-urban-solutions/smart-schedule/realtime"
	"github.com/theoremus-urban-solutions/smart-schedule/schedule"
	"github.com/theoremus-urban-solutions/smart-schedule/utils"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// tripView is one schedule row with its realtime overlay and ferry
// transfer hints.
type tripView struct {
	schedule.ProcessedTrip
	Status                  *realtime.TripStatus `json:"status,omitempty"`
	QuickOutboundConnection bool                 `json:"quickOutboundConnection,omitempty"`
	QuickInboundConnection  bool                 `json:"quickInboundConnection,omitempty"`
}

type tripsResponse struct {
	From          schedule.Station     `json:"from"`
	To            schedule.Station     `json:"to"`
	Direction     schedule.Direction   `json:"direction"`
	DayType       schedule.DayType     `json:"dayType"`
	Trips         []tripView           `json:"trips"`
	NextTripIndex int                  `json:"nextTripIndex"`
	Alerts        []realtime.AlertView `json:"alerts"`
}

// handleTrips serves the schedule for a station pair with the realtime
// overlay applied. Optional ?day=weekday|weekend overrides today's variant.
func (a *App) handleTrips(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	from := schedule.Station(vars["from"])
	to := schedule.Station(vars["to"])
	if !schedule.IsStation(from) || !schedule.IsStation(to) {
		writeError(w, http.StatusBadRequest, "unknown station")
		return
	}
	if from == to {
		writeError(w, http.StatusBadRequest, "origin and destination must differ")
		return
	}

	now := a.now().In(a.loc)
	day := schedule.DayTypeFor(now)
	switch r.URL.Query().Get("day") {
	case "":
	case string(schedule.Weekday):
		day = schedule.Weekday
	case string(schedule.Weekend):
		day = schedule.Weekend
	default:
		writeError(w, http.StatusBadRequest, "day must be weekday or weekend")
		return
	}

	trips := a.index.Trips(from, to, day)
	statuses := a.statusMap(from, to, day, trips)

	views := make([]tripView, len(trips))
	for i, tr := range trips {
		v := tripView{ProcessedTrip: tr}
		if st, ok := statuses[tr.DepartureTime]; ok {
			s := st
			v.Status = &s
		}
		v.QuickOutboundConnection = utils.IsQuickConnection(tr.OutboundTransferMinutes())
		v.QuickInboundConnection = utils.IsQuickConnection(tr.InboundTransferMinutes())
		views[i] = v
	}

	alertsFeed, _ := a.poller.Alerts()
	writeJSON(w, http.StatusOK, tripsResponse{
		From:          from,
		To:            to,
		Direction:     schedule.DirectionBetween(from, to),
		DayType:       day,
		Trips:         views,
		NextTripIndex: schedule.NextTripIndex(trips, now),
		Alerts:        a.alertFilter.RelevantAlerts(alertsFeed, from, to, now),
	})
}

type alertsResponse struct {
	Alerts []realtime.AlertView `json:"alerts"`
}

// handleAlerts serves active alerts, optionally narrowed to a station pair
// via ?from= and ?to=.
func (a *App) handleAlerts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	from := schedule.Station(q.Get("from"))
	to := schedule.Station(q.Get("to"))
	if from != "" && !schedule.IsStation(from) {
		writeError(w, http.StatusBadRequest, "unknown station")
		return
	}
	if to != "" && !schedule.IsStation(to) {
		writeError(w, http.StatusBadRequest, "unknown station")
		return
	}

	feed, _ := a.poller.Alerts()
	writeJSON(w, http.StatusOK, alertsResponse{
		Alerts: a.alertFilter.RelevantAlerts(feed, from, to, a.now().In(a.loc)),
	})
}

type stationsResponse struct {
	Stations []schedule.Station `json:"stations"`
}

// handleStations lists the stations in canonical north-to-south order.
func (a *App) handleStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stationsResponse{Stations: schedule.AllStations()})
}
