package realtime

import (
	"math"
	"time"

	"github.com/theoremus-urban-solutions/smart-schedule/gtfsrt"
	"github.com/theoremus-urban-solutions/smart-schedule/schedule"
	"github.com/theoremus-urban-solutions/smart-schedule/utils"
)

// Correlator matches realtime trip updates against static trips for one
// station pair using departure times rather than trip identifiers.
type Correlator struct {
	stopToStation map[string]schedule.Station
	loc           *time.Location
	now           func() time.Time
}

// NewCorrelator builds a correlator over the given GTFS stop id to station
// mapping. Times are interpreted in loc, the agency's timezone.
func NewCorrelator(stopToStation map[string]schedule.Station, loc *time.Location) *Correlator {
	return &Correlator{
		stopToStation: stopToStation,
		loc:           loc,
		now:           time.Now,
	}
}

// StatusForTrips derives the exposed status map for a static trip list and a
// realtime feed snapshot: one entry per scheduled departure that has realtime
// data, keyed by the static "HH:MM" departure at the rider's origin. Trips
// without an entry are running as scheduled as far as the feed knows.
//
// Pure with respect to its inputs; safe to call concurrently.
func (c *Correlator) StatusForTrips(from, to schedule.Station, trips []schedule.ProcessedTrip, feed *gtfsrt.TripUpdatesFeed) StatusMap {
	primary, fallback := c.correlate(from, to, trips, feed)
	out := make(StatusMap, len(primary))
	for k, v := range primary {
		out[k] = v
	}
	if len(fallback) == 0 {
		return out
	}
	for _, tr := range trips {
		if _, done := out[tr.DepartureTime]; done {
			continue
		}
		if st, ok := resolveFallback(tr, fallback); ok {
			out[tr.DepartureTime] = st
		}
	}
	return out
}

// correlate walks the feed once and produces two maps: primary entries keyed
// by the scheduled departure at the rider's origin, and fallback cancellation
// entries keyed by the raw origin start time of updates that matched nothing
// in the static index. Fallback keys are in route-origin time, not
// rider-origin time, so they must be resolved against each trip's full time
// row before use.
func (c *Correlator) correlate(from, to schedule.Station, trips []schedule.ProcessedTrip, feed *gtfsrt.TripUpdatesFeed) (StatusMap, StatusMap) {
	primary := make(StatusMap)
	fallback := make(StatusMap)
	if feed == nil || from == to {
		return primary, fallback
	}

	originTimes := originTimeIndex(trips)

	for i := range feed.Updates {
		u := &feed.Updates[i]
		if u.ScheduleRelationship == gtfsrt.TripCanceled {
			c.recordCancellation(u, from, originTimes, primary, fallback)
			continue
		}
		c.recordRunning(u, from, to, originTimes, primary)
	}
	return primary, fallback
}

// recordCancellation keys a cancellation by, in order of preference: the
// static departure matched via the origin-time index, the live time of the
// rider's own origin stop, or the raw origin start time as a fallback.
func (c *Correlator) recordCancellation(u *gtfsrt.TripUpdate, from schedule.Station, originTimes map[string]string, primary, fallback StatusMap) {
	start := startHHMM(u.StartTime)
	if dep, ok := originTimes[start]; ok {
		primary[dep] = TripStatus{Canceled: true}
		return
	}
	if su := c.findStopUpdate(u.StopTimeUpdates, from); su != nil {
		when := su.DepartureTime
		if when == 0 {
			when = su.ArrivalTime
		}
		if when > 0 {
			primary[utils.UnixToLocalHHMM(when, c.loc)] = TripStatus{Canceled: true}
			return
		}
	}
	if start != "" {
		fallback[start] = TripStatus{Canceled: true}
	}
}

// recordRunning derives skip flags, delay and live times for a non-canceled
// update. Delay comes from diffing the live departure against the static
// schedule anchored to the update's service date; the feed's own delay field
// is ignored except for duplicated trips, which have no static baseline.
func (c *Correlator) recordRunning(u *gtfsrt.TripUpdate, from, to schedule.Station, originTimes map[string]string, primary StatusMap) {
	fromUpdate := c.findStopUpdate(u.StopTimeUpdates, from)
	if fromUpdate == nil || fromUpdate.DepartureTime == 0 {
		return
	}
	toUpdate := c.findStopUpdate(u.StopTimeUpdates, to)

	st := TripStatus{
		OriginSkipped:      fromUpdate.ScheduleRelationship == gtfsrt.StopSkipped,
		DestinationSkipped: toUpdate != nil && toUpdate.ScheduleRelationship == gtfsrt.StopSkipped,
	}

	key, ok := originTimes[startHHMM(u.StartTime)]
	if ok {
		schedUnix := utils.ScheduledHHMMToUnix(c.serviceDate(u.StartDate), key, c.loc)
		if schedUnix > 0 {
			if mins := delayMinutes(fromUpdate.DepartureTime - schedUnix); mins > 0 {
				st.DelayMinutes = mins
				st.LiveDepartureTime = utils.UnixToLocalHHMM(fromUpdate.DepartureTime, c.loc)
			}
		}
	} else if u.ScheduleRelationship == gtfsrt.TripDuplicated {
		// An extra copy of a scheduled trip. Nothing in the timetable to
		// diff against, so this is the one case where the vendor's delay
		// field is trusted.
		delay := int64(fromUpdate.DepartureDelay)
		key = utils.UnixToLocalHHMM(fromUpdate.DepartureTime-delay, c.loc)
		if mins := delayMinutes(delay); mins > 0 {
			st.DelayMinutes = mins
			st.LiveDepartureTime = utils.UnixToLocalHHMM(fromUpdate.DepartureTime, c.loc)
		}
	} else {
		// No static counterpart and not a known duplicate; dropping it
		// beats inventing a row the timetable cannot render.
		return
	}

	if st.DelayMinutes > 0 && toUpdate != nil && toUpdate.ArrivalTime > 0 {
		st.LiveArrivalTime = utils.UnixToLocalHHMM(toUpdate.ArrivalTime, c.loc)
	}
	primary[key] = st
}

// findStopUpdate returns the first stop update that maps to the wanted
// station. Updates with unknown stop ids are skipped.
func (c *Correlator) findStopUpdate(updates []gtfsrt.StopTimeUpdate, want schedule.Station) *gtfsrt.StopTimeUpdate {
	for i := range updates {
		id := updates[i].StopID
		if id == "" {
			continue
		}
		if st, ok := c.stopToStation[id]; ok && st == want {
			return &updates[i]
		}
	}
	return nil
}

func (c *Correlator) serviceDate(startDate string) string {
	if startDate != "" {
		return startDate
	}
	return c.now().In(c.loc).Format("20060102")
}

// resolveFallback accepts a fallback cancellation for a trip only when the
// fallback key appears somewhere in the trip's own time row. Fallback keys
// are in route-origin time and a blind match would cancel the wrong trip.
func resolveFallback(tr schedule.ProcessedTrip, fallback StatusMap) (TripStatus, bool) {
	for _, t := range tr.Times {
		if t == schedule.NoStop {
			continue
		}
		if st, ok := fallback[t]; ok {
			return st, true
		}
	}
	return TripStatus{}, false
}

// originTimeIndex maps each trip's time at its first served station (in
// travel order) to its departure at the rider's origin. Realtime start times
// reference the route origin, while the rider cares about their own station;
// this index bridges the two.
func originTimeIndex(trips []schedule.ProcessedTrip) map[string]string {
	idx := make(map[string]string, len(trips))
	for _, tr := range trips {
		origin := absoluteOriginTime(tr)
		if origin == "" {
			continue
		}
		if _, dup := idx[origin]; !dup {
			idx[origin] = tr.DepartureTime
		}
	}
	return idx
}

// absoluteOriginTime is the trip's first non-sentinel time scanning the row
// in travel order, i.e. the departure from wherever this run actually starts.
func absoluteOriginTime(tr schedule.ProcessedTrip) string {
	if tr.Direction == schedule.Northbound {
		for i := schedule.StationCount - 1; i >= 0; i-- {
			if tr.Times[i] != schedule.NoStop {
				return tr.Times[i]
			}
		}
		return ""
	}
	for i := 0; i < schedule.StationCount; i++ {
		if tr.Times[i] != schedule.NoStop {
			return tr.Times[i]
		}
	}
	return ""
}

// startHHMM truncates a GTFS "HH:MM:SS" start time to "HH:MM".
func startHHMM(startTime string) string {
	if len(startTime) < 5 {
		return ""
	}
	return startTime[:5]
}

// delayMinutes rounds a positive seconds difference to whole minutes. Early
// or on-time departures yield zero; riders only see lateness.
func delayMinutes(diffSeconds int64) int {
	if diffSeconds <= 0 {
		return 0
	}
	return int(math.Round(float64(diffSeconds) / 60.0))
}
