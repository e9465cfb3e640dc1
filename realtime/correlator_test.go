package realtime

import (
	"testing"
	"time"

	"github.com/theoremus-urban-solutions/smart-schedule/gtfsrt"
	"github.com/theoremus-urban-solutions/smart-schedule/schedule"
	"github.com/theoremus-urban-solutions/smart-schedule/utils"
)

var testStops = map[string]schedule.Station{
	"71141": "Windsor",
	"71071": "Petaluma Downtown",
	"71021": "San Rafael",
}

const testDate = "20250623"

func laLocation(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		t.Fatalf("failed to load timezone: %v", err)
	}
	return loc
}

func makeTimes(entries map[schedule.Station]string) [schedule.StationCount]string {
	var times [schedule.StationCount]string
	for i := range times {
		times[i] = schedule.NoStop
	}
	for st, v := range entries {
		times[schedule.StationIndexOf(st)] = v
	}
	return times
}

// southboundTrip builds a ProcessedTrip from Petaluma Downtown to San Rafael
// over the given time row.
func southboundTrip(trip int, times [schedule.StationCount]string) schedule.ProcessedTrip {
	return schedule.ProcessedTrip{
		Trip:          trip,
		Times:         times,
		From:          "Petaluma Downtown",
		To:            "San Rafael",
		Direction:     schedule.Southbound,
		DepartureTime: times[schedule.StationIndexOf("Petaluma Downtown")],
		ArrivalTime:   times[schedule.StationIndexOf("San Rafael")],
		Valid:         true,
	}
}

func TestStatusForTripsDelayFromStaticDiff(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Windsor":           "08:00",
			"Petaluma Downtown": "08:30",
			"San Rafael":        "09:05",
		})),
	}

	schedDep := utils.ScheduledHHMMToUnix(testDate, "08:30", loc)
	schedArr := utils.ScheduledHHMMToUnix(testDate, "09:05", loc)
	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			TripID:    "SMART-101",
			StartDate: testDate,
			StartTime: "08:00:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				// The feed reports a zero delay field alongside shifted
				// times; only the times can be believed.
				{StopID: "71071", DepartureTime: schedDep + 300, DepartureDelay: 0},
				{StopID: "71021", ArrivalTime: schedArr + 300},
			},
		},
	}}

	got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)
	st, ok := got["08:30"]
	if !ok {
		t.Fatalf("expected status keyed by scheduled departure 08:30, got %v", got)
	}
	if st.DelayMinutes != 5 {
		t.Errorf("expected 5 minute delay, got %d", st.DelayMinutes)
	}
	if st.LiveDepartureTime != "08:35" {
		t.Errorf("expected live departure 08:35, got %q", st.LiveDepartureTime)
	}
	if st.LiveArrivalTime != "09:10" {
		t.Errorf("expected live arrival 09:10, got %q", st.LiveArrivalTime)
	}
	if st.Canceled || st.OriginSkipped || st.DestinationSkipped {
		t.Errorf("unexpected flags: %+v", st)
	}
}

func TestStatusForTripsIgnoresVendorDelayField(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	trips := []schedule.ProcessedTrip{
		southboundTrip(204, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "09:10",
			"San Rafael":        "09:45",
		})),
	}

	schedDep := utils.ScheduledHHMMToUnix(testDate, "09:10", loc)
	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			TripID:    "SMART-204",
			StartDate: testDate,
			StartTime: "09:10:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "71071", DepartureTime: schedDep + 480, DepartureDelay: 0},
			},
		},
	}}

	st := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)["09:10"]
	if st.DelayMinutes != 8 {
		t.Errorf("expected 8 minute delay from static diff, got %d", st.DelayMinutes)
	}
	if st.LiveDepartureTime != "09:18" {
		t.Errorf("expected live departure 09:18, got %q", st.LiveDepartureTime)
	}
}

func TestStatusForTripsOnTimeAndEarly(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "10:00",
			"San Rafael":        "10:35",
		})),
		southboundTrip(2, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "11:00",
			"San Rafael":        "11:35",
		})),
	}

	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			StartDate: testDate,
			StartTime: "10:00:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "71071", DepartureTime: utils.ScheduledHHMMToUnix(testDate, "10:00", loc)},
			},
		},
		{
			StartDate: testDate,
			StartTime: "11:00:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "71071", DepartureTime: utils.ScheduledHHMMToUnix(testDate, "11:00", loc) - 120},
			},
		},
	}}

	got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)
	for _, key := range []string{"10:00", "11:00"} {
		st := got[key]
		if st.DelayMinutes != 0 || st.LiveDepartureTime != "" || st.LiveArrivalTime != "" {
			t.Errorf("%s: expected no delay markers, got %+v", key, st)
		}
	}
}

func TestStatusForTripsDuplicatedWithoutStaticMatch(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	// No static trip departs 09:10; the duplicate exists only in the feed.
	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "08:40",
			"San Rafael":        "09:15",
		})),
	}

	base := utils.ScheduledHHMMToUnix(testDate, "09:10", loc)
	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			TripID:               "SMART-204_09:10",
			ScheduleRelationship: gtfsrt.TripDuplicated,
			DuplicatedTripRef:    "SMART-204",
			StartDate:            testDate,
			StartTime:            "09:10:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "71071", DepartureTime: base + 480, DepartureDelay: 480},
			},
		},
	}}

	got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)
	st, ok := got["09:10"]
	if !ok {
		t.Fatalf("expected duplicate keyed by back-computed departure 09:10, got %v", got)
	}
	if st.DelayMinutes != 8 || st.LiveDepartureTime != "09:18" {
		t.Errorf("expected vendor delay honored for duplicate, got %+v", st)
	}
}

func TestStatusForTripsCancellationViaOriginIndex(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	// Route origin 07:45 at Windsor, rider boards at 07:52. The status must
	// surface under the rider's own departure key.
	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Windsor":           "07:45",
			"Petaluma Downtown": "07:52",
			"San Rafael":        "08:27",
		})),
	}

	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			ScheduleRelationship: gtfsrt.TripCanceled,
			StartDate:            testDate,
			StartTime:            "07:45:00",
		},
	}}

	got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)
	if st, ok := got["07:52"]; !ok || !st.Canceled {
		t.Errorf("expected cancellation keyed at 07:52, got %v", got)
	}
	if _, ok := got["07:45"]; ok {
		t.Errorf("route-origin key must not leak into the exposed map: %v", got)
	}
}

func TestStatusForTripsCancellationFallbackRowScan(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	// The feed's start time matches no trip's first served station but does
	// appear mid-row, so the fallback map plus time-row scan must find it.
	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Windsor":               "06:05",
			"Sonoma County Airport": "06:13",
			"Petaluma Downtown":     "06:45",
			"San Rafael":            "07:20",
		})),
		southboundTrip(2, makeTimes(map[schedule.Station]string{
			"Windsor":           "07:05",
			"Petaluma Downtown": "07:45",
			"San Rafael":        "08:20",
		})),
	}

	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			ScheduleRelationship: gtfsrt.TripCanceled,
			StartDate:            testDate,
			StartTime:            "06:13:00",
		},
	}}

	got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)
	if st, ok := got["06:45"]; !ok || !st.Canceled {
		t.Errorf("expected fallback cancellation resolved to 06:45, got %v", got)
	}
	if _, ok := got["07:45"]; ok {
		t.Errorf("fallback must not attach to trips whose rows lack the key: %v", got)
	}
}

func TestStatusForTripsCancellationViaStopUpdate(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "12:30",
			"San Rafael":        "13:05",
		})),
	}

	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			ScheduleRelationship: gtfsrt.TripCanceled,
			StartDate:            testDate,
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "71071", DepartureTime: utils.ScheduledHHMMToUnix(testDate, "12:30", loc)},
			},
		},
	}}

	got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)
	if st, ok := got["12:30"]; !ok || !st.Canceled {
		t.Errorf("expected cancellation keyed via origin stop update, got %v", got)
	}
}

func TestStatusForTripsSkippedStops(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "14:00",
			"San Rafael":        "14:35",
		})),
	}

	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		{
			StartDate: testDate,
			StartTime: "14:00:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{
					StopID:               "71071",
					DepartureTime:        utils.ScheduledHHMMToUnix(testDate, "14:00", loc),
					ScheduleRelationship: gtfsrt.StopSkipped,
				},
				{
					StopID:               "71021",
					ScheduleRelationship: gtfsrt.StopSkipped,
				},
			},
		},
	}}

	st := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed)["14:00"]
	if !st.OriginSkipped || !st.DestinationSkipped {
		t.Errorf("expected both skip flags, got %+v", st)
	}
}

func TestStatusForTripsDropsUncorrelatable(t *testing.T) {
	loc := laLocation(t)
	c := NewCorrelator(testStops, loc)

	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "15:00",
			"San Rafael":        "15:35",
		})),
	}

	feed := &gtfsrt.TripUpdatesFeed{Updates: []gtfsrt.TripUpdate{
		// Unknown stop id only; nothing maps to the rider's origin.
		{
			StartDate: testDate,
			StartTime: "15:00:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "99999", DepartureTime: utils.ScheduledHHMMToUnix(testDate, "15:00", loc)},
			},
		},
		// No static counterpart and not a duplicate.
		{
			StartDate: testDate,
			StartTime: "16:40:00",
			StopTimeUpdates: []gtfsrt.StopTimeUpdate{
				{StopID: "71071", DepartureTime: utils.ScheduledHHMMToUnix(testDate, "16:40", loc)},
			},
		},
	}}

	if got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, feed); len(got) != 0 {
		t.Errorf("expected no statuses, got %v", got)
	}
}

func TestStatusForTripsNilFeed(t *testing.T) {
	c := NewCorrelator(testStops, laLocation(t))
	trips := []schedule.ProcessedTrip{
		southboundTrip(1, makeTimes(map[schedule.Station]string{
			"Petaluma Downtown": "15:00",
			"San Rafael":        "15:35",
		})),
	}
	if got := c.StatusForTrips("Petaluma Downtown", "San Rafael", trips, nil); len(got) != 0 {
		t.Errorf("expected empty map for nil feed, got %v", got)
	}
}
