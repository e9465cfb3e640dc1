package schedule

import (
	"log"
	"sort"
	"time"

	"github.com/theoremus-urban-solutions/smart-schedule/utils"
)

// Index is the precomputed schedule cross product. Build it once at startup
// and treat it as read-only; it is then safe for concurrent readers.
type Index struct {
	trips map[string][]ProcessedTrip
}

func indexKey(from, to Station, day DayType) string {
	return string(from) + "-" + string(to) + "-" + string(day)
}

// BuildIndex precomputes the (origin, destination, day-type) cross product
// from raw timetable data. Malformed or missing day-type tables degrade to
// an empty (or partial) index with a log line; callers treat "no trips" as a
// valid displayable state, never an error.
func BuildIndex(tt *Timetable) *Index {
	idx := &Index{trips: map[string][]ProcessedTrip{}}
	if tt == nil {
		log.Printf("schedule: no timetable data, serving empty index")
		return idx
	}
	if len(tt.Weekday.Southbound) == 0 && len(tt.Weekday.Northbound) == 0 {
		log.Printf("schedule: weekday timetable missing")
	}
	if len(tt.Weekend.Southbound) == 0 && len(tt.Weekend.Northbound) == 0 {
		log.Printf("schedule: weekend timetable missing")
	}
	idx.addDayType(Weekday, tt.Weekday, tt.WeekdayFerries)
	idx.addDayType(Weekend, tt.Weekend, tt.WeekendFerries)
	for key := range idx.trips {
		trips := idx.trips[key]
		sort.SliceStable(trips, func(i, j int) bool {
			return utils.ParseTimeToMinutes(trips[i].DepartureTime) <
				utils.ParseTimeToMinutes(trips[j].DepartureTime)
		})
	}
	return idx
}

func (idx *Index) addDayType(day DayType, sched TrainSchedule, ferries FerrySchedule) {
	idx.addTrips(day, Southbound, sched.Southbound, ferries)
	idx.addTrips(day, Northbound, sched.Northbound, ferries)
}

func (idx *Index) addTrips(day DayType, dir Direction, trips []TrainTrip, ferries FerrySchedule) {
	ferryIdx := StationIndexOf(FerryStation)
	for _, trip := range trips {
		for i, from := range Stations {
			for j, to := range Stations {
				if i == j {
					continue
				}
				// A trip list's declared direction must match the pair's
				// canonical-index direction, or the trip is not usable for
				// this pair.
				if DirectionBetween(from, to) != dir {
					continue
				}
				departure := trip.Times[i]
				arrival := trip.Times[j]
				if departure == NoStop || arrival == NoStop {
					continue
				}
				p := ProcessedTrip{
					Trip:          trip.Trip,
					Times:         trip.Times,
					From:          from,
					To:            to,
					Direction:     dir,
					DepartureTime: departure,
					ArrivalTime:   arrival,
					Valid:         true,
				}
				if ferryTime := trip.Times[ferryIdx]; ferryTime != NoStop {
					if to == FerryStation {
						p.OutboundFerry = findOutboundFerry(ferryTime, ferries.Outbound)
					}
					if from == FerryStation {
						p.InboundFerry = findInboundFerry(ferryTime, ferries.Inbound)
					}
				}
				key := indexKey(from, to, day)
				idx.trips[key] = append(idx.trips[key], p)
			}
		}
	}
}

// Trips returns the ordered trip list for a station pair and day-type. The
// returned slice is shared and must not be mutated.
func (idx *Index) Trips(from, to Station, day DayType) []ProcessedTrip {
	return idx.trips[indexKey(from, to, day)]
}

// NextTripIndex returns the index of the first trip that has not departed
// yet, or -1 when no trip remains today.
func NextTripIndex(trips []ProcessedTrip, now time.Time) int {
	for i := range trips {
		if !utils.IsTimeInPast(now, trips[i].DepartureTime) {
			return i
		}
	}
	return -1
}
