package schedule

import "time"

// NoStop is the timetable sentinel meaning a trip does not stop at a station.
const NoStop = "~~"

// DayType selects the weekday or weekend/holiday schedule variant.
type DayType string

const (
	Weekday DayType = "weekday"
	Weekend DayType = "weekend"
)

// DayTypeFor returns the schedule variant in effect on the given date.
func DayTypeFor(t time.Time) DayType {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return Weekend
	default:
		return Weekday
	}
}

// TrainTrip is one physical run. Times[i] is the scheduled "HH:MM" wall-clock
// time at the station occupying canonical index i, or NoStop. There is
// exactly one canonical array per run per day-type.
type TrainTrip struct {
	Trip  int
	Times [StationCount]string
}

// TrainSchedule holds the per-direction trip lists for one day-type.
type TrainSchedule struct {
	Southbound []TrainTrip
	Northbound []TrainTrip
}

// FerryConnection is one ferry sailing, as "HH:MM" wall-clock times.
type FerryConnection struct {
	Depart string `yaml:"depart" json:"depart"`
	Arrive string `yaml:"arrive" json:"arrive"`
}

// FerrySchedule holds the sailings for one day-type. Outbound sailings leave
// the ferry terminal after a train arrives; inbound sailings deliver riders
// to the terminal before a train departs.
type FerrySchedule struct {
	Outbound []FerryConnection
	Inbound  []FerryConnection
}

// Timetable is the raw static schedule data the index is built from.
type Timetable struct {
	Weekday        TrainSchedule
	Weekend        TrainSchedule
	WeekdayFerries FerrySchedule
	WeekendFerries FerrySchedule
}

// ProcessedTrip is an immutable view of a TrainTrip specialized to one
// (origin, destination) pair. Built once at startup for every station pair
// and day-type; never mutated afterwards.
type ProcessedTrip struct {
	Trip          int                  `json:"trip"`
	Times         [StationCount]string `json:"times"`
	From          Station              `json:"from"`
	To            Station              `json:"to"`
	Direction     Direction            `json:"direction"`
	DepartureTime string               `json:"departureTime"`
	ArrivalTime   string               `json:"arrivalTime"`
	OutboundFerry *FerryConnection     `json:"outboundFerry,omitempty"`
	InboundFerry  *FerryConnection     `json:"inboundFerry,omitempty"`
	Valid         bool                 `json:"-"`
}
