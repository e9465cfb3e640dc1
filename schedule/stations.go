package schedule

// Station is one of the physical stops on the line, identified by name.
type Station string

// StationCount is the number of physical stations on the line. Every
// per-trip time array has exactly this many entries.
const StationCount = 14

// FerryStation is the station with a ferry terminal connection.
const FerryStation = Station("Larkspur")

// Stations lists every station in canonical north-to-south order. Index
// position is significant: per-trip time arrays are indexed by this order
// regardless of travel direction, and southbound travel means increasing
// index.
var Stations = [StationCount]Station{
	"Windsor",
	"Sonoma County Airport",
	"Santa Rosa North",
	"Santa Rosa Downtown",
	"Rohnert Park",
	"Cotati",
	"Petaluma North",
	"Petaluma Downtown",
	"Novato San Marin",
	"Novato Downtown",
	"Novato Hamilton",
	"Marin Civic Center",
	"San Rafael",
	"Larkspur",
}

var stationIndex = func() map[Station]int {
	m := make(map[Station]int, StationCount)
	for i, s := range Stations {
		m[s] = i
	}
	return m
}()

// StationIndexOf returns the canonical index of a station, or -1 for an
// unknown name.
func StationIndexOf(s Station) int {
	if i, ok := stationIndex[s]; ok {
		return i
	}
	return -1
}

// IsStation reports whether the name is a known station.
func IsStation(s Station) bool {
	_, ok := stationIndex[s]
	return ok
}

// AllStations returns the stations in canonical order.
func AllStations() []Station {
	return Stations[:]
}

// Direction is the travel direction of a trip along the line.
type Direction string

const (
	Southbound Direction = "southbound"
	Northbound Direction = "northbound"
)

// DirectionBetween derives the travel direction for a station pair from
// canonical index order: origin before destination means southbound.
// Both stations must be known and distinct.
func DirectionBetween(from, to Station) Direction {
	if StationIndexOf(from) < StationIndexOf(to) {
		return Southbound
	}
	return Northbound
}
