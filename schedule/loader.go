package schedule

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

type tripYAML struct {
	Trip  int      `yaml:"trip"`
	Times []string `yaml:"times"`
}

type scheduleYAML struct {
	Southbound []tripYAML `yaml:"southbound"`
	Northbound []tripYAML `yaml:"northbound"`
}

type ferryYAML struct {
	Outbound []FerryConnection `yaml:"outbound"`
	Inbound  []FerryConnection `yaml:"inbound"`
}

type timetableYAML struct {
	Weekday scheduleYAML `yaml:"weekday"`
	Weekend scheduleYAML `yaml:"weekend"`
	Ferries struct {
		Weekday ferryYAML `yaml:"weekday"`
		Weekend ferryYAML `yaml:"weekend"`
	} `yaml:"ferries"`
}

// LoadTimetable reads and parses a timetable YAML file.
func LoadTimetable(path string) (*Timetable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}
	return ParseTimetable(data)
}

// ParseTimetable parses timetable YAML. Trips whose time row does not have
// exactly one entry per station are dropped with a log line rather than
// failing the whole load.
func ParseTimetable(data []byte) (*Timetable, error) {
	var raw timetableYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse timetable: %w", err)
	}
	tt := &Timetable{
		Weekday: convertSchedule(raw.Weekday, Weekday),
		Weekend: convertSchedule(raw.Weekend, Weekend),
		WeekdayFerries: FerrySchedule{
			Outbound: raw.Ferries.Weekday.Outbound,
			Inbound:  raw.Ferries.Weekday.Inbound,
		},
		WeekendFerries: FerrySchedule{
			Outbound: raw.Ferries.Weekend.Outbound,
			Inbound:  raw.Ferries.Weekend.Inbound,
		},
	}
	return tt, nil
}

func convertSchedule(s scheduleYAML, day DayType) TrainSchedule {
	return TrainSchedule{
		Southbound: convertTrips(s.Southbound, day, Southbound),
		Northbound: convertTrips(s.Northbound, day, Northbound),
	}
}

func convertTrips(trips []tripYAML, day DayType, dir Direction) []TrainTrip {
	out := make([]TrainTrip, 0, len(trips))
	for _, t := range trips {
		if len(t.Times) != StationCount {
			log.Printf("schedule: dropping %s %s trip %d: %d times, want %d",
				day, dir, t.Trip, len(t.Times), StationCount)
			continue
		}
		var tt TrainTrip
		tt.Trip = t.Trip
		copy(tt.Times[:], t.Times)
		out = append(out, tt)
	}
	return out
}
