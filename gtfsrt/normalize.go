package gtfsrt

import (
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/proto"
)

// ParseTripUpdates decodes a GTFS-RT protobuf payload into a normalized
// trip-updates feed.
func ParseTripUpdates(b []byte) (*TripUpdatesFeed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode trip updates: %w", err)
	}

	feed := &TripUpdatesFeed{
		Timestamp: int64(fm.GetHeader().GetTimestamp()),
		Updates:   []TripUpdate{},
	}
	for _, e := range fm.Entity {
		tu := e.TripUpdate
		if tu == nil {
			continue
		}
		trip := tu.GetTrip()
		rel := tripRelationship(trip.GetScheduleRelationship())

		// DUPLICATED entities reuse the original trip's id; qualify it with
		// the duplicate's own start time so the two cannot collide.
		baseID := trip.GetTripId()
		id := baseID
		duplicatedRef := ""
		if rel == TripDuplicated {
			duplicatedRef = baseID
			if st := trip.GetStartTime(); st != "" {
				id = baseID + "_" + st
			}
		}

		u := TripUpdate{
			TripID:               id,
			RouteID:              trip.GetRouteId(),
			StartDate:            trip.GetStartDate(),
			StartTime:            trip.GetStartTime(),
			ScheduleRelationship: rel,
			DuplicatedTripRef:    duplicatedRef,
			StopTimeUpdates:      make([]StopTimeUpdate, 0, len(tu.StopTimeUpdate)),
		}
		for _, stu := range tu.StopTimeUpdate {
			u.StopTimeUpdates = append(u.StopTimeUpdates, StopTimeUpdate{
				StopSequence:         int(stu.GetStopSequence()),
				StopID:               stu.GetStopId(),
				ArrivalTime:          stu.GetArrival().GetTime(),
				DepartureTime:        stu.GetDeparture().GetTime(),
				ScheduleRelationship: stopRelationship(stu.GetScheduleRelationship()),
				DepartureDelay:       stu.GetDeparture().GetDelay(),
			})
		}
		feed.Updates = append(feed.Updates, u)
	}
	return feed, nil
}

// ParseAlerts decodes a GTFS-RT protobuf payload into a normalized service
// alerts feed.
func ParseAlerts(b []byte) (*AlertsFeed, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(b, &fm); err != nil {
		return nil, fmt.Errorf("decode alerts: %w", err)
	}

	feed := &AlertsFeed{
		Timestamp: int64(fm.GetHeader().GetTimestamp()),
		Alerts:    []Alert{},
	}
	for _, e := range fm.Entity {
		a := e.Alert
		if a == nil {
			continue
		}
		al := Alert{
			ID:               e.GetId(),
			ActivePeriods:    make([]ActivePeriod, 0, len(a.ActivePeriod)),
			InformedEntities: make([]InformedEntity, 0, len(a.InformedEntity)),
			Cause:            a.GetCause().String(),
			Effect:           a.GetEffect().String(),
			HeaderText:       translatedText(a.GetHeaderText()),
			DescriptionText:  translatedText(a.GetDescriptionText()),
			URL:              translatedText(a.GetUrl()),
		}
		for _, p := range a.ActivePeriod {
			al.ActivePeriods = append(al.ActivePeriods, ActivePeriod{
				Start: int64(p.GetStart()),
				End:   int64(p.GetEnd()),
			})
		}
		for _, ie := range a.InformedEntity {
			al.InformedEntities = append(al.InformedEntities, InformedEntity{
				AgencyID: ie.GetAgencyId(),
				RouteID:  ie.GetRouteId(),
				TripID:   ie.GetTrip().GetTripId(),
				StopID:   ie.GetStopId(),
			})
		}
		feed.Alerts = append(feed.Alerts, al)
	}
	return feed, nil
}

func tripRelationship(rel gtfsrtpb.TripDescriptor_ScheduleRelationship) ScheduleRelationship {
	switch rel {
	case gtfsrtpb.TripDescriptor_ADDED:
		return TripAdded
	case gtfsrtpb.TripDescriptor_UNSCHEDULED:
		return TripUnscheduled
	case gtfsrtpb.TripDescriptor_CANCELED:
		return TripCanceled
	case gtfsrtpb.TripDescriptor_DUPLICATED:
		return TripDuplicated
	default:
		return TripScheduled
	}
}

func stopRelationship(rel gtfsrtpb.TripUpdate_StopTimeUpdate_ScheduleRelationship) StopScheduleRelationship {
	switch rel {
	case gtfsrtpb.TripUpdate_StopTimeUpdate_SKIPPED:
		return StopSkipped
	case gtfsrtpb.TripUpdate_StopTimeUpdate_NO_DATA:
		return StopNoData
	default:
		return StopScheduled
	}
}

func translatedText(ts *gtfsrtpb.TranslatedString) string {
	if ts == nil {
		return ""
	}
	for _, tr := range ts.Translation {
		if t := tr.GetText(); t != "" {
			return t
		}
	}
	return ""
}
