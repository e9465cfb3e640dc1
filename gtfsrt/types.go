package gtfsrt

// ScheduleRelationship is the trip-level relationship to the static schedule.
type ScheduleRelationship string

const (
	TripScheduled   ScheduleRelationship = "SCHEDULED"
	TripAdded       ScheduleRelationship = "ADDED"
	TripUnscheduled ScheduleRelationship = "UNSCHEDULED"
	TripCanceled    ScheduleRelationship = "CANCELED"
	TripDuplicated  ScheduleRelationship = "DUPLICATED"
)

// StopScheduleRelationship is the per-stop relationship to the static
// schedule. SKIPPED is orthogonal to the trip-level state: a delayed trip
// can still skip individual stations.
type StopScheduleRelationship string

const (
	StopScheduled StopScheduleRelationship = "SCHEDULED"
	StopSkipped   StopScheduleRelationship = "SKIPPED"
	StopNoData    StopScheduleRelationship = "NO_DATA"
)

// StopTimeUpdate is the normalized per-station slice of a trip update.
// Unix-second fields use 0 for "not provided by the feed".
type StopTimeUpdate struct {
	StopSequence         int                      `json:"stopSequence,omitempty"`
	StopID               string                   `json:"stopId,omitempty"`
	ArrivalTime          int64                    `json:"arrivalTime,omitempty"`
	DepartureTime        int64                    `json:"departureTime,omitempty"`
	ScheduleRelationship StopScheduleRelationship `json:"scheduleRelationship"`
	DepartureDelay       int32                    `json:"departureDelay,omitempty"`
}

// TripUpdate is one normalized trip-update entity. TripID is synthesized for
// DUPLICATED trips and must never be used to join against static data; all
// correlation runs on StartTime and the per-station Unix times.
type TripUpdate struct {
	TripID               string               `json:"tripId"`
	RouteID              string               `json:"routeId,omitempty"`
	StartDate            string               `json:"startDate,omitempty"` // YYYYMMDD
	StartTime            string               `json:"startTime,omitempty"` // HH:MM:SS at the trip's first stop
	ScheduleRelationship ScheduleRelationship `json:"scheduleRelationship"`
	DuplicatedTripRef    string               `json:"duplicatedTripRef,omitempty"`
	StopTimeUpdates      []StopTimeUpdate     `json:"stopTimeUpdates"`
}

// TripUpdatesFeed is one decoded trip-updates poll.
type TripUpdatesFeed struct {
	Timestamp int64        `json:"timestamp"`
	Updates   []TripUpdate `json:"updates"`
}

// ActivePeriod is an alert validity window. Either bound may be 0 (open).
type ActivePeriod struct {
	Start int64 `json:"start,omitempty"`
	End   int64 `json:"end,omitempty"`
}

// InformedEntity names one thing an alert applies to. All fields optional.
type InformedEntity struct {
	AgencyID string `json:"agencyId,omitempty"`
	RouteID  string `json:"routeId,omitempty"`
	TripID   string `json:"tripId,omitempty"`
	StopID   string `json:"stopId,omitempty"`
}

// Alert is one normalized service alert.
type Alert struct {
	ID               string           `json:"id"`
	ActivePeriods    []ActivePeriod   `json:"activePeriods"`
	InformedEntities []InformedEntity `json:"informedEntities"`
	Cause            string           `json:"cause,omitempty"`
	Effect           string           `json:"effect,omitempty"`
	HeaderText       string           `json:"headerText"`
	DescriptionText  string           `json:"descriptionText"`
	URL              string           `json:"url,omitempty"`
}

// AlertsFeed is one decoded service-alerts poll.
type AlertsFeed struct {
	Timestamp int64   `json:"timestamp"`
	Alerts    []Alert `json:"alerts"`
}
