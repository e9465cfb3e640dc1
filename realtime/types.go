package realtime

// TripStatus is the derived realtime view of one static trip for a chosen
// (origin, destination) pair. Recomputed wholesale on every poll and never
// persisted; absence of a status is indistinguishable from "on time".
type TripStatus struct {
	Canceled           bool   `json:"canceled"`
	OriginSkipped      bool   `json:"originSkipped"`
	DestinationSkipped bool   `json:"destinationSkipped"`
	LiveDepartureTime  string `json:"liveDepartureTime,omitempty"`
	LiveArrivalTime    string `json:"liveArrivalTime,omitempty"`
	DelayMinutes       int    `json:"delayMinutes,omitempty"`
}

// StatusMap keys TripStatus by the static scheduled "HH:MM" departure at the
// rider's chosen origin station. Keying by the scheduled time keeps lookups
// from the static trip list stable no matter how late a train runs.
type StatusMap map[string]TripStatus
