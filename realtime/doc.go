// Package realtime reconciles normalized GTFS-RT data with the static
// timetable index.
//
// The vendor's trip identifiers are regenerated every service date, so the
// correlator never joins on them. All correlation runs on wall-clock time:
// an update's origin start time is matched against the static trips' origin
// times, and the derived status is keyed by the scheduled departure at the
// rider's chosen origin station so the static trip list can look it up
// directly. Delays are computed by diffing live Unix times against the
// static schedule because the vendor reports a zero delay field even when
// it shifts the actual times.
//
// The alert filter decides whether a service alert applies to the rider's
// selected station pair, preferring to show an alert when its informed
// entities cannot be resolved.
package realtime
