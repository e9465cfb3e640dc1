// Package gtfsrt fetches GTFS-Realtime protobuf feeds and normalizes them
// into stable typed shapes.
//
// It supports two feed types:
//   - Trip Updates: per-trip cancellations, skipped stops and live times
//   - Service Alerts: disruptions and service changes
//
// Normalization resolves each entity's ambiguous identifiers up front: the
// vendor regenerates trip ids every service date and reuses the original
// trip's id for DUPLICATED trips, so duplicated entities get a synthesized
// id combining the base id with the duplicate's start time. Absent optional
// fields are defaulted explicitly (zero Unix seconds or empty string means
// "not provided").
package gtfsrt
