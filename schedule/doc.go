// Package schedule builds and serves the static timetable index.
//
// The index is a precomputed cross product: for every (origin, destination,
// day-type) triple it holds the ordered list of trips serving that pair,
// with per-station times, ferry linkage for the ferry-connected terminal,
// and a validity flag. It is constructed once at startup from timetable
// data and is read-only afterwards, so any number of consumers may share
// it without synchronization.
package schedule
