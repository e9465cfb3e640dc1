// Package poller keeps in-memory snapshots of the GTFS-RT feeds fresh.
//
// Each feed is fetched on its own interval and replaced wholesale under a
// write lock, so readers always see a coherent snapshot. A failed refresh
// keeps the previous snapshot; slightly stale realtime data beats none, and
// the static timetable works with no realtime data at all.
package poller
