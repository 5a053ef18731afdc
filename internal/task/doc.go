// Package task provides the background work machinery: a bounded
// in-memory task queue, a worker pool that drains it, and the schedule
// rebuild task that keeps each user's forward review plan current after
// their review states change.
package task
