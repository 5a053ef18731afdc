// Package events provides a lightweight in-process event bus used to
// decouple request handling from background work. Services emit task
// request events without knowing which component picks them up; the
// task package registers handlers that turn events into queued work.
package events
