// Package task contains background processing: the periodic sync-event
// flusher that drains the pending event queue.
package task
