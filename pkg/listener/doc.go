// Package listener watches directories with fsnotify and hands changed paths
// to a callback in batches. Paths changed within the configured latency of
// each other end up in the same batch.
package listener
