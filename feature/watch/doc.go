// Package watch keeps destinations current by re-running the reconciliation
// engine whenever a read root changes. Filesystem events are observed with
// fsnotify and debounced into a single run per burst; runs are serialized so
// the tool never races itself against the same destinations.
package watch
