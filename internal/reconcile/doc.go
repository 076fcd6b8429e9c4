// Package reconcile keeps the local view model converged with the daemon.
//
// Three actors cooperate around a shared job queue:
//
//   - Relay subscribes to the daemon's event stream and translates each
//     event into reload jobs (plus a few direct state tweaks for
//     connectivity). It maintains a low-water mark over event IDs so a
//     replayed batch never double-dispatches.
//
//   - Reloader is the queue's single consumer. Each job maps to exactly one
//     gateway fetch whose result replaces the corresponding slice of the
//     store wholesale. Because merges are wholesale, jobs may be coalesced
//     or reordered across loop iterations without corrupting the view.
//
//   - Dispatcher is the write path. Mutations validate against the store
//     synchronously, run the daemon call in the background, and on success
//     enqueue the configuration reload that makes the change visible.
//
// All three publish on the shared Notifier so the presentation layer can
// redraw on change rather than poll.
//
// The relay deliberately stops on a broken event subscription instead of
// resubscribing: a fresh subscription starts from the latest event ID and
// would silently skip everything missed while disconnected, leaving the view
// stale without any indication. Stopping and surfacing the error is honest.
package reconcile
