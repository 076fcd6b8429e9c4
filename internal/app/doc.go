// Package app wires the application together.
//
// Run is the composition root: it loads the configuration, builds the REST
// client, the shared store, the job queue and notifier, starts the event
// relay and the reload worker, seeds the initial fetch jobs, and hands
// everything to the UI. Nothing here contains domain logic; the package
// exists so main stays a flag-parsing shell and the tests of each layer
// never need the full assembly.
//
// Shutdown order matters: the UI returns first, then the workers are
// cancelled, then in-flight mutations drain, and only then does the event
// database close.
package app
