// Package state holds the shared view of the daemon's configuration and
// status: configured folders and devices, pending connection attempts and
// share offers, the local device ID, and the last reconciliation error.
//
// # Ownership
//
// The Store is the only shared mutable resource in the application. The
// reconciliation workers are its single writer role; the UI only reads.
// One sync.RWMutex guards everything, so any number of readers can project
// concurrently while merges get exclusive access. Writers never hold the
// lock across a network call: reloads fetch first and lock only to merge,
// so the lock is only ever held for in-memory work.
//
// # Merge semantics
//
// Configuration and pending snapshots from the daemon are authoritative, so
// merges replace the affected collection wholesale instead of diffing:
//
//	store.ApplyConfiguration(cfg)   // folders + devices: clear, repopulate
//	store.ApplyPendingDevices(pd)   // pending attempts: replace
//	store.ApplyPendingFolders(pf)   // share offers: replace
//
// Derived fields the snapshot does not carry — a device's connected flag and
// completion, a folder's local completion — survive the replace, keyed by
// ID. Replacing wholesale keeps merges idempotent and order-tolerant, which
// is what lets the event-driven and mutation-driven reload paths interleave
// freely.
//
// # Reading
//
// Read runs an arbitrary projection under the shared lock:
//
//	store.Read(func(v state.View) {
//		folders = v.Folders()
//		pending = v.PendingDevices()
//	})
//
// The View handed to the projector is only valid inside it. For single
// lookups the Store offers the same methods directly (Folders, Devices,
// PendingDevice, Sharers, ...), each taking the lock on its own. All
// projections return copies; callers can never mutate stored state.
package state
