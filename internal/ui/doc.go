// Package ui renders the dashboard with Bubble Tea.
//
// The model never talks to the daemon. It reads from the shared store,
// redraws when a change notification arrives on the reconciliation
// notifier's channel (with a slow tick as fallback), and forwards every
// mutation to the dispatcher, whose confirming reload produces the next
// notification. That keeps the render path free of network stalls: a frame
// is always built from local data.
//
// Five pages hang off the root model: folders, devices, the pending queue,
// the persisted event history, and the local device ID with its QR code.
// Popups (confirmations, the new-folder form, the share picker) form a
// single modal layer that captures all keys while open.
//
// A standing error from the store takes over the whole frame until a reload
// succeeds, so a dead daemon or a lost event subscription is never silently
// invisible behind stale page content.
package ui
