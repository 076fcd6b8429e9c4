package state

import (
	"errors"
	"time"
)

// Precondition errors returned by store lookups and mutation checks.
var (
	ErrUnknownDevice   = errors.New("unknown device")
	ErrUnknownFolder   = errors.New("unknown folder")
	ErrDuplicateFolder = errors.New("folder id already exists")
)

// Status summarizes a device's connection for display.
type Status int

const (
	Disconnected Status = iota
	Syncing
	UpToDate
)

func (s Status) String() string {
	switch s {
	case UpToDate:
		return "Up to Date"
	case Syncing:
		return "Syncing"
	default:
		return "Disconnected"
	}
}

// SharingState describes one folder-device pair.
type SharingState int

const (
	// SharingConfigured means both sides agreed on the share.
	SharingConfigured SharingState = iota
	// SharingPending means the remote side offered the share and we have not
	// accepted yet.
	SharingPending
)

// Device is a device from the daemon configuration plus derived connection
// state maintained across configuration replaces.
type Device struct {
	ID        string
	Name      string
	Addresses []string
	Connected bool
	// Completion is how far the device has synced everything we share with
	// it, 0-100.
	Completion float64
}

// Status derives the display status from connection and completion.
func (d Device) Status() Status {
	if !d.Connected {
		return Disconnected
	}
	if d.Completion >= 100 {
		return UpToDate
	}
	return Syncing
}

// DisplayName returns the configured name, falling back to the ID.
func (d Device) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.ID
}

// Folder is a folder from the daemon configuration plus its derived local
// completion. SharedWith holds only pairs present in the configuration;
// pending offers live in PendingFolderOffer records until accepted.
type Folder struct {
	ID         string
	Label      string
	Path       string
	Completion float64
	SharedWith []string
}

// DisplayLabel returns the label, falling back to the ID.
func (f Folder) DisplayLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.ID
}

// PendingDevice is an unconfigured device that attempted to connect.
type PendingDevice struct {
	ID      string
	Name    string
	Address string
	Time    time.Time
}

// DisplayName returns the declared name, falling back to the ID.
func (p PendingDevice) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}

// PendingFolderOffer is one unaccepted share invitation. The same folder ID
// may be offered by several devices at once, one offer each.
type PendingFolderOffer struct {
	FolderID string
	DeviceID string
	// Label is what the offering device claims the folder is called.
	Label string
	Time  time.Time
}

// FolderSharing is the projected sharing state of one folder-device pair,
// combining configured shares with pending offers.
type FolderSharing struct {
	DeviceID string
	State    SharingState
	// RemoteLabel is set for pending pairs only.
	RemoteLabel string
}
