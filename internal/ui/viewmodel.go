package ui

import (
	"github.com/sahilm/fuzzy"

	"github.com/hertelukas/synctui/internal/state"
)

// snapshot is the immutable slice of store content a single frame renders
// from. It is rebuilt on every notification under one read lock, so a frame
// never mixes data from two different merges.
type snapshot struct {
	localID string

	folders []state.Folder
	devices []state.Device

	pendingDevices []state.PendingDevice
	offers         []state.PendingFolderOffer

	// sharers and deviceFolders are keyed by folder and device ID.
	sharers       map[string][]state.FolderSharing
	deviceFolders map[string][]state.Folder

	err error
}

func takeSnapshot(store *state.Store) snapshot {
	snap := snapshot{
		sharers:       make(map[string][]state.FolderSharing),
		deviceFolders: make(map[string][]state.Folder),
	}
	store.Read(func(v state.View) {
		snap.localID = v.LocalID()
		snap.folders = v.Folders()
		snap.devices = v.OtherDevices()
		snap.pendingDevices = v.PendingDevices()
		snap.offers = v.PendingFolderOffers()
		for _, folder := range snap.folders {
			if sharing, err := v.Sharers(folder.ID); err == nil {
				snap.sharers[folder.ID] = sharing
			}
		}
		for _, device := range snap.devices {
			snap.deviceFolders[device.ID] = v.DeviceFolders(device.ID)
		}
	})
	snap.err = store.LastError()
	return snap
}

// pendingEntry flattens pending devices and folder offers into one list for
// the pending page.
type pendingEntry struct {
	device *state.PendingDevice
	offer  *state.PendingFolderOffer
}

func (s snapshot) pendingEntries() []pendingEntry {
	entries := make([]pendingEntry, 0, len(s.pendingDevices)+len(s.offers))
	for i := range s.pendingDevices {
		entries = append(entries, pendingEntry{device: &s.pendingDevices[i]})
	}
	for i := range s.offers {
		entries = append(entries, pendingEntry{offer: &s.offers[i]})
	}
	return entries
}

func filterFolders(folders []state.Folder, query string) []state.Folder {
	if query == "" {
		return folders
	}
	labels := make([]string, len(folders))
	for i, folder := range folders {
		labels[i] = folder.DisplayLabel()
	}
	matches := fuzzy.Find(query, labels)
	filtered := make([]state.Folder, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, folders[match.Index])
	}
	return filtered
}

func filterDevices(devices []state.Device, query string) []state.Device {
	if query == "" {
		return devices
	}
	names := make([]string, len(devices))
	for i, device := range devices {
		names[i] = device.DisplayName()
	}
	matches := fuzzy.Find(query, names)
	filtered := make([]state.Device, 0, len(matches))
	for _, match := range matches {
		filtered = append(filtered, devices[match.Index])
	}
	return filtered
}

func clampCursor(cursor, length int) int {
	if length == 0 {
		return 0
	}
	if cursor >= length {
		return length - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}
