package state

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hertelukas/synctui/internal/syncthing"
)

// Store is the merged view of the daemon's state shared between the
// reconciliation workers and the UI. One RWMutex guards everything; writers
// never hold it across a network call.
type Store struct {
	mu sync.RWMutex

	localID        string
	folders        map[string]Folder
	devices        map[string]Device
	pendingDevices []PendingDevice
	offers         []PendingFolderOffer
	lastErr        error
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		folders: make(map[string]Folder),
		devices: make(map[string]Device),
	}
}

// View gives read access to the store while the shared lock is held. It must
// not be retained outside the projector passed to Read.
type View struct {
	s *Store
}

// Read runs projector under the shared lock.
func (s *Store) Read(projector func(v View)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	projector(View{s: s})
}

// --- merges, used only by the reconciliation workers ---

// ApplyConfiguration replaces folders and devices wholesale from a fresh
// configuration snapshot. Derived connection and completion state survives
// the replace, keyed by ID.
func (s *Store) ApplyConfiguration(cfg syncthing.Configuration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders := make(map[string]Folder, len(cfg.Folders))
	for _, fc := range cfg.Folders {
		f := Folder{
			ID:    fc.ID,
			Label: fc.Label,
			Path:  fc.Path,
		}
		for _, fd := range fc.Devices {
			f.SharedWith = append(f.SharedWith, fd.DeviceID)
		}
		sort.Strings(f.SharedWith)
		if prev, ok := s.folders[fc.ID]; ok {
			f.Completion = prev.Completion
		}
		folders[fc.ID] = f
	}

	devices := make(map[string]Device, len(cfg.Devices))
	for _, dc := range cfg.Devices {
		d := Device{
			ID:        dc.DeviceID,
			Name:      dc.Name,
			Addresses: append([]string(nil), dc.Addresses...),
		}
		if prev, ok := s.devices[dc.DeviceID]; ok {
			d.Connected = prev.Connected
			d.Completion = prev.Completion
		}
		devices[dc.DeviceID] = d
	}

	s.folders = folders
	s.devices = devices
}

// ApplyPendingDevices replaces the pending device set wholesale.
func (s *Store) ApplyPendingDevices(pending syncthing.PendingDevices) {
	list := make([]PendingDevice, 0, len(pending))
	for id, attempt := range pending {
		list = append(list, PendingDevice{
			ID:      id,
			Name:    attempt.Name,
			Address: attempt.Address,
			Time:    attempt.Time,
		})
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].DisplayName()), strings.ToLower(list[j].DisplayName())
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingDevices = list
}

// ApplyPendingFolders replaces the pending offer set wholesale, one offer per
// (folder, offering device) pair.
func (s *Store) ApplyPendingFolders(pending syncthing.PendingFolders) {
	var offers []PendingFolderOffer
	for folderID, pf := range pending {
		for deviceID, offer := range pf.OfferedBy {
			offers = append(offers, PendingFolderOffer{
				FolderID: folderID,
				DeviceID: deviceID,
				Label:    offer.Label,
				Time:     offer.Time,
			})
		}
	}
	sort.Slice(offers, func(i, j int) bool {
		if offers[i].FolderID != offers[j].FolderID {
			return offers[i].FolderID < offers[j].FolderID
		}
		return offers[i].DeviceID < offers[j].DeviceID
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers = offers
}

// ApplyConnections updates each known device's connected flag from a
// connections snapshot. Devices missing from the snapshot are left alone.
func (s *Store) ApplyConnections(conns syncthing.Connections) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, details := range conns.Connections {
		d, ok := s.devices[id]
		if !ok {
			continue
		}
		d.Connected = details.Connected
		s.devices[id] = d
	}
}

// SetDeviceConnected records a connect or disconnect observed on the event
// stream, ahead of the next connections reload. Unknown devices are ignored;
// a later configuration reload will introduce them.
func (s *Store) SetDeviceConnected(deviceID string, connected bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[deviceID]
	if !ok {
		return false
	}
	d.Connected = connected
	if connected {
		// A freshly connected device reads as up to date until the next
		// completion reload reports its real progress.
		d.Completion = 100
	}
	s.devices[deviceID] = d
	return true
}

// ApplyFolderCompletion records the local completion of one folder.
func (s *Store) ApplyFolderCompletion(folderID string, completion float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.folders[folderID]
	if !ok {
		return
	}
	f.Completion = completion
	s.folders[folderID] = f
}

// ApplyDeviceCompletion records how far a device has synced with us.
func (s *Store) ApplyDeviceCompletion(deviceID string, completion float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.devices[deviceID]
	if !ok {
		return
	}
	d.Completion = completion
	s.devices[deviceID] = d
}

// SetLocalID records the daemon's own device ID.
func (s *Store) SetLocalID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localID = id
}

// SetError records a failure into the shared error slot.
func (s *Store) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
}

// ClearError empties the shared error slot after a successful round.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = nil
}

// --- projections ---

// LocalID returns the daemon's own device ID, or "" before the first reload.
func (s *Store) LocalID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.localID
}

// LocalID returns the daemon's own device ID.
func (v View) LocalID() string {
	return v.s.localID
}

// LastError returns the shared error slot. The error is wrapped so callers
// never share the stored instance.
func (s *Store) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.lastErr == nil {
		return nil
	}
	return fmt.Errorf("%w", s.lastErr)
}

// Folders returns all configured folders sorted by label, then ID.
func (s *Store) Folders() []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.Folders()
}

// Folders returns all configured folders sorted by label, then ID.
func (v View) Folders() []Folder {
	list := make([]Folder, 0, len(v.s.folders))
	for _, f := range v.s.folders {
		f.SharedWith = append([]string(nil), f.SharedWith...)
		list = append(list, f)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].DisplayLabel()), strings.ToLower(list[j].DisplayLabel())
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Folder looks up one configured folder.
func (s *Store) Folder(folderID string) (Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.Folder(folderID)
}

// Folder looks up one configured folder.
func (v View) Folder(folderID string) (Folder, error) {
	f, ok := v.s.folders[folderID]
	if !ok {
		return Folder{}, fmt.Errorf("%q: %w", folderID, ErrUnknownFolder)
	}
	f.SharedWith = append([]string(nil), f.SharedWith...)
	return f, nil
}

// Devices returns all configured devices sorted by name.
func (s *Store) Devices() []Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.Devices()
}

// Devices returns all configured devices sorted by name.
func (v View) Devices() []Device {
	list := make([]Device, 0, len(v.s.devices))
	for _, d := range v.s.devices {
		d.Addresses = append([]string(nil), d.Addresses...)
		list = append(list, d)
	}
	sort.Slice(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].DisplayName()), strings.ToLower(list[j].DisplayName())
		if a != b {
			return a < b
		}
		return list[i].ID < list[j].ID
	})
	return list
}

// Device looks up one configured device.
func (s *Store) Device(deviceID string) (Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.Device(deviceID)
}

// Device looks up one configured device.
func (v View) Device(deviceID string) (Device, error) {
	d, ok := v.s.devices[deviceID]
	if !ok {
		return Device{}, fmt.Errorf("%q: %w", deviceID, ErrUnknownDevice)
	}
	d.Addresses = append([]string(nil), d.Addresses...)
	return d, nil
}

// OtherDevices returns all configured devices except the local one.
func (s *Store) OtherDevices() []Device {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.OtherDevices()
}

// OtherDevices returns all configured devices except the local one.
func (v View) OtherDevices() []Device {
	all := v.Devices()
	others := all[:0]
	for _, d := range all {
		if d.ID != v.s.localID {
			others = append(others, d)
		}
	}
	return others
}

// PendingDevices returns the current pending connection attempts.
func (s *Store) PendingDevices() []PendingDevice {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.PendingDevices()
}

// PendingDevices returns the current pending connection attempts.
func (v View) PendingDevices() []PendingDevice {
	return append([]PendingDevice(nil), v.s.pendingDevices...)
}

// PendingDevice looks up one pending device.
func (s *Store) PendingDevice(deviceID string) (PendingDevice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.pendingDevices {
		if p.ID == deviceID {
			return p, nil
		}
	}
	return PendingDevice{}, fmt.Errorf("%q: %w", deviceID, ErrUnknownDevice)
}

// PendingFolderOffers returns all unaccepted share invitations, sorted by
// folder then offering device.
func (s *Store) PendingFolderOffers() []PendingFolderOffer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.PendingFolderOffers()
}

// PendingFolderOffers returns all unaccepted share invitations.
func (v View) PendingFolderOffers() []PendingFolderOffer {
	return append([]PendingFolderOffer(nil), v.s.offers...)
}

// Sharers projects the sharing state of one folder: configured pairs from the
// configuration plus pending pairs from offers, sorted by device ID.
func (s *Store) Sharers(folderID string) ([]FolderSharing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.Sharers(folderID)
}

// Sharers projects the sharing state of one folder.
func (v View) Sharers(folderID string) ([]FolderSharing, error) {
	f, ok := v.s.folders[folderID]
	if !ok {
		return nil, fmt.Errorf("%q: %w", folderID, ErrUnknownFolder)
	}

	var sharing []FolderSharing
	configured := make(map[string]bool, len(f.SharedWith))
	for _, deviceID := range f.SharedWith {
		if deviceID == v.s.localID {
			continue
		}
		configured[deviceID] = true
		sharing = append(sharing, FolderSharing{DeviceID: deviceID, State: SharingConfigured})
	}
	for _, offer := range v.s.offers {
		if offer.FolderID != folderID || configured[offer.DeviceID] {
			continue
		}
		sharing = append(sharing, FolderSharing{
			DeviceID:    offer.DeviceID,
			State:       SharingPending,
			RemoteLabel: offer.Label,
		})
	}
	sort.Slice(sharing, func(i, j int) bool { return sharing[i].DeviceID < sharing[j].DeviceID })
	return sharing, nil
}

// DeviceFolders returns the configured folders shared with a device, sorted
// like Folders.
func (s *Store) DeviceFolders(deviceID string) []Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return View{s: s}.DeviceFolders(deviceID)
}

// DeviceFolders returns the configured folders shared with a device.
func (v View) DeviceFolders(deviceID string) []Folder {
	all := v.Folders()
	shared := all[:0]
	for _, f := range all {
		for _, id := range f.SharedWith {
			if id == deviceID {
				shared = append(shared, f)
				break
			}
		}
	}
	return shared
}
