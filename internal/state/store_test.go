package state

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/hertelukas/synctui/internal/syncthing"
)

func testConfiguration() syncthing.Configuration {
	return syncthing.Configuration{
		Folders: []syncthing.FolderConfig{
			{
				ID:    "f1",
				Label: "Documents",
				Path:  "/data/docs",
				Devices: []syncthing.FolderDevice{
					{DeviceID: "local"},
					{DeviceID: "dev1"},
				},
			},
			{
				ID:    "f2",
				Label: "Photos",
				Path:  "/data/photos",
				Devices: []syncthing.FolderDevice{
					{DeviceID: "local"},
				},
			},
		},
		Devices: []syncthing.DeviceConfig{
			{DeviceID: "local", Name: "Desktop"},
			{DeviceID: "dev1", Name: "Laptop"},
		},
	}
}

func TestApplyConfigurationIsIdempotent(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())
	first := s.Folders()

	s.ApplyConfiguration(testConfiguration())
	second := s.Folders()

	if !reflect.DeepEqual(first, second) {
		t.Errorf("re-applying the same configuration changed the view:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestApplyConfigurationPreservesDerivedState(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())
	s.SetDeviceConnected("dev1", true)
	s.ApplyDeviceCompletion("dev1", 73)
	s.ApplyFolderCompletion("f1", 50)

	// A fresh configuration snapshot carries no connection or completion
	// data; the derived fields must survive the replace, keyed by ID.
	s.ApplyConfiguration(testConfiguration())

	device, err := s.Device("dev1")
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	if !device.Connected {
		t.Error("connected flag lost across configuration replace")
	}
	if device.Completion != 73 {
		t.Errorf("device completion = %v, want 73", device.Completion)
	}
	folder, err := s.Folder("f1")
	if err != nil {
		t.Fatalf("Folder: %v", err)
	}
	if folder.Completion != 50 {
		t.Errorf("folder completion = %v, want 50", folder.Completion)
	}
}

func TestApplyConfigurationDropsRemovedEntities(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())

	s.ApplyConfiguration(syncthing.Configuration{
		Folders: []syncthing.FolderConfig{{ID: "f1", Label: "Documents"}},
		Devices: []syncthing.DeviceConfig{{DeviceID: "local", Name: "Desktop"}},
	})

	if _, err := s.Folder("f2"); !errors.Is(err, ErrUnknownFolder) {
		t.Errorf("removed folder still resolvable: %v", err)
	}
	if _, err := s.Device("dev1"); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("removed device still resolvable: %v", err)
	}
}

func TestDeviceStatus(t *testing.T) {
	tests := []struct {
		name   string
		device Device
		want   Status
	}{
		{"disconnected", Device{}, Disconnected},
		{"disconnected despite completion", Device{Completion: 100}, Disconnected},
		{"syncing", Device{Connected: true, Completion: 42}, Syncing},
		{"up to date", Device{Connected: true, Completion: 100}, UpToDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.device.Status(); got != tt.want {
				t.Errorf("Status() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestSetDeviceConnected(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())

	if !s.SetDeviceConnected("dev1", true) {
		t.Fatal("known device not updated")
	}
	device, _ := s.Device("dev1")
	if device.Status() != UpToDate {
		t.Errorf("status right after connect = %s, want %s", device.Status(), UpToDate)
	}

	// A reconnect shows up to date even when the last known completion was
	// partial; the next completion reload restores the real figure.
	s.ApplyDeviceCompletion("dev1", 50)
	s.SetDeviceConnected("dev1", false)
	s.SetDeviceConnected("dev1", true)
	device, _ = s.Device("dev1")
	if device.Status() != UpToDate {
		t.Errorf("status after reconnect = %s, want %s", device.Status(), UpToDate)
	}
	s.ApplyDeviceCompletion("dev1", 50)
	device, _ = s.Device("dev1")
	if device.Status() != Syncing {
		t.Errorf("status after completion reload = %s, want %s", device.Status(), Syncing)
	}

	if s.SetDeviceConnected("stranger", true) {
		t.Error("unknown device reported as updated")
	}
}

func TestApplyConnections(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())
	s.SetDeviceConnected("dev1", true)

	// dev1 missing from the snapshot: its flag must be left alone.
	s.ApplyConnections(syncthing.Connections{
		Connections: map[string]syncthing.ConnectionDetails{
			"stranger": {Connected: true},
		},
	})
	device, _ := s.Device("dev1")
	if !device.Connected {
		t.Error("device absent from snapshot was disconnected")
	}
	if _, err := s.Device("stranger"); !errors.Is(err, ErrUnknownDevice) {
		t.Error("connections snapshot introduced an unconfigured device")
	}

	s.ApplyConnections(syncthing.Connections{
		Connections: map[string]syncthing.ConnectionDetails{
			"dev1": {Connected: false},
		},
	})
	device, _ = s.Device("dev1")
	if device.Connected {
		t.Error("snapshot disconnect not applied")
	}
}

func TestApplyPendingDevicesReplacesWholesale(t *testing.T) {
	s := NewStore()
	s.ApplyPendingDevices(syncthing.PendingDevices{
		"dev2": {Name: "Phone", Address: "10.0.0.2:22000", Time: time.Now()},
		"dev3": {Name: "Tablet"},
	})
	if got := len(s.PendingDevices()); got != 2 {
		t.Fatalf("got %d pending devices, want 2", got)
	}

	// The next snapshot no longer contains dev3.
	s.ApplyPendingDevices(syncthing.PendingDevices{
		"dev2": {Name: "Phone", Address: "10.0.0.2:22000"},
	})
	pending := s.PendingDevices()
	if len(pending) != 1 || pending[0].ID != "dev2" {
		t.Errorf("pending = %+v, want only dev2", pending)
	}
	if _, err := s.PendingDevice("dev3"); !errors.Is(err, ErrUnknownDevice) {
		t.Errorf("dev3 still pending: %v", err)
	}
}

func TestApplyPendingFoldersFlattensOffers(t *testing.T) {
	s := NewStore()
	s.ApplyPendingFolders(syncthing.PendingFolders{
		"f9": {OfferedBy: map[string]syncthing.PendingFolderOffer{
			"dev2": {Label: "Music"},
			"dev1": {Label: "music-laptop"},
		}},
		"f8": {OfferedBy: map[string]syncthing.PendingFolderOffer{
			"dev2": {Label: "Backups"},
		}},
	})

	offers := s.PendingFolderOffers()
	want := []PendingFolderOffer{
		{FolderID: "f8", DeviceID: "dev2", Label: "Backups"},
		{FolderID: "f9", DeviceID: "dev1", Label: "music-laptop"},
		{FolderID: "f9", DeviceID: "dev2", Label: "Music"},
	}
	if !reflect.DeepEqual(offers, want) {
		t.Errorf("offers = %+v\nwant %+v", offers, want)
	}
}

func TestSharersCombinesConfiguredAndPending(t *testing.T) {
	s := NewStore()
	s.SetLocalID("local")
	s.ApplyConfiguration(testConfiguration())
	s.ApplyPendingFolders(syncthing.PendingFolders{
		"f1": {OfferedBy: map[string]syncthing.PendingFolderOffer{
			"dev1": {Label: "docs-laptop"},
			"dev2": {Label: "docs-phone"},
		}},
	})

	sharing, err := s.Sharers("f1")
	if err != nil {
		t.Fatalf("Sharers: %v", err)
	}
	// dev1 is configured, so its offer is shadowed; dev2 stays pending; the
	// local device never shows up as a sharer of its own folder.
	want := []FolderSharing{
		{DeviceID: "dev1", State: SharingConfigured},
		{DeviceID: "dev2", State: SharingPending, RemoteLabel: "docs-phone"},
	}
	if !reflect.DeepEqual(sharing, want) {
		t.Errorf("sharing = %+v\nwant %+v", sharing, want)
	}

	if _, err := s.Sharers("f9"); !errors.Is(err, ErrUnknownFolder) {
		t.Errorf("unknown folder: err = %v", err)
	}
}

func TestOtherDevicesExcludesLocal(t *testing.T) {
	s := NewStore()
	s.SetLocalID("local")
	s.ApplyConfiguration(testConfiguration())

	others := s.OtherDevices()
	if len(others) != 1 || others[0].ID != "dev1" {
		t.Errorf("others = %+v, want only dev1", others)
	}
}

func TestDeviceFolders(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())

	folders := s.DeviceFolders("dev1")
	if len(folders) != 1 || folders[0].ID != "f1" {
		t.Errorf("folders = %+v, want only f1", folders)
	}
	if folders := s.DeviceFolders("stranger"); len(folders) != 0 {
		t.Errorf("stranger shares %d folders", len(folders))
	}
}

func TestFoldersSortedByLabel(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(syncthing.Configuration{
		Folders: []syncthing.FolderConfig{
			{ID: "zz", Label: "alpha"},
			{ID: "aa", Label: "Beta"},
			{ID: "mm"},
		},
	})

	var ids []string
	for _, f := range s.Folders() {
		ids = append(ids, f.ID)
	}
	// Case-insensitive by display label; the unlabeled folder sorts by ID.
	want := []string{"zz", "aa", "mm"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("order = %v, want %v", ids, want)
	}
}

func TestReadProjectsUnderOneLock(t *testing.T) {
	s := NewStore()
	s.SetLocalID("local")
	s.ApplyConfiguration(testConfiguration())

	var (
		localID string
		count   int
	)
	s.Read(func(v View) {
		localID = v.LocalID()
		count = len(v.OtherDevices())
	})
	if localID != "local" || count != 1 {
		t.Errorf("projection = (%q, %d), want (local, 1)", localID, count)
	}
}

func TestErrorSlot(t *testing.T) {
	s := NewStore()
	if err := s.LastError(); err != nil {
		t.Fatalf("fresh store has error %v", err)
	}

	s.SetError(errors.New("daemon unreachable"))
	if err := s.LastError(); err == nil || err.Error() != "daemon unreachable" {
		t.Errorf("LastError() = %v", err)
	}

	s.ClearError()
	if err := s.LastError(); err != nil {
		t.Errorf("error survives ClearError: %v", err)
	}
}

func TestProjectionsReturnCopies(t *testing.T) {
	s := NewStore()
	s.ApplyConfiguration(testConfiguration())

	folders := s.Folders()
	folders[0].SharedWith[0] = "tampered"

	fresh, err := s.Folder(folders[0].ID)
	if err != nil {
		t.Fatalf("Folder: %v", err)
	}
	for _, id := range fresh.SharedWith {
		if id == "tampered" {
			t.Fatal("projection shares its backing slice with the store")
		}
	}
}
