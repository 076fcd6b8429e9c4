package syncthing

import (
	"encoding/json"
	"time"
)

// Configuration mirrors the payload returned by /rest/config.
type Configuration struct {
	Version int64          `json:"version"`
	Folders []FolderConfig `json:"folders"`
	Devices []DeviceConfig `json:"devices"`
}

// FolderConfig describes one folder in the daemon configuration.
type FolderConfig struct {
	ID          string         `json:"id"`
	Label       string         `json:"label"`
	Path        string         `json:"path"`
	Devices     []FolderDevice `json:"devices"`
	XattrFilter XattrFilter    `json:"xattrFilter"`
}

// XattrFilter carries the daemon's extended-attribute sync limits. The
// defaults match what the daemon writes for a folder created in its GUI.
type XattrFilter struct {
	Entries            []string `json:"entries"`
	MaxSingleEntrySize int64    `json:"maxSingleEntrySize"`
	MaxTotalSize       int64    `json:"maxTotalSize"`
}

// DefaultXattrFilter returns the filter applied to folders created here.
func DefaultXattrFilter() XattrFilter {
	return XattrFilter{MaxSingleEntrySize: 1024, MaxTotalSize: 4096}
}

// FolderDevice names a device a folder is shared with.
type FolderDevice struct {
	DeviceID           string `json:"deviceID"`
	IntroducedBy       string `json:"introducedBy"`
	EncryptionPassword string `json:"encryptionPassword"`
}

// DeviceConfig describes one device in the daemon configuration.
type DeviceConfig struct {
	DeviceID    string   `json:"deviceID"`
	Name        string   `json:"name"`
	Addresses   []string `json:"addresses"`
	Compression string   `json:"compression"`
}

// Event is one entry from the daemon's /rest/events stream. Data stays raw
// until the consumer knows the type and decodes it with DecodeData.
type Event struct {
	ID       int64           `json:"id"`
	GlobalID int64           `json:"globalID"`
	Time     time.Time       `json:"time"`
	Type     string          `json:"type"`
	Data     json.RawMessage `json:"data"`
}

// Event types the dashboard reacts to. The daemon emits many more; anything
// not listed here is recorded for history only.
const (
	EventConfigSaved            = "ConfigSaved"
	EventDeviceConnected        = "DeviceConnected"
	EventDeviceDisconnected     = "DeviceDisconnected"
	EventPendingDevicesChanged  = "PendingDevicesChanged"
	EventPendingFoldersChanged  = "PendingFoldersChanged"
	EventRemoteDownloadProgress = "RemoteDownloadProgress"
)

// DecodeData unmarshals the event payload into dest.
func (e Event) DecodeData(dest any) error {
	if len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, dest)
}

// DeviceConnectedData is the payload of a DeviceConnected event.
type DeviceConnectedData struct {
	ID            string `json:"id"`
	DeviceName    string `json:"deviceName"`
	Addr          string `json:"addr"`
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	Type          string `json:"type"`
}

// DeviceDisconnectedData is the payload of a DeviceDisconnected event.
type DeviceDisconnectedData struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// PendingDevicesChangedData is the payload of a PendingDevicesChanged event.
type PendingDevicesChangedData struct {
	Added   []AddedPendingDevice   `json:"added"`
	Removed []RemovedPendingDevice `json:"removed"`
}

// AddedPendingDevice describes a device that just attempted to connect.
type AddedPendingDevice struct {
	DeviceID string `json:"deviceID"`
	Name     string `json:"name"`
	Address  string `json:"address"`
}

// RemovedPendingDevice names a device no longer pending.
type RemovedPendingDevice struct {
	DeviceID string `json:"deviceID"`
}

// PendingFoldersChangedData is the payload of a PendingFoldersChanged event.
type PendingFoldersChangedData struct {
	Added   []AddedPendingFolder   `json:"added"`
	Removed []RemovedPendingFolder `json:"removed"`
}

// AddedPendingFolder describes a fresh share offer from a remote device.
type AddedPendingFolder struct {
	DeviceID         string `json:"deviceID"`
	FolderID         string `json:"folderID"`
	FolderLabel      string `json:"folderLabel"`
	ReceiveEncrypted bool   `json:"receiveEncrypted"`
	RemoteEncrypted  bool   `json:"remoteEncrypted"`
}

// RemovedPendingFolder names an offer that was withdrawn. A missing DeviceID
// means the folder is no longer pending on any device.
type RemovedPendingFolder struct {
	DeviceID string `json:"deviceID"`
	FolderID string `json:"folderID"`
}

// RemoteDownloadProgressData is the payload of a RemoteDownloadProgress event.
type RemoteDownloadProgressData struct {
	Device string `json:"device"`
	Folder string `json:"folder"`
}

// PendingDevices mirrors /rest/cluster/pending/devices: device ID to the
// recorded connection attempt.
type PendingDevices map[string]PendingDeviceAttempt

// PendingDeviceAttempt records one unconfigured device that tried to connect.
type PendingDeviceAttempt struct {
	Time    time.Time `json:"time"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// PendingFolders mirrors /rest/cluster/pending/folders: folder ID to the
// devices offering it.
type PendingFolders map[string]PendingFolder

// PendingFolder lists the devices that offered a folder, keyed by device ID.
type PendingFolder struct {
	OfferedBy map[string]PendingFolderOffer `json:"offeredBy"`
}

// PendingFolderOffer is one device's claim about an offered folder.
type PendingFolderOffer struct {
	Time             time.Time `json:"time"`
	Label            string    `json:"label"`
	ReceiveEncrypted bool      `json:"receiveEncrypted"`
	RemoteEncrypted  bool      `json:"remoteEncrypted"`
}

// Connections mirrors /rest/connections.
type Connections struct {
	Connections map[string]ConnectionDetails `json:"connections"`
}

// ConnectionDetails reports the transport state for one device.
type ConnectionDetails struct {
	Connected     bool   `json:"connected"`
	Paused        bool   `json:"paused"`
	Address       string `json:"address"`
	ClientVersion string `json:"clientVersion"`
	Type          string `json:"type"`
}

// Completion mirrors /rest/db/completion.
type Completion struct {
	Completion  float64 `json:"completion"`
	GlobalBytes int64   `json:"globalBytes"`
	NeedBytes   int64   `json:"needBytes"`
	NeedItems   int64   `json:"needItems"`
	NeedDeletes int64   `json:"needDeletes"`
}
