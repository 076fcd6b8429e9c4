package reconcile

import (
	"context"

	"github.com/hertelukas/synctui/internal/syncthing"
)

// Gateway is the slice of the daemon API the reconciliation engine needs.
// Implemented by *syncthing.Client; tests substitute fakes.
type Gateway interface {
	LocalID(ctx context.Context) (string, error)
	Configuration(ctx context.Context) (syncthing.Configuration, error)
	Events(ctx context.Context, since int64) ([]syncthing.Event, error)
	PendingDevices(ctx context.Context) (syncthing.PendingDevices, error)
	PendingFolders(ctx context.Context) (syncthing.PendingFolders, error)
	Connections(ctx context.Context) (syncthing.Connections, error)
	Completion(ctx context.Context, folder, device string) (syncthing.Completion, error)
	PutFolder(ctx context.Context, folder syncthing.FolderConfig) error
	AddDevice(ctx context.Context, device syncthing.DeviceConfig) error
	DismissPendingDevice(ctx context.Context, deviceID string) error
	DismissPendingFolder(ctx context.Context, folderID, deviceID string) error
}

// Ensure the real client satisfies the interface at compile time.
var _ Gateway = (*syncthing.Client)(nil)

// Recorder persists events the relay does not act on. Implemented by
// *eventlog.Log.
type Recorder interface {
	Append(ev syncthing.Event) error
}
