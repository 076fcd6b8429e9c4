package reconcile

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hertelukas/synctui/internal/syncthing"
)

// fakeGateway implements Gateway with per-method hooks and a call log.
type fakeGateway struct {
	mu    sync.Mutex
	calls []string

	localIDFn        func() (string, error)
	configurationFn  func() (syncthing.Configuration, error)
	eventsFn         func(ctx context.Context, since int64) ([]syncthing.Event, error)
	pendingDevicesFn func() (syncthing.PendingDevices, error)
	pendingFoldersFn func() (syncthing.PendingFolders, error)
	connectionsFn    func() (syncthing.Connections, error)
	completionFn     func(folder, device string) (syncthing.Completion, error)
	putFolderFn      func(folder syncthing.FolderConfig) error
	addDeviceFn      func(device syncthing.DeviceConfig) error
	dismissDeviceFn  func(deviceID string) error
	dismissFolderFn  func(folderID, deviceID string) error
}

func (g *fakeGateway) record(call string) {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	g.mu.Unlock()
}

func (g *fakeGateway) recorded() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *fakeGateway) LocalID(ctx context.Context) (string, error) {
	g.record("LocalID")
	if g.localIDFn != nil {
		return g.localIDFn()
	}
	return "", nil
}

func (g *fakeGateway) Configuration(ctx context.Context) (syncthing.Configuration, error) {
	g.record("Configuration")
	if g.configurationFn != nil {
		return g.configurationFn()
	}
	return syncthing.Configuration{}, nil
}

func (g *fakeGateway) Events(ctx context.Context, since int64) ([]syncthing.Event, error) {
	g.record("Events")
	if g.eventsFn != nil {
		return g.eventsFn(ctx, since)
	}
	<-ctx.Done()
	return nil, ctx.Err()
}

func (g *fakeGateway) PendingDevices(ctx context.Context) (syncthing.PendingDevices, error) {
	g.record("PendingDevices")
	if g.pendingDevicesFn != nil {
		return g.pendingDevicesFn()
	}
	return nil, nil
}

func (g *fakeGateway) PendingFolders(ctx context.Context) (syncthing.PendingFolders, error) {
	g.record("PendingFolders")
	if g.pendingFoldersFn != nil {
		return g.pendingFoldersFn()
	}
	return nil, nil
}

func (g *fakeGateway) Connections(ctx context.Context) (syncthing.Connections, error) {
	g.record("Connections")
	if g.connectionsFn != nil {
		return g.connectionsFn()
	}
	return syncthing.Connections{}, nil
}

func (g *fakeGateway) Completion(ctx context.Context, folder, device string) (syncthing.Completion, error) {
	g.record("Completion")
	if g.completionFn != nil {
		return g.completionFn(folder, device)
	}
	return syncthing.Completion{}, nil
}

func (g *fakeGateway) PutFolder(ctx context.Context, folder syncthing.FolderConfig) error {
	g.record("PutFolder")
	if g.putFolderFn != nil {
		return g.putFolderFn(folder)
	}
	return nil
}

func (g *fakeGateway) AddDevice(ctx context.Context, device syncthing.DeviceConfig) error {
	g.record("AddDevice")
	if g.addDeviceFn != nil {
		return g.addDeviceFn(device)
	}
	return nil
}

func (g *fakeGateway) DismissPendingDevice(ctx context.Context, deviceID string) error {
	g.record("DismissPendingDevice")
	if g.dismissDeviceFn != nil {
		return g.dismissDeviceFn(deviceID)
	}
	return nil
}

func (g *fakeGateway) DismissPendingFolder(ctx context.Context, folderID, deviceID string) error {
	g.record("DismissPendingFolder")
	if g.dismissFolderFn != nil {
		return g.dismissFolderFn(folderID, deviceID)
	}
	return nil
}

// awaitNotification drains ch until a notification of the wanted kind
// arrives or the test times out.
func awaitNotification(t *testing.T, ch chan Notification, kind NotificationKind) Notification {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case note := <-ch:
			if note.Kind == kind {
				return note
			}
		case <-deadline:
			t.Fatalf("timed out waiting for notification kind %d", int(kind))
		}
	}
}

// drainJobs collects every job currently waiting in the queue.
func drainJobs(t *testing.T, q *Queue) []Job {
	t.Helper()
	var jobs []Job
	for q.Len() > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		job, ok := q.Dequeue(ctx)
		cancel()
		if !ok {
			t.Fatalf("queue reported %d jobs but dequeue timed out", q.Len())
		}
		jobs = append(jobs, job)
	}
	return jobs
}
