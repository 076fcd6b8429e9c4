package reconcile

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hertelukas/synctui/internal/state"
	"github.com/hertelukas/synctui/internal/syncthing"
)

func TestReloaderConfigurationEnqueuesDerivedJobs(t *testing.T) {
	gateway := &fakeGateway{
		configurationFn: func() (syncthing.Configuration, error) {
			return syncthing.Configuration{
				Folders: []syncthing.FolderConfig{
					{ID: "f1", Label: "Documents"},
					{ID: "f2", Label: "Photos"},
				},
				Devices: []syncthing.DeviceConfig{{DeviceID: "dev1", Name: "Laptop"}},
			}, nil
		},
	}
	store := state.NewStore()
	queue := NewQueue(8)
	r := NewReloader(gateway, store, queue, NewNotifier())

	if err := r.process(context.Background(), Job{Kind: KindConfiguration}); err != nil {
		t.Fatalf("process: %v", err)
	}

	folders := store.Folders()
	if len(folders) != 2 {
		t.Fatalf("got %d folders, want 2", len(folders))
	}
	want := []Job{
		{Kind: KindConnections},
		{Kind: KindCompletion, FolderID: "f1"},
		{Kind: KindCompletion, FolderID: "f2"},
	}
	got := drainJobs(t, queue)
	if len(got) != len(want) {
		t.Fatalf("enqueued %d derived jobs, want %d", len(got), len(want))
	}
	for i, job := range got {
		if job != want[i] {
			t.Errorf("derived job %d = %s, want %s", i, job, want[i])
		}
	}
}

func TestReloaderCompletionScoping(t *testing.T) {
	gateway := &fakeGateway{
		configurationFn: func() (syncthing.Configuration, error) {
			return syncthing.Configuration{
				Folders: []syncthing.FolderConfig{{ID: "f1"}},
				Devices: []syncthing.DeviceConfig{{DeviceID: "dev1"}},
			}, nil
		},
		completionFn: func(folder, device string) (syncthing.Completion, error) {
			return syncthing.Completion{Completion: 42.5}, nil
		},
	}
	store := state.NewStore()
	queue := NewQueue(8)
	r := NewReloader(gateway, store, queue, NewNotifier())
	ctx := context.Background()

	if err := r.process(ctx, Job{Kind: KindConfiguration}); err != nil {
		t.Fatalf("process configuration: %v", err)
	}
	if err := r.process(ctx, Job{Kind: KindCompletion, FolderID: "f1"}); err != nil {
		t.Fatalf("process folder completion: %v", err)
	}
	if err := r.process(ctx, Job{Kind: KindCompletion, DeviceID: "dev1"}); err != nil {
		t.Fatalf("process device completion: %v", err)
	}

	folder, err := store.Folder("f1")
	if err != nil {
		t.Fatalf("Folder: %v", err)
	}
	if folder.Completion != 42.5 {
		t.Errorf("folder completion = %v, want 42.5", folder.Completion)
	}
	device, err := store.Device("dev1")
	if err != nil {
		t.Fatalf("Device: %v", err)
	}
	if device.Completion != 42.5 {
		t.Errorf("device completion = %v, want 42.5", device.Completion)
	}
}

func TestReloaderUnknownKind(t *testing.T) {
	r := NewReloader(&fakeGateway{}, state.NewStore(), NewQueue(8), NewNotifier())
	if err := r.process(context.Background(), Job{Kind: JobKind(99)}); err == nil {
		t.Error("expected an error for an unknown job kind")
	}
}

func TestReloaderErrorLifecycle(t *testing.T) {
	gateway := &fakeGateway{
		localIDFn: func() (string, error) {
			return "", errors.New("daemon unreachable")
		},
	}
	store := state.NewStore()
	queue := NewQueue(8)
	notifier := NewNotifier()
	updates := notifier.Subscribe()
	defer notifier.Unsubscribe(updates)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := NewReloader(gateway, store, queue, notifier)
	r.Start(ctx)

	// A failing job must notify, park the error, and leave the worker alive.
	queue.Enqueue(Job{Kind: KindLocalID})
	awaitNotification(t, updates, ViewChanged)
	err := store.LastError()
	if err == nil {
		t.Fatal("error slot empty after failed reload")
	}
	if !strings.Contains(err.Error(), "local-id") {
		t.Errorf("error %q does not name the failed job", err)
	}

	// The next successful job clears the slot.
	queue.Enqueue(Job{Kind: KindConnections})
	awaitNotification(t, updates, ViewChanged)
	if err := store.LastError(); err != nil {
		t.Errorf("error slot not cleared after successful reload: %v", err)
	}
}
