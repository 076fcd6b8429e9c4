package reconcile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/hertelukas/synctui/internal/state"
	"github.com/hertelukas/synctui/internal/syncthing"
)

// Dispatcher is the write path exposed to the presentation layer. Every
// operation checks its preconditions synchronously, then issues the gateway
// call on a background unit of work and returns. Completion is observed
// through the next view-changed notification, never through a return value.
//
// No operation mutates local state optimistically: accepted and added
// entities appear only once the confirming configuration reload lands, so
// pending-to-configured transitions happen in exactly one place.
type Dispatcher struct {
	ctx      context.Context
	gateway  Gateway
	store    *state.Store
	queue    *Queue
	notifier *Notifier
	wg       sync.WaitGroup
}

// NewDispatcher wires a dispatcher. ctx bounds the background calls and
// should be the application's lifetime context.
func NewDispatcher(ctx context.Context, gateway Gateway, store *state.Store, queue *Queue, notifier *Notifier) *Dispatcher {
	return &Dispatcher{
		ctx:      ctx,
		gateway:  gateway,
		store:    store,
		queue:    queue,
		notifier: notifier,
	}
}

// NewFolder carries the operator's input for a folder creation. ShareWith
// lists device IDs to share with from the start, used when accepting an
// offered folder.
type NewFolder struct {
	ID        string
	Label     string
	Path      string
	ShareWith []string
}

// AcceptDevice adds a pending device to the daemon configuration. It fails
// fast with state.ErrUnknownDevice when the device is not currently pending;
// no gateway call is made in that case.
func (d *Dispatcher) AcceptDevice(deviceID string) error {
	pending, err := d.store.PendingDevice(deviceID)
	if err != nil {
		return err
	}
	d.background("accept device", func(ctx context.Context) error {
		device := syncthing.DeviceConfig{
			DeviceID:    pending.ID,
			Name:        pending.Name,
			Addresses:   []string{"dynamic"},
			Compression: "metadata",
		}
		if err := d.gateway.AddDevice(ctx, device); err != nil {
			return err
		}
		d.queue.Enqueue(Job{Kind: KindConfiguration})
		return nil
	})
	return nil
}

// DismissDevice removes the record of a pending connection attempt. The
// subsequent pending-devices-changed event refreshes the view; there is no
// optimistic removal here.
func (d *Dispatcher) DismissDevice(deviceID string) error {
	if _, err := d.store.PendingDevice(deviceID); err != nil {
		return err
	}
	d.background("dismiss device", func(ctx context.Context) error {
		return d.gateway.DismissPendingDevice(ctx, deviceID)
	})
	return nil
}

// AddFolder creates a folder on the daemon. It fails fast with
// state.ErrDuplicateFolder when the ID is already configured; no gateway
// call is made in that case.
func (d *Dispatcher) AddFolder(folder NewFolder) error {
	if folder.ID == "" || folder.Path == "" {
		return errors.New("folder id and path are required")
	}
	if _, err := d.store.Folder(folder.ID); err == nil {
		return fmt.Errorf("%q: %w", folder.ID, state.ErrDuplicateFolder)
	}
	d.background("add folder", func(ctx context.Context) error {
		config := syncthing.FolderConfig{
			ID:          folder.ID,
			Label:       folder.Label,
			Path:        folder.Path,
			XattrFilter: syncthing.DefaultXattrFilter(),
		}
		for _, deviceID := range folder.ShareWith {
			config.Devices = append(config.Devices, syncthing.FolderDevice{DeviceID: deviceID})
		}
		if err := d.gateway.PutFolder(ctx, config); err != nil {
			return err
		}
		d.queue.Enqueue(Job{Kind: KindConfiguration})
		return nil
	})
	return nil
}

// ShareFolder appends a device to a folder's device list and submits the
// updated folder. Confirmation comes from the configuration reload.
func (d *Dispatcher) ShareFolder(folderID, deviceID string) error {
	folder, err := d.store.Folder(folderID)
	if err != nil {
		return err
	}
	if _, err := d.store.Device(deviceID); err != nil {
		return err
	}
	for _, id := range folder.SharedWith {
		if id == deviceID {
			// Already shared; the reload would be a no-op anyway.
			return nil
		}
	}
	d.background("share folder", func(ctx context.Context) error {
		config := syncthing.FolderConfig{
			ID:          folder.ID,
			Label:       folder.Label,
			Path:        folder.Path,
			XattrFilter: syncthing.DefaultXattrFilter(),
		}
		for _, id := range append(folder.SharedWith, deviceID) {
			config.Devices = append(config.Devices, syncthing.FolderDevice{DeviceID: id})
		}
		if err := d.gateway.PutFolder(ctx, config); err != nil {
			return err
		}
		d.queue.Enqueue(Job{Kind: KindConfiguration})
		return nil
	})
	return nil
}

// DismissFolder drops a share offer from one device. Like DismissDevice it
// relies on the pending-folders-changed event for the refresh.
func (d *Dispatcher) DismissFolder(folderID, deviceID string) error {
	d.background("dismiss folder", func(ctx context.Context) error {
		return d.gateway.DismissPendingFolder(ctx, folderID, deviceID)
	})
	return nil
}

// Wait blocks until all background units of work have finished. Used on
// shutdown and by tests.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) background(op string, work func(ctx context.Context) error) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := work(d.ctx); err != nil {
			log.Printf("%s failed: %v", op, err)
			d.store.SetError(fmt.Errorf("%s: %w", op, err))
			d.notifier.Publish(Notification{Kind: ViewChanged})
		}
	}()
}
