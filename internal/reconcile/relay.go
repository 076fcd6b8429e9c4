package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/hertelukas/synctui/internal/state"
	"github.com/hertelukas/synctui/internal/syncthing"
)

// Relay owns the daemon's event subscription. It consumes one event at a
// time in the order received, decides which reload jobs an event implies,
// applies the few updates that need no reload, and records everything else
// into the audit log.
type Relay struct {
	gateway  Gateway
	store    *state.Store
	queue    *Queue
	notifier *Notifier
	recorder Recorder

	// lastID is the highest consumed event ID, used as the low-water-mark on
	// every poll. Duplicates at or below it are ignored; gaps are tolerated.
	lastID int64
}

// NewRelay wires a relay to its collaborators. recorder may be nil, in which
// case unhandled events are discarded.
func NewRelay(gateway Gateway, store *state.Store, queue *Queue, notifier *Notifier, recorder Recorder) *Relay {
	return &Relay{
		gateway:  gateway,
		store:    store,
		queue:    queue,
		notifier: notifier,
		recorder: recorder,
	}
}

// Start launches the drain loop in the background. It returns immediately.
func (r *Relay) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Relay) run(ctx context.Context) {
	for {
		events, err := r.gateway.Events(ctx, r.lastID)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			// Deliberately no resubscribe: silently missed events would
			// desynchronize the view without detection. Make the failure
			// operator-visible instead and stop.
			log.Printf("event subscription lost: %v", err)
			r.store.SetError(fmt.Errorf("event subscription lost: %w", err))
			r.notifier.Publish(Notification{Kind: ViewChanged})
			return
		}
		for _, ev := range events {
			if ev.ID <= r.lastID {
				continue
			}
			r.lastID = ev.ID
			r.handle(ev)
		}
	}
}

func (r *Relay) handle(ev syncthing.Event) {
	switch ev.Type {
	case syncthing.EventConfigSaved:
		r.queue.Enqueue(Job{Kind: KindConfiguration})

	case syncthing.EventPendingDevicesChanged:
		r.queue.Enqueue(Job{Kind: KindPendingDevices})
		var data syncthing.PendingDevicesChangedData
		if err := ev.DecodeData(&data); err != nil {
			// Best effort: the reload still refreshes the pending set.
			log.Printf("decode %s event: %v", ev.Type, err)
			return
		}
		for _, added := range data.Added {
			r.notifier.Publish(Notification{
				Kind:       PendingDeviceSeen,
				DeviceID:   added.DeviceID,
				DeviceName: added.Name,
			})
		}

	case syncthing.EventPendingFoldersChanged:
		r.queue.Enqueue(Job{Kind: KindPendingFolders})
		var data syncthing.PendingFoldersChangedData
		if err := ev.DecodeData(&data); err != nil {
			log.Printf("decode %s event: %v", ev.Type, err)
			return
		}
		for _, added := range data.Added {
			r.notifier.Publish(Notification{
				Kind:        PendingFolderSeen,
				DeviceID:    added.DeviceID,
				FolderID:    added.FolderID,
				FolderLabel: added.FolderLabel,
			})
		}

	case syncthing.EventDeviceConnected:
		var data syncthing.DeviceConnectedData
		if err := ev.DecodeData(&data); err != nil {
			log.Printf("decode %s event: %v", ev.Type, err)
			return
		}
		// Connection flips need no reload, the event carries everything.
		r.store.SetDeviceConnected(data.ID, true)
		r.notifier.Publish(Notification{Kind: ViewChanged})

	case syncthing.EventDeviceDisconnected:
		var data syncthing.DeviceDisconnectedData
		if err := ev.DecodeData(&data); err != nil {
			log.Printf("decode %s event: %v", ev.Type, err)
			return
		}
		r.store.SetDeviceConnected(data.ID, false)
		r.notifier.Publish(Notification{Kind: ViewChanged})

	case syncthing.EventRemoteDownloadProgress:
		var data syncthing.RemoteDownloadProgressData
		if err := ev.DecodeData(&data); err != nil {
			log.Printf("decode %s event: %v", ev.Type, err)
			return
		}
		r.queue.Enqueue(Job{Kind: KindCompletion, DeviceID: data.Device})

	default:
		if r.recorder == nil {
			return
		}
		if err := r.recorder.Append(ev); err != nil {
			log.Printf("record %s event: %v", ev.Type, err)
		}
	}
}
