package reconcile

import (
	"context"
	"fmt"
	"log"

	"github.com/hertelukas/synctui/internal/state"
)

// Reloader is the single worker that drains the job queue. Jobs run strictly
// in arrival order, one at a time: the daemon's fetch endpoints are
// idempotent snapshots, so concurrency would only risk writing a stale
// snapshot over a fresher one.
type Reloader struct {
	gateway  Gateway
	store    *state.Store
	queue    *Queue
	notifier *Notifier
}

// NewReloader wires a reloader to its collaborators.
func NewReloader(gateway Gateway, store *state.Store, queue *Queue, notifier *Notifier) *Reloader {
	return &Reloader{
		gateway:  gateway,
		store:    store,
		queue:    queue,
		notifier: notifier,
	}
}

// Start launches the drain loop in the background. It returns immediately.
func (r *Reloader) Start(ctx context.Context) {
	go r.run(ctx)
}

func (r *Reloader) run(ctx context.Context) {
	for {
		job, ok := r.queue.Dequeue(ctx)
		if !ok {
			return
		}
		if err := r.process(ctx, job); err != nil {
			// A failed fetch never stops the worker; the error lands in the
			// shared slot and the next queued job still runs.
			log.Printf("reload %s failed: %v", job, err)
			r.store.SetError(fmt.Errorf("reload %s: %w", job, err))
		} else {
			r.store.ClearError()
		}
		// Notify regardless of outcome so the UI can refresh at least the
		// error indicator.
		r.notifier.Publish(Notification{Kind: ViewChanged})
	}
}

// process performs exactly one gateway call and merges the result.
func (r *Reloader) process(ctx context.Context, job Job) error {
	switch job.Kind {
	case KindLocalID:
		id, err := r.gateway.LocalID(ctx)
		if err != nil {
			return err
		}
		r.store.SetLocalID(id)

	case KindConfiguration:
		cfg, err := r.gateway.Configuration(ctx)
		if err != nil {
			return err
		}
		r.store.ApplyConfiguration(cfg)
		// A fresh configuration invalidates previously derived numbers.
		r.queue.Enqueue(Job{Kind: KindConnections})
		for _, folder := range cfg.Folders {
			r.queue.Enqueue(Job{Kind: KindCompletion, FolderID: folder.ID})
		}

	case KindPendingDevices:
		pending, err := r.gateway.PendingDevices(ctx)
		if err != nil {
			return err
		}
		r.store.ApplyPendingDevices(pending)

	case KindPendingFolders:
		pending, err := r.gateway.PendingFolders(ctx)
		if err != nil {
			return err
		}
		r.store.ApplyPendingFolders(pending)

	case KindConnections:
		conns, err := r.gateway.Connections(ctx)
		if err != nil {
			return err
		}
		r.store.ApplyConnections(conns)

	case KindCompletion:
		completion, err := r.gateway.Completion(ctx, job.FolderID, job.DeviceID)
		if err != nil {
			return err
		}
		if job.DeviceID != "" {
			r.store.ApplyDeviceCompletion(job.DeviceID, completion.Completion)
		} else {
			r.store.ApplyFolderCompletion(job.FolderID, completion.Completion)
		}

	default:
		return fmt.Errorf("unknown job kind %d", int(job.Kind))
	}
	return nil
}
