package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hertelukas/synctui/internal/config"
	"github.com/hertelukas/synctui/internal/reconcile"
)

func TestSeedJobsCoverEverything(t *testing.T) {
	queue := reconcile.NewQueue(8)
	seedJobs(queue)

	want := []reconcile.JobKind{
		reconcile.KindLocalID,
		reconcile.KindConfiguration,
		reconcile.KindPendingDevices,
		reconcile.KindPendingFolders,
		reconcile.KindConnections,
	}
	if queue.Len() != len(want) {
		t.Fatalf("seeded %d jobs, want %d", queue.Len(), len(want))
	}
	for i, kind := range want {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		job, ok := queue.Dequeue(ctx)
		cancel()
		if !ok {
			t.Fatalf("dequeue %d timed out", i)
		}
		if job.Kind != kind {
			t.Errorf("job %d = %s, want %s", i, job.Kind, kind)
		}
	}
}

func TestRunRequiresAPIKey(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	err := Run(context.Background(), Options{})
	if !errors.Is(err, config.ErrMissingAPIKey) {
		t.Fatalf("Run without key returned %v, want ErrMissingAPIKey", err)
	}
}
