package reconcile

import (
	"context"
	"testing"
	"time"
)

func TestQueueDeduplicatesWaitingJobs(t *testing.T) {
	q := NewQueue(8)

	if !q.Enqueue(Job{Kind: KindConfiguration}) {
		t.Fatal("first enqueue rejected")
	}
	if q.Enqueue(Job{Kind: KindConfiguration}) {
		t.Error("identical waiting job accepted twice")
	}
	if !q.Enqueue(Job{Kind: KindCompletion, FolderID: "f1"}) {
		t.Error("distinct job rejected")
	}
	if !q.Enqueue(Job{Kind: KindCompletion, FolderID: "f2"}) {
		t.Error("job differing only in folder scope rejected")
	}
	if q.Len() != 3 {
		t.Errorf("Len() = %d, want 3", q.Len())
	}
}

func TestQueueReaccceptsAfterDequeue(t *testing.T) {
	q := NewQueue(8)
	q.Enqueue(Job{Kind: KindConnections})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, ok := q.Dequeue(ctx); !ok {
		t.Fatal("dequeue failed")
	}
	if !q.Enqueue(Job{Kind: KindConnections}) {
		t.Error("job rejected after its twin was dequeued")
	}
}

func TestQueuePreservesOrder(t *testing.T) {
	q := NewQueue(8)
	want := []Job{
		{Kind: KindLocalID},
		{Kind: KindConfiguration},
		{Kind: KindPendingDevices},
	}
	for _, job := range want {
		q.Enqueue(job)
	}

	got := drainJobs(t, q)
	if len(got) != len(want) {
		t.Fatalf("drained %d jobs, want %d", len(got), len(want))
	}
	for i, job := range got {
		if job != want[i] {
			t.Errorf("job %d = %s, want %s", i, job, want[i])
		}
	}
}

func TestQueueDropsWhenFull(t *testing.T) {
	q := NewQueue(2)
	q.Enqueue(Job{Kind: KindLocalID})
	q.Enqueue(Job{Kind: KindConfiguration})

	if q.Enqueue(Job{Kind: KindConnections}) {
		t.Error("enqueue on a full queue should drop the job")
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}

	// The dropped job must remain enqueueable once room frees up.
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	q.Dequeue(ctx)
	if !q.Enqueue(Job{Kind: KindConnections}) {
		t.Error("dropped job rejected after room freed up")
	}
}

func TestQueueDequeueObservesCancellation(t *testing.T) {
	q := NewQueue(8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, ok := q.Dequeue(ctx); ok {
		t.Error("dequeue on a cancelled context reported a job")
	}
}
