package reconcile

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// JobKind names one category of daemon state to re-fetch.
type JobKind int

const (
	KindLocalID JobKind = iota
	KindConfiguration
	KindPendingDevices
	KindPendingFolders
	KindConnections
	KindCompletion
)

func (k JobKind) String() string {
	switch k {
	case KindLocalID:
		return "local-id"
	case KindConfiguration:
		return "configuration"
	case KindPendingDevices:
		return "pending-devices"
	case KindPendingFolders:
		return "pending-folders"
	case KindConnections:
		return "connections"
	case KindCompletion:
		return "completion"
	default:
		return fmt.Sprintf("job-kind-%d", int(k))
	}
}

// Job is one reconciliation unit: fetch one category of daemon state and
// merge it. Completion jobs are scoped to either a folder or a device.
type Job struct {
	Kind     JobKind
	FolderID string
	DeviceID string
}

func (j Job) String() string {
	switch {
	case j.FolderID != "":
		return fmt.Sprintf("%s[folder=%s]", j.Kind, j.FolderID)
	case j.DeviceID != "":
		return fmt.Sprintf("%s[device=%s]", j.Kind, j.DeviceID)
	default:
		return j.Kind.String()
	}
}

const defaultQueueCapacity = 64

// Queue is a bounded FIFO of reconciliation jobs with a single consumer.
// A job equal to one already waiting is dropped, so a burst of identical
// events costs one fetch. Enqueueing on a full queue drops the job rather
// than blocking the producer; every kind is re-coverable by a later event
// or a manual reload.
type Queue struct {
	mu      sync.Mutex
	pending map[Job]bool
	jobs    chan Job
}

// NewQueue returns a queue with the given capacity, or the default when
// capacity is not positive.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = defaultQueueCapacity
	}
	return &Queue{
		pending: make(map[Job]bool),
		jobs:    make(chan Job, capacity),
	}
}

// Enqueue adds a job unless an identical one is already waiting. It reports
// whether the job was accepted.
func (q *Queue) Enqueue(job Job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending[job] {
		return false
	}
	select {
	case q.jobs <- job:
		q.pending[job] = true
		return true
	default:
		log.Printf("reload queue full, dropping %s", job)
		return false
	}
}

// Dequeue blocks for the next job. It reports false once ctx is cancelled.
func (q *Queue) Dequeue(ctx context.Context) (Job, bool) {
	select {
	case <-ctx.Done():
		return Job{}, false
	case job := <-q.jobs:
		q.mu.Lock()
		delete(q.pending, job)
		q.mu.Unlock()
		return job, true
	}
}

// Len returns the number of waiting jobs.
func (q *Queue) Len() int {
	return len(q.jobs)
}
