package recording

import (
	"time"
)

// job is a segment routed to the remote transcription path. Jobs are owned by
// the coordinator's run loop; workers only ever see a copy of the fields they
// need and report back through a completion command.
type job struct {
	id         string
	artifact   string
	fallback   string
	duration   time.Duration
	seq        int
	enqueuedAt time.Time
	retries    int

	// delayed marks a job waiting out its backoff; the dispatch loop skips it
	// without blocking the jobs behind it.
	delayed bool

	cancelDelay func()
}

// jobQueue is the pending list plus the in-flight accounting. Methods are only
// called from the coordinator loop, which is what makes the counters safe.
type jobQueue struct {
	pending   []*job
	active    int
	maxActive int

	// artifacts referenced by pending or in-flight jobs, for duplicate
	// suppression at enqueue time
	inFlight map[string]bool
}

func newJobQueue(maxActive int) *jobQueue {
	return &jobQueue{
		maxActive: maxActive,
		inFlight:  make(map[string]bool),
	}
}

// push appends a fresh job, rejecting artifacts that already have a pending or
// in-flight job.
func (q *jobQueue) push(j *job) bool {
	if q.inFlight[j.artifact] {
		return false
	}
	q.inFlight[j.artifact] = true
	q.pending = append(q.pending, j)
	return true
}

// requeueFront reinserts a failed job at the head of the pending list.
func (q *jobQueue) requeueFront(j *job) {
	q.pending = append([]*job{j}, q.pending...)
}

// next pops the first admissible job, skipping jobs waiting out a backoff
// delay so one delayed retry never stalls the rest of the queue.
func (q *jobQueue) next() *job {
	if q.active >= q.maxActive {
		return nil
	}
	for i, j := range q.pending {
		if j.delayed {
			continue
		}
		q.pending = append(q.pending[:i], q.pending[i+1:]...)
		q.active++
		return j
	}
	return nil
}

// release retires a job after finalization, freeing its artifact for
// re-enqueue and its worker slot for the next admission.
func (q *jobQueue) release(j *job) {
	q.active--
	delete(q.inFlight, j.artifact)
}

// backToPending returns a job to the pending list after a failed attempt; the
// worker slot frees but the artifact stays claimed.
func (q *jobQueue) backToPending(j *job) {
	q.active--
	q.requeueFront(j)
}

func (q *jobQueue) pendingCount() int {
	return len(q.pending)
}

func (q *jobQueue) activeCount() int {
	return q.active
}

func (q *jobQueue) drained() bool {
	return len(q.pending) == 0 && q.active == 0
}

// cancelDelays stops outstanding backoff timers; used on coordinator teardown.
func (q *jobQueue) cancelDelays() {
	for _, j := range q.pending {
		if j.cancelDelay != nil {
			j.cancelDelay()
		}
	}
}
