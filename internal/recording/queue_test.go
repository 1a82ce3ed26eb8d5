package recording

import "testing"

func TestJobQueue_DuplicateArtifactSuppressed(t *testing.T) {
	q := newJobQueue(3)

	if !q.push(&job{id: "a", artifact: "/tmp/seg-1.wav"}) {
		t.Fatal("first push rejected")
	}
	if q.push(&job{id: "b", artifact: "/tmp/seg-1.wav"}) {
		t.Fatal("duplicate artifact accepted")
	}
	if q.pendingCount() != 1 {
		t.Fatalf("pending = %d, want 1", q.pendingCount())
	}

	// the artifact stays claimed while the job is in flight
	j := q.next()
	if q.push(&job{id: "c", artifact: "/tmp/seg-1.wav"}) {
		t.Fatal("duplicate accepted while job active")
	}

	// and frees once the job finalizes
	q.release(j)
	if !q.push(&job{id: "d", artifact: "/tmp/seg-1.wav"}) {
		t.Fatal("push rejected after release")
	}
}

func TestJobQueue_BoundsActiveJobs(t *testing.T) {
	q := newJobQueue(3)
	for i := 0; i < 5; i++ {
		q.push(&job{id: string(rune('a' + i)), artifact: string(rune('0' + i))})
	}

	var admitted []*job
	for {
		j := q.next()
		if j == nil {
			break
		}
		admitted = append(admitted, j)
	}
	if len(admitted) != 3 {
		t.Fatalf("admitted = %d, want 3", len(admitted))
	}
	if q.activeCount() != 3 || q.pendingCount() != 2 {
		t.Fatalf("active = %d pending = %d", q.activeCount(), q.pendingCount())
	}

	q.release(admitted[0])
	if j := q.next(); j == nil {
		t.Fatal("freed slot not refilled")
	}
}

func TestJobQueue_DelayedJobDoesNotBlockOthers(t *testing.T) {
	q := newJobQueue(3)
	waiting := &job{id: "waiting", artifact: "w", delayed: true}
	ready := &job{id: "ready", artifact: "r"}
	q.push(waiting)
	q.push(ready)

	j := q.next()
	if j == nil || j.id != "ready" {
		t.Fatalf("next = %+v, want the ready job", j)
	}
	if q.next() != nil {
		t.Fatal("delayed job dispatched")
	}

	waiting.delayed = false
	if j := q.next(); j == nil || j.id != "waiting" {
		t.Fatalf("next = %+v, want the formerly delayed job", j)
	}
}

func TestJobQueue_BackToPendingReinsertsAtFront(t *testing.T) {
	q := newJobQueue(3)
	first := &job{id: "first", artifact: "1"}
	second := &job{id: "second", artifact: "2"}
	q.push(first)
	q.push(second)

	j := q.next()
	q.backToPending(j)

	if q.pending[0].id != "first" {
		t.Fatalf("front = %s, want first", q.pending[0].id)
	}
	if q.activeCount() != 0 {
		t.Fatalf("active = %d after backToPending", q.activeCount())
	}
}

func TestJobQueue_Drained(t *testing.T) {
	q := newJobQueue(3)
	if !q.drained() {
		t.Fatal("empty queue not drained")
	}

	q.push(&job{id: "a", artifact: "1"})
	if q.drained() {
		t.Fatal("drained with a pending job")
	}

	j := q.next()
	if q.drained() {
		t.Fatal("drained with an active job")
	}

	q.release(j)
	if !q.drained() {
		t.Fatal("not drained after release")
	}
}

func TestJobQueue_CancelDelays(t *testing.T) {
	q := newJobQueue(3)
	cancelled := false
	q.push(&job{id: "a", artifact: "1", delayed: true, cancelDelay: func() { cancelled = true }})
	q.push(&job{id: "b", artifact: "2"})

	q.cancelDelays()
	if !cancelled {
		t.Fatal("delay timer not cancelled")
	}
}
