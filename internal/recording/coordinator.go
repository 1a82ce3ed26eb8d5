package recording

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/eleven-am/voicenotes/internal/connectivity"
	"github.com/eleven-am/voicenotes/internal/credential"
	"github.com/eleven-am/voicenotes/internal/monitor"
	"github.com/eleven-am/voicenotes/internal/shared"
	"github.com/eleven-am/voicenotes/internal/transcription"
)

const (
	defaultSegmentDuration = 30 * time.Second
	defaultTickInterval    = time.Second
	defaultMaxRetries      = 5
	defaultMaxActive       = 3
)

type Config struct {
	SessionID      string
	ConversationID string
	Language       string

	SegmentDuration time.Duration
	TickInterval    time.Duration
	MaxRetries      int
	MaxActive       int
}

func (c Config) withDefaults() Config {
	if c.SegmentDuration <= 0 {
		c.SegmentDuration = defaultSegmentDuration
	}
	if c.TickInterval <= 0 {
		c.TickInterval = defaultTickInterval
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.MaxActive <= 0 {
		c.MaxActive = defaultMaxActive
	}
	return c
}

type Deps struct {
	Capture       CaptureSession
	Remote        transcription.Transcriber
	Credentials   credential.Source
	Network       *connectivity.Monitor
	Sink          Sink
	Routes        *monitor.RouteMonitor
	Interruptions *monitor.InterruptionMonitor
	Scheduler     Scheduler
	Clock         func() time.Time
	Callbacks     Callbacks
	Log           *slog.Logger
}

// Coordinator owns the segmentation clock, the local/remote routing decision,
// the retrying job queue, and record emission for one recording session.
//
// All coordinator state lives on a single run loop and is mutated only through
// serialized commands; workers and backoff timers post their completions back
// as commands, so there are no shared counters to race on.
type Coordinator struct {
	cfg  Config
	deps Deps
	log  *slog.Logger
	now  func() time.Time

	cmds chan func()
	done chan struct{}

	ctx    context.Context
	cancel context.CancelFunc

	cancelRoutes        func()
	cancelInterruptions func()
	cancelNetwork       func()
	routeCh             <-chan monitor.RouteEvent
	interruptionCh      <-chan monitor.ClassifiedInterruption
	networkCh           <-chan connectivity.Status

	// run-loop owned state
	state    State
	seg      *segment
	diff     partialDiff
	paused   bool
	pausedAt time.Time
	queue    *jobQueue
	seq      int
	status   QueueStatus
	closing  bool
	started  bool
}

func NewCoordinator(cfg Config, deps Deps) *Coordinator {
	cfg = cfg.withDefaults()
	if deps.Log == nil {
		deps.Log = slog.Default()
	}
	if deps.Scheduler == nil {
		deps.Scheduler = NewTimerScheduler()
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		cfg:    cfg,
		deps:   deps,
		log:    deps.Log.With("component", "coordinator", "session_id", cfg.SessionID),
		now:    deps.Clock,
		cmds:   make(chan func(), 64),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		state:  StateIdle,
		queue:  newJobQueue(cfg.MaxActive),
		status: QueueStatus{Kind: QueueIdle},
	}
}

// Start begins capture and the segmentation clock.
func (c *Coordinator) Start() error {
	if c.started {
		return fmt.Errorf("coordinator already started")
	}
	c.started = true

	if err := c.deps.Capture.Start(); err != nil {
		return fmt.Errorf("start capture: %w", err)
	}

	c.state = StateRecording
	c.seg = newSegment(c.now())

	if c.deps.Routes != nil {
		c.routeCh, c.cancelRoutes = c.deps.Routes.Subscribe()
	}
	if c.deps.Interruptions != nil {
		c.interruptionCh, c.cancelInterruptions = c.deps.Interruptions.Subscribe()
	}
	if c.deps.Network != nil {
		c.networkCh, c.cancelNetwork = c.deps.Network.Subscribe()
	}

	go c.run()
	c.log.Info("recording started", "conversation_id", c.cfg.ConversationID)
	return nil
}

func (c *Coordinator) run() {
	ticker := time.NewTicker(c.cfg.TickInterval)
	defer ticker.Stop()
	defer c.teardown()

	for {
		select {
		case <-c.ctx.Done():
			return
		case fn := <-c.cmds:
			fn()
		case <-ticker.C:
			c.handleTick(c.now())
		case evt := <-c.routeCh:
			c.handleRouteChange(evt)
		case ci := <-c.interruptionCh:
			c.handleInterruption(ci)
		case st := <-c.networkCh:
			c.handleNetworkChange(st)
		}

		if c.closing && c.state == StateIdle && c.queue.drained() {
			return
		}
	}
}

func (c *Coordinator) teardown() {
	c.queue.cancelDelays()
	if c.cancelRoutes != nil {
		c.cancelRoutes()
	}
	if c.cancelInterruptions != nil {
		c.cancelInterruptions()
	}
	if c.cancelNetwork != nil {
		c.cancelNetwork()
	}
	c.cancel()
	close(c.done)
	c.log.Info("coordinator finished", "records_emitted", c.seq)
}

// post submits a command to the run loop; returns false once the loop is gone.
func (c *Coordinator) post(fn func()) bool {
	select {
	case c.cmds <- fn:
		return true
	case <-c.done:
		return false
	}
}

// call runs fn on the loop and waits for it.
func (c *Coordinator) call(fn func()) {
	ran := make(chan struct{})
	if !c.post(func() {
		fn()
		close(ran)
	}) {
		return
	}
	select {
	case <-ran:
	case <-c.done:
	}
}

// Done closes once recording has stopped and every enqueued job has finalized.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

func (c *Coordinator) SessionID() string      { return c.cfg.SessionID }
func (c *Coordinator) ConversationID() string { return c.cfg.ConversationID }

func (c *Coordinator) State() State {
	var s State
	c.call(func() { s = c.state })
	if s == "" {
		return StateIdle
	}
	return s
}

func (c *Coordinator) Status() QueueStatus {
	s := QueueStatus{Kind: QueueIdle}
	c.call(func() { s = c.status })
	return s
}

// HandleAudioFrame forwards one captured frame; capture never routes through
// the command loop so network stalls cannot block it.
func (c *Coordinator) HandleAudioFrame(frame []byte) error {
	return c.deps.Capture.WriteFrame(frame)
}

// HandlePartial receives the local recognizer's full transcript so far and
// appends only the newly recognized text to the open segment.
func (c *Coordinator) HandlePartial(full string) {
	c.post(func() {
		if c.state != StateRecording {
			return
		}
		appended := c.diff.extract(full)
		if appended == "" {
			return
		}
		c.seg.append(appended)
		if c.deps.Callbacks.OnPartial != nil {
			c.deps.Callbacks.OnPartial(c.cfg.SessionID, full)
		}
	})
}

// Stop ends the recording session. The current segment finalizes through the
// normal routing decision; already-enqueued remote jobs keep processing.
func (c *Coordinator) Stop() {
	c.post(func() { c.stopRecording(false) })
}

// Fail stops the session after an unrecoverable capture/recognizer error. The
// open segment finalizes locally since its audio cannot be trusted.
func (c *Coordinator) Fail(err error) {
	c.post(func() {
		c.log.Error("recording failed", "error", err)
		if c.deps.Callbacks.OnError != nil {
			c.deps.Callbacks.OnError(c.cfg.SessionID, err)
		}
		c.stopRecording(true)
	})
}

// Close abandons the session immediately, including pending jobs.
func (c *Coordinator) Close() {
	c.cancel()
}

func (c *Coordinator) handleTick(now time.Time) {
	if c.state != StateRecording || c.paused {
		return
	}
	if c.seg.elapsed(now) >= c.cfg.SegmentDuration {
		c.closeSegment(now, false, true)
	}
}

func (c *Coordinator) handleRouteChange(evt monitor.RouteEvent) {
	if c.state != StateRecording {
		return
	}
	now := c.now()
	if c.paused {
		// the pause accrued so far belongs to the closing segment; the fresh
		// window accounts its own pause from the boundary on
		c.seg.shift(now.Sub(c.pausedAt))
		c.pausedAt = now
	}
	// the in-flight artifact may be compromised by the device transition, so
	// this boundary always routes local
	c.log.Info("route change forces segment boundary", "reason", evt.Reason)
	c.closeSegment(now, true, true)
}

func (c *Coordinator) handleInterruption(ci monitor.ClassifiedInterruption) {
	now := c.now()
	switch ci.Event.Phase {
	case monitor.InterruptionBegan:
		if c.state != StateRecording {
			return
		}
		if ci.Transient {
			if !c.paused {
				c.paused = true
				c.pausedAt = now
				c.log.Info("transient interruption, clock paused")
			}
			return
		}
		c.log.Info("full interruption, stopping recording")
		c.stopRecording(true)
	case monitor.InterruptionEnded:
		if c.paused {
			c.seg.shift(now.Sub(c.pausedAt))
			c.paused = false
			c.log.Info("interruption ended, clock resumed")
		}
	}
}

func (c *Coordinator) handleNetworkChange(st connectivity.Status) {
	c.recomputeStatus()
	if st.Available {
		c.drain()
	}
}

func (c *Coordinator) stopRecording(forceLocal bool) {
	if c.state != StateRecording {
		return
	}
	now := c.now()
	if c.paused {
		c.seg.shift(now.Sub(c.pausedAt))
		c.paused = false
	}
	c.state = StateIdle
	c.closing = true
	c.closeSegment(now, forceLocal, false)
	c.log.Info("recording stopped")
}

// closeSegment cuts the open segment, decides its transcription route, and
// opens the next window when the session continues. The routing conditions are
// evaluated here, at closure time, never earlier.
func (c *Coordinator) closeSegment(now time.Time, forceLocal, reopen bool) {
	text := c.seg.trimmed()
	duration := c.seg.elapsed(now)

	var artifact string
	var artErr error
	if reopen {
		artifact, artErr = c.deps.Capture.CutArtifact()
	} else {
		artifact, artErr = c.deps.Capture.Stop()
	}

	if reopen {
		c.seg = newSegment(now)
	}

	if text == "" {
		// an empty window resets silently; it never produces a record
		if artifact != "" {
			os.Remove(artifact)
		}
		return
	}

	c.seq++
	seq := c.seq

	if !forceLocal && artErr == nil && artifact != "" && c.remoteEligible() {
		j := &job{
			id:         shared.NewID("job_"),
			artifact:   artifact,
			fallback:   text,
			duration:   duration,
			seq:        seq,
			enqueuedAt: now,
		}
		if !c.queue.push(j) {
			c.log.Warn("duplicate job for artifact suppressed", "artifact", artifact)
			return
		}
		c.log.Info("segment routed remote", "seq", seq, "chars", len(text))
		c.recomputeStatus()
		c.drain()
		return
	}

	if errors.Is(artErr, shared.ErrNoArtifact) {
		c.log.Warn("segment has no artifact, routing local", "seq", seq)
	} else if artifact != "" {
		// a locally finalized segment never needs its audio again
		os.Remove(artifact)
	}
	c.emit(text, SourceLocal, duration, seq)
}

func (c *Coordinator) remoteEligible() bool {
	if _, ok := c.deps.Credentials.Resolve(c.ctx); !ok {
		return false
	}
	return c.deps.Network.Available()
}

// drain admits pending jobs while a worker slot and the network are available.
// The availability snapshot is taken once per drain.
func (c *Coordinator) drain() {
	if !c.deps.Network.Available() {
		c.recomputeStatus()
		return
	}
	for {
		j := c.queue.next()
		if j == nil {
			break
		}
		go c.runJob(j)
	}
	c.recomputeStatus()
}

// runJob performs exactly one remote attempt off-loop, then posts the outcome
// back as a command.
func (c *Coordinator) runJob(j *job) {
	var text string
	var err error

	key, ok := c.deps.Credentials.Resolve(c.ctx)
	if !ok {
		err = errors.New("cloud credential no longer available")
	} else {
		var res *transcription.Result
		res, err = c.deps.Remote.Transcribe(c.ctx, transcription.Request{
			ArtifactPath: j.artifact,
			APIKey:       key,
			Language:     c.cfg.Language,
		})
		if err == nil {
			text = res.Text
		}
	}

	c.post(func() { c.completeJob(j, text, err) })
}

func (c *Coordinator) completeJob(j *job, text string, err error) {
	if err == nil {
		c.queue.release(j)
		c.emit(text, SourceRemote, j.duration, j.seq)
		os.Remove(j.artifact)
		c.recomputeStatus()
		c.drain()
		return
	}

	if j.retries >= c.cfg.MaxRetries {
		// the job is never discarded: past the retry bound it finalizes with
		// the on-device fallback text
		c.log.Warn("job exhausted retries, using local fallback", "job_id", j.id, "retries", j.retries)
		c.queue.release(j)
		c.emit(j.fallback, SourceLocal, j.duration, j.seq)
		os.Remove(j.artifact)
		c.recomputeStatus()
		c.drain()
		return
	}

	j.retries++
	j.delayed = true
	c.queue.backToPending(j)

	delay := time.Duration(1<<(j.retries-1)) * time.Second
	c.log.Info("job attempt failed, backing off",
		"job_id", j.id,
		"retry", j.retries,
		"delay", delay,
		"error", err)

	j.cancelDelay = c.deps.Scheduler.AfterFunc(delay, func() {
		c.post(func() {
			j.delayed = false
			j.cancelDelay = nil
			c.drain()
		})
	})

	c.recomputeStatus()
	c.drain()
}

func (c *Coordinator) emit(text string, source Source, duration time.Duration, seq int) {
	rec := Record{
		ID:             shared.NewID("msg_"),
		SessionID:      c.cfg.SessionID,
		ConversationID: c.cfg.ConversationID,
		Text:           text,
		Source:         source,
		Duration:       duration,
		Seq:            seq,
		CreatedAt:      c.now(),
	}

	if err := c.deps.Sink.Append(c.ctx, rec); err != nil {
		c.log.Error("failed to persist record", "record_id", rec.ID, "error", err)
	}
	if c.deps.Callbacks.OnRecord != nil {
		c.deps.Callbacks.OnRecord(rec)
	}
	c.log.Info("record finalized", "record_id", rec.ID, "source", source, "seq", seq)
}

func (c *Coordinator) recomputeStatus() {
	next := deriveStatus(c.deps.Network.Available(), c.queue.activeCount(), c.queue.pendingCount())
	if next == c.status {
		return
	}
	c.status = next
	if c.deps.Callbacks.OnStatus != nil {
		c.deps.Callbacks.OnStatus(c.cfg.SessionID, next)
	}
}
