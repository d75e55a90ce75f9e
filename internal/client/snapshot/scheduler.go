package snapshot

import (
	"context"
	"sync"
	"time"

	"github.com/cynit/hub/internal/logging"
)

// State of the snapshot pipeline as shown by the ambient status indicator.
type State string

const (
	StateIdle      State = "idle"
	StateInFlight  State = "in-flight"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Status is a point-in-time view of the pipeline.
type Status struct {
	State       State
	LastSuccess time.Time
	LastError   string
}

// Source produces the payload for the next snapshot from the currently
// active content. ok=false means there is nothing to snapshot right now.
type Source func() (Payload, bool)

const sendTimeout = 15 * time.Second

// Scheduler owns the periodic snapshot timer and the background sender.
//
// Triggers never block and never return errors; a failed send leaves the
// pipeline in StateFailed until the next trigger attempts again
// independently. The queue is small and lossy: when it is full the oldest
// pending payload is dropped, since every snapshot is a full replacement of
// the server-side copy.
type Scheduler struct {
	transport Transport
	source    Source
	log       logging.Logger

	mu         sync.Mutex
	status     Status
	running    bool
	closed     bool
	stopTicker chan struct{}

	queue      chan Payload
	senderDone chan struct{}
}

func NewScheduler(transport Transport, source Source, log logging.Logger) *Scheduler {
	s := &Scheduler{
		transport:  transport,
		source:     source,
		log:        log,
		status:     Status{State: StateIdle},
		queue:      make(chan Payload, 4),
		senderDone: make(chan struct{}),
	}
	go s.sender()
	return s
}

func (s *Scheduler) sender() {
	defer close(s.senderDone)

	for p := range s.queue {
		s.setState(StateInFlight, nil)

		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		err := s.transport.Send(ctx, p)
		cancel()

		if err != nil {
			s.log.Warn(context.Background(), "snapshot failed", "filename", p.Filename, "error", err.Error())
			s.setState(StateFailed, err)
			continue
		}
		s.setState(StateSucceeded, nil)
	}
}

func (s *Scheduler) setState(state State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.status.State = state
	switch state {
	case StateSucceeded:
		s.status.LastSuccess = time.Now()
		s.status.LastError = ""
	case StateFailed:
		s.status.LastError = err.Error()
	}
}

// Trigger captures the current content and enqueues one snapshot. It never
// blocks: with a full queue the oldest pending payload is discarded first.
func (s *Scheduler) Trigger() {
	p, ok := s.source()
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	for {
		select {
		case s.queue <- p:
			return
		default:
		}
		select {
		case <-s.queue:
		default:
		}
	}
}

// Start begins periodic snapshots every interval. It is idempotent: while a
// timer is already running another Start is a no-op. Reports whether a new
// timer was started.
func (s *Scheduler) Start(interval time.Duration) bool {
	s.mu.Lock()
	if s.running || s.closed {
		s.mu.Unlock()
		return false
	}
	s.running = true
	stop := make(chan struct{})
	s.stopTicker = stop
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.Trigger()
			case <-stop:
				return
			}
		}
	}()
	return true
}

// Stop halts the periodic timer. In-flight and queued snapshots continue.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stopTicker)
	s.stopTicker = nil
}

// Close stops the timer and drains the sender, waiting until queued payloads
// are delivered or ctx expires. Best effort: snapshots still pending at the
// deadline are abandoned.
func (s *Scheduler) Close(ctx context.Context) error {
	s.Stop()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	select {
	case <-s.senderDone:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Status returns the current pipeline status.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
