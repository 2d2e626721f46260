package schedulers

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// State define worker lifecycle state
type State int

const (
	// StateStopped worker is not running
	StateStopped State = iota
	// StateRunning worker is polling
	StateRunning
	// StateStopping worker received stop and is draining the in-flight round
	StateStopping
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	default:
		return "Unknown"
	}
}

var (
	// ErrAlreadyRunning worker started twice
	ErrAlreadyRunning = errors.New("worker already running")
)

// Worker runs a poll round on a fixed interval. Stop blocks until the
// in-flight round finishes, so resources the round uses outlive it.
type Worker struct {
	interval time.Duration
	round    func()

	mutex sync.Mutex
	state State
	stop  chan bool
	done  chan bool
}

// NewWorker create worker running round every interval
func NewWorker(interval time.Duration, round func()) *Worker {
	return &Worker{
		interval: interval,
		round:    round,
		state:    StateStopped,
	}
}

// State get current worker state
func (s *Worker) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Start launch the poll loop
func (s *Worker) Start() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.state != StateStopped {
		return ErrAlreadyRunning
	}

	s.state = StateRunning
	s.stop = make(chan bool)
	s.done = make(chan bool)

	go s.run(s.stop, s.done)

	zap.L().Info("worker started", zap.Duration("interval", s.interval))
	return nil
}

// Stop signal the loop and wait for the in-flight round to drain
func (s *Worker) Stop() {
	s.mutex.Lock()
	if s.state != StateRunning {
		s.mutex.Unlock()
		return
	}

	s.state = StateStopping
	stop, done := s.stop, s.done
	s.mutex.Unlock()

	close(stop)
	<-done

	s.mutex.Lock()
	s.state = StateStopped
	s.mutex.Unlock()

	zap.L().Info("worker stopped")
}

// run poll loop, interval is drift compensated by the round duration
func (s *Worker) run(stop chan bool, done chan bool) {
	defer close(done)

	for {
		start := time.Now()
		s.round()

		elapsed := time.Since(start)
		wait := s.interval - elapsed
		if wait < 0 {
			wait = 0
		}

		select {
		case <-stop:
			return
		case <-time.After(wait):
		}
	}
}
