package player

import "sync"

// Subscription delivers a player's events in emission order. Senders never
// block: events queue until the subscriber reads them or the subscription
// is closed.
type Subscription struct {
	Events <-chan Event
	Done   <-chan struct{}

	out       chan Event
	doneCh    chan struct{}
	wake      chan struct{}
	mu        sync.Mutex
	queue     []Event
	inflight  bool
	closeOnce sync.Once
}

func newSubscription() *Subscription {
	s := &Subscription{
		out:    make(chan Event),
		doneCh: make(chan struct{}),
		wake:   make(chan struct{}, 1),
	}
	s.Events = s.out
	s.Done = s.doneCh
	go s.pump()
	return s
}

func (s *Subscription) send(e Event) {
	s.mu.Lock()
	s.queue = append(s.queue, e)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Subscription) pump() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.mu.Unlock()
			select {
			case <-s.wake:
				continue
			case <-s.doneCh:
				return
			}
		}
		e := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.inflight = true
		s.mu.Unlock()

		select {
		case s.out <- e:
		case <-s.doneCh:
			return
		}

		s.mu.Lock()
		s.inflight = false
		s.mu.Unlock()
	}
}

// Pending reports how many events have been emitted but not yet received.
func (s *Subscription) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.queue)
	if s.inflight {
		n++
	}
	return n
}

// Close stops delivery and signals Done. Safe to call more than once.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.doneCh)
	})
}
