// Package scanner adapts an external barcode-scanning collaborator into an
// inbound event source. The core never implements the scanning mechanism;
// it asks the session to start listening and receives decoded barcode
// strings back.
//
// The service is an injected capability with an explicit lifecycle, not a
// process-wide singleton: Init is tied to settings loads and is a no-op
// while a session is already active; Close tears the session down.
package scanner

import (
	"context"
	"fmt"
	"sync"

	"github.com/same7samy00/ysk-sales/internal/model"
)

// Session is the transport behind the scanner service. Implementations
// deliver decoded barcodes on Results until closed.
type Session interface {
	// RequestScan asks the remote side to begin listening for a scan.
	RequestScan(ctx context.Context) error

	// Results delivers decoded barcode strings.
	Results() <-chan string

	// Close tears the session down.
	Close() error
}

// SessionFactory opens a session from scanner settings. Returning a nil
// session means the settings do not configure a scanner.
type SessionFactory func(model.SystemSettings) (Session, error)

// Service fans scan results out to subscribers.
type Service struct {
	factory SessionFactory

	mu      sync.Mutex
	session Session
	subs    map[int]func(string)
	nextID  int
	done    chan struct{}
}

// New creates a Service. A nil factory yields a service that stays
// inactive no matter the settings.
func New(factory SessionFactory) *Service {
	return &Service{
		factory: factory,
		subs:    make(map[int]func(string)),
	}
}

// Init opens a session from settings and starts dispatching results.
// Idempotent: a second Init while a session is active is a no-op, and
// settings without scanner configuration leave the service inactive.
func (s *Service) Init(settings model.SystemSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return nil
	}
	if s.factory == nil || !settings.ScannerConfigured() {
		return nil
	}

	session, err := s.factory(settings)
	if err != nil {
		return fmt.Errorf("open scanner session: %w", err)
	}
	if session == nil {
		return nil
	}
	s.session = session
	s.done = make(chan struct{})
	go s.dispatch(session, s.done)
	return nil
}

// Active reports whether a session is open.
func (s *Service) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// RequestScan asks the active session to begin listening for a scan.
func (s *Service) RequestScan(ctx context.Context) error {
	s.mu.Lock()
	session := s.session
	s.mu.Unlock()
	if session == nil {
		return fmt.Errorf("scanner not initialized")
	}
	return session.RequestScan(ctx)
}

// Subscribe registers a callback for decoded barcodes and returns its
// unsubscribe function. Callbacks run on the dispatch goroutine.
func (s *Service) Subscribe(cb func(barcode string)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = cb
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Close tears down the active session, if any. The service can be
// re-initialized afterwards, e.g. when scanner settings change.
func (s *Service) Close() error {
	s.mu.Lock()
	session := s.session
	done := s.done
	s.session = nil
	s.done = nil
	s.mu.Unlock()

	if session == nil {
		return nil
	}
	err := session.Close()
	if done != nil {
		<-done
	}
	return err
}

func (s *Service) dispatch(session Session, done chan struct{}) {
	defer close(done)
	for barcode := range session.Results() {
		s.mu.Lock()
		cbs := make([]func(string), 0, len(s.subs))
		for _, cb := range s.subs {
			cbs = append(cbs, cb)
		}
		s.mu.Unlock()
		for _, cb := range cbs {
			cb(barcode)
		}
	}
}

// MemorySession is an in-process Session for tests and local wiring.
type MemorySession struct {
	results   chan string
	closeOnce sync.Once

	mu        sync.Mutex
	requested int
}

// NewMemorySession creates a session with a buffered result channel.
func NewMemorySession() *MemorySession {
	return &MemorySession{results: make(chan string, 16)}
}

// RequestScan records the request; the test side pushes results.
func (m *MemorySession) RequestScan(ctx context.Context) error {
	m.mu.Lock()
	m.requested++
	m.mu.Unlock()
	return nil
}

// Requested returns how many scans were requested.
func (m *MemorySession) Requested() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requested
}

// Push delivers a decoded barcode to subscribers.
func (m *MemorySession) Push(barcode string) { m.results <- barcode }

// Results implements Session.
func (m *MemorySession) Results() <-chan string { return m.results }

// Close implements Session.
func (m *MemorySession) Close() error {
	m.closeOnce.Do(func() { close(m.results) })
	return nil
}
