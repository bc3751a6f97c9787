// Package formstate holds the in-memory onboarding record. Every input event
// is expressed as a model.Patch merged into the current snapshot, so
// unrelated fields are never dropped by an update.
package formstate

import (
	"sync"

	"github.com/goliatone/go-joinform/pkg/model"
)

// Listener observes snapshots after each Set or Reset.
type Listener func(model.EmployeeSubmission)

// Store tracks the current record, the picked attachments, and which wire
// keys the user has touched since the last reset.
type Store struct {
	mu          sync.RWMutex
	record      model.EmployeeSubmission
	attachments model.Attachments
	touched     map[string]struct{}
	listeners   []Listener
}

// New creates a store seeded with initial, or the empty record when omitted.
func New(initial ...model.EmployeeSubmission) *Store {
	s := &Store{
		record:  model.Empty(),
		touched: make(map[string]struct{}),
	}
	if len(initial) > 0 {
		s.record = initial[0]
	}
	return s
}

// Get returns the current snapshot. The value is a copy; mutating it does not
// affect the store.
func (s *Store) Get() model.EmployeeSubmission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.record
}

// Set merges patch into the current record and returns the new snapshot.
func (s *Store) Set(patch model.Patch) model.EmployeeSubmission {
	s.mu.Lock()
	s.record = model.Merge(s.record, patch)
	for _, name := range patch.Fields() {
		s.touched[name] = struct{}{}
	}
	snapshot := s.record
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	notify(listeners, snapshot)
	return snapshot
}

// SetField is a convenience for single-field input events keyed by wire key.
func (s *Store) SetField(name, value string) (model.EmployeeSubmission, error) {
	patch, err := model.FieldPatch(name, value)
	if err != nil {
		return s.Get(), err
	}
	return s.Set(patch), nil
}

// Reset restores the empty record and clears attachments. Calling it twice
// leaves the same state as calling it once.
func (s *Store) Reset() {
	s.mu.Lock()
	s.record = model.Empty()
	s.attachments = model.Attachments{}
	s.touched = make(map[string]struct{})
	snapshot := s.record
	listeners := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()

	notify(listeners, snapshot)
}

// Touched reports whether the field has been edited since the last reset.
func (s *Store) Touched(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.touched[name]
	return ok
}

// SetPhoto records the picked photo, or clears it when file is nil.
func (s *Store) SetPhoto(file *model.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments.Photo = cloneFile(file)
}

// SetSignature records the picked signature, or clears it when file is nil.
func (s *Store) SetSignature(file *model.File) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attachments.Signature = cloneFile(file)
}

// Attachments returns a copy of the picked files.
func (s *Store) Attachments() model.Attachments {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.attachments.Clone()
}

// OnChange registers a listener. Listeners run outside the store lock, in
// registration order.
func (s *Store) OnChange(fn Listener) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func notify(listeners []Listener, snapshot model.EmployeeSubmission) {
	for _, fn := range listeners {
		fn(snapshot)
	}
}

func cloneFile(file *model.File) *model.File {
	if file == nil {
		return nil
	}
	copied := *file
	return &copied
}
