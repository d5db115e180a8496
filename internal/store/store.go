package store

import (
	"sync"

	"kambling/internal/actionlog"
	"kambling/internal/table"
)

type Phase string

const (
	PhaseUninitialized Phase = "uninitialized"
	PhaseLoading       Phase = "loading"
	PhaseActive        Phase = "active"
	PhaseFinished      Phase = "finished"
)

type Intent string

const (
	IntentNone    Intent = ""
	IntentNewGame Intent = "new-game"
	IntentNewHand Intent = "new-hand"
	IntentAction  Intent = "action"
)

// UIState is owned by the client and never sent to the server.
type UIState struct {
	OverlayVisible bool
	RaiseAmount    int64
	Log            *actionlog.Log
}

// State is a point-in-time copy of the store. Snapshot is shared and must be
// treated as read-only; Log is a private clone.
type State struct {
	Version  uint64
	Phase    Phase
	Snapshot *table.Snapshot
	UI       UIState
	Pending  Intent
	Err      error
}

// Store holds the one current snapshot plus UI-only state. Snapshots are only
// ever replaced whole by Install.
type Store struct {
	mu       sync.Mutex
	state    State
	restore  Phase
	watchers map[chan uint64]struct{}
	closed   bool
}

func New(logHeight int) *Store {
	return &Store{
		state: State{
			Phase: PhaseUninitialized,
			UI:    UIState{Log: actionlog.New(logHeight)},
		},
		watchers: map[chan uint64]struct{}{},
	}
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.state
	out.UI.Log = s.state.UI.Log.Clone()
	return out
}

func (s *Store) Snapshot() *table.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot
}

func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Phase
}

// Begin marks a request as outstanding. A new game moves the table to
// loading; if that request fails the previous phase comes back.
func (s *Store) Begin(intent Intent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pending = intent
	s.state.Err = nil
	if intent == IntentNewGame {
		s.restore = s.state.Phase
		if s.state.Snapshot == nil {
			s.restore = PhaseLoading
		}
		s.state.Phase = PhaseLoading
	}
	s.bump()
}

// Install replaces the current snapshot and applies ui in the same critical
// section, so subscribers never observe one without the other.
func (s *Store) Install(snap *table.Snapshot, ui func(*UIState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Snapshot = snap
	s.state.Phase = PhaseActive
	if snap.Status.Finished() {
		s.state.Phase = PhaseFinished
	}
	s.state.Pending = IntentNone
	s.state.Err = nil
	if ui != nil {
		ui(&s.state.UI)
	}
	s.bump()
}

// Fail records a failed request and leaves the snapshot as it was.
func (s *Store) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Pending == IntentNewGame {
		s.state.Phase = s.restore
	}
	s.state.Pending = IntentNone
	s.state.Err = err
	s.bump()
}

// Update applies a UI-only change such as opening the raise overlay.
func (s *Store) Update(ui func(snap *table.Snapshot, st *UIState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ui(s.state.Snapshot, &s.state.UI)
	s.bump()
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Err == nil {
		return
	}
	s.state.Err = nil
	s.bump()
}

func (s *Store) CheckAction() error {
	switch s.Phase() {
	case PhaseActive:
		return nil
	case PhaseFinished:
		return ErrHandFinished
	default:
		return ErrTableLoading
	}
}

// CheckActionFor is CheckAction plus the call/hold rule: hold is refused
// while a call is owed and call is refused when nothing is owed.
func (s *Store) CheckActionFor(action table.ActionType) error {
	if err := s.CheckAction(); err != nil {
		return err
	}
	owed := table.NeedsToCall(s.Snapshot())
	switch {
	case action == table.ActionHold && owed:
		return ErrMustCall
	case action == table.ActionCall && !owed:
		return ErrNothingToCall
	}
	return nil
}

func (s *Store) CheckNewHand() error {
	switch s.Phase() {
	case PhaseFinished:
		return nil
	case PhaseActive:
		return ErrHandInProgress
	default:
		return ErrTableLoading
	}
}

// Subscribe returns a channel that receives the latest state version after
// every change. Slow readers only ever see the newest version.
func (s *Store) Subscribe() chan uint64 {
	ch := make(chan uint64, 1)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		close(ch)
		return ch
	}
	s.watchers[ch] = struct{}{}
	return ch
}

func (s *Store) Unsubscribe(ch chan uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchers[ch]; ok {
		delete(s.watchers, ch)
		close(ch)
	}
}

func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.watchers {
		close(ch)
		delete(s.watchers, ch)
	}
}

// bump must be called with mu held.
func (s *Store) bump() {
	s.state.Version++
	v := s.state.Version
	for ch := range s.watchers {
		select {
		case ch <- v:
			continue
		default:
		}
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
