package quoting

import (
	"sync"
	"time"

	"github.com/soundsystems/shirtcalc/internal/domain/models"
)

// FormState is the per-visitor form state. A nil Quote means no quote is
// currently computed. Inputs holds the last submitted field values.
type FormState struct {
	Brand    string
	Color    models.Color
	Quote    *models.Quote
	Inputs   map[string]string
	LastSeen time.Time
}

// HasQuote reports whether the form is in the quote-computed state.
func (s FormState) HasQuote() bool {
	return s.Quote != nil
}

// SessionManager tracks form state per browser session.
type SessionManager struct {
	sessions map[string]*FormState
	mu       sync.Mutex
	now      func() time.Time
}

// NewSessionManager creates an empty session manager.
func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*FormState),
		now:      time.Now,
	}
}

// touch returns the live state for id, creating it in the initial state. Callers hold mu.
func (sm *SessionManager) touch(id string) *FormState {
	state, ok := sm.sessions[id]
	if !ok {
		state = &FormState{Color: models.ColorLight}
		sm.sessions[id] = state
	}
	state.LastSeen = sm.now()
	return state
}

// Get returns a copy of the state for id, creating it if needed.
func (sm *SessionManager) Get(id string) FormState {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return *sm.touch(id)
}

// StoreQuote moves the session into the quote-computed state. basis is the
// state the quote was priced from; if the color or brand changed since, the
// quote is dropped, only the inputs are kept, and false is returned.
func (sm *SessionManager) StoreQuote(id string, basis FormState, quote models.Quote, inputs map[string]string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	state := sm.touch(id)
	state.Inputs = inputs
	if state.Color != basis.Color || state.Brand != basis.Brand {
		state.Quote = nil
		return false
	}
	state.Quote = &quote
	return true
}

// StoreInputs keeps submitted values without a quote, e.g. after a failed validation.
func (sm *SessionManager) StoreInputs(id string, inputs map[string]string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	state := sm.touch(id)
	state.Quote = nil
	state.Inputs = inputs
}

// SetColor switches the garment color. A change discards any computed quote;
// it reports whether one was discarded.
func (sm *SessionManager) SetColor(id string, color models.Color) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	state := sm.touch(id)
	if state.Color == color {
		return false
	}
	state.Color = color
	discarded := state.Quote != nil
	state.Quote = nil
	return discarded
}

// SetBrand switches the brand. Prices differ per brand, so a change discards the quote too.
func (sm *SessionManager) SetBrand(id, brand string) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	state := sm.touch(id)
	if state.Brand == brand {
		return false
	}
	state.Brand = brand
	discarded := state.Quote != nil
	state.Quote = nil
	return discarded
}

// Prune drops sessions idle for longer than maxIdle and returns how many were removed.
func (sm *SessionManager) Prune(maxIdle time.Duration) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	cutoff := sm.now().Add(-maxIdle)
	var removed int
	for id, state := range sm.sessions {
		if state.LastSeen.Before(cutoff) {
			delete(sm.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of live sessions.
func (sm *SessionManager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.sessions)
}
