package authstate

import "sync"

type User struct {
	ID string
}

// State mirrors what the auth provider exposes: the resolved user, or nil,
// plus a flag that is true while resolution is still in progress.
type State struct {
	User    *User
	Loading bool
}

func (s State) Authenticated() bool {
	return !s.Loading && s.User != nil
}

// Tracker holds the current auth state and fans out every change to
// subscribers. It starts in the loading state, matching a session whose
// identity has not been resolved yet.
type Tracker struct {
	mu    sync.Mutex
	state State
	subs  map[int]func(State)
	next  int
}

func NewTracker() *Tracker {
	return &Tracker{
		state: State{Loading: true},
		subs:  make(map[int]func(State)),
	}
}

func (t *Tracker) Current() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Set replaces the state and invokes every subscriber with the new value.
// Callbacks run synchronously on the caller's goroutine, outside the lock.
func (t *Tracker) Set(s State) {
	t.mu.Lock()
	t.state = s
	fns := make([]func(State), 0, len(t.subs))
	for _, fn := range t.subs {
		fns = append(fns, fn)
	}
	t.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}

func (t *Tracker) SignIn(userID string) {
	t.Set(State{User: &User{ID: userID}})
}

func (t *Tracker) SignOut() {
	t.Set(State{})
}

// Subscribe registers fn for future state changes and returns the matching
// unsubscribe. fn is not called with the current state; read Current first
// if the initial value matters.
func (t *Tracker) Subscribe(fn func(State)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.next
	t.next++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}
