package session

import "sync"

// Event describes one login/logout transition
type Event struct {
	Kind     Kind
	LoggedIn bool
	Version  uint64
}

// AuthState holds the logged-in flags of one browser and the auth state
// version, a counter bumped on every transition. Subscribers are called
// synchronously, in subscription order, after the state is updated.
type AuthState struct {
	mu       sync.Mutex
	version  uint64
	loggedIn map[Kind]bool
	subs     map[int]func(Event)
	order    []int
	nextID   int
}

// NewAuthState creates a logged-out state at version 0
func NewAuthState() *AuthState {
	return &AuthState{
		loggedIn: make(map[Kind]bool),
		subs:     make(map[int]func(Event)),
	}
}

// Version returns the current auth state version
func (a *AuthState) Version() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.version
}

// LoggedIn returns the flag for kind
func (a *AuthState) LoggedIn(kind Kind) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loggedIn[kind]
}

// Login flips the flag for kind on and bumps the version
func (a *AuthState) Login(kind Kind) Event {
	return a.transition(kind, true)
}

// Logout flips the flag for kind off and bumps the version
func (a *AuthState) Logout(kind Kind) Event {
	return a.transition(kind, false)
}

// Restore marks kind as logged in without bumping the version.
// Used when a session is picked up with a token already present.
func (a *AuthState) Restore(kind Kind) {
	a.mu.Lock()
	a.loggedIn[kind] = true
	a.mu.Unlock()
}

func (a *AuthState) transition(kind Kind, loggedIn bool) Event {
	a.mu.Lock()
	a.version++
	a.loggedIn[kind] = loggedIn
	ev := Event{Kind: kind, LoggedIn: loggedIn, Version: a.version}
	subs := make([]func(Event), 0, len(a.order))
	for _, id := range a.order {
		subs = append(subs, a.subs[id])
	}
	a.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
	return ev
}

// Subscribe registers fn for every future transition and returns a func that removes it
func (a *AuthState) Subscribe(fn func(Event)) (unsubscribe func()) {
	a.mu.Lock()
	id := a.nextID
	a.nextID++
	a.subs[id] = fn
	a.order = append(a.order, id)
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			delete(a.subs, id)
			for i, v := range a.order {
				if v == id {
					a.order = append(a.order[:i], a.order[i+1:]...)
					break
				}
			}
		})
	}
}
