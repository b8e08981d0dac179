// Package view tracks the app's navigation state as an explicit,
// serializable object updated through discrete transitions.
package view

import (
	"errors"
	"fmt"
	"sync"
)

type View string

const (
	Landing View = "LANDING"
	Sales   View = "SALES"
	Daily   View = "DAILY"
	Topics  View = "TOPICS"
	Notes   View = "NOTES"
	Chat    View = "CHAT"
)

var ErrUnknownView = errors.New("unknown view")

func (v View) Valid() bool {
	switch v {
	case Landing, Sales, Daily, Topics, Notes, Chat:
		return true
	}
	return false
}

// State is the whole transient UI state: the current screen, the topic being
// read (only meaningful on the reading screen) and the loading flag.
type State struct {
	View        View   `json:"view"`
	ActiveTopic string `json:"active_topic,omitempty"`
	Loading     bool   `json:"loading"`
}

// Tracker guards the state behind discrete transitions.
type Tracker struct {
	mu    sync.RWMutex
	state State
}

func NewTracker() *Tracker {
	return &Tracker{state: State{View: Landing}}
}

func (t *Tracker) Current() State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state
}

// Navigate switches screens. A topic is only carried onto the reading
// screen; any other destination clears it. Navigation always lands with the
// loading flag down.
func (t *Tracker) Navigate(v View, topic string) (State, error) {
	if !v.Valid() {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownView, v)
	}
	if v != Daily {
		topic = ""
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = State{View: v, ActiveTopic: topic}
	return t.state, nil
}

func (t *Tracker) SetLoading(loading bool) State {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state.Loading = loading
	return t.state
}
