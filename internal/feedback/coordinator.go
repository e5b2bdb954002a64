package feedback

import (
	"errors"
	"sync"
)

// Action identifies a kind of user-initiated mutation.
type Action string

const (
	ActionList          Action = "list"
	ActionCreate        Action = "create"
	ActionEdit          Action = "edit"
	ActionDelete        Action = "delete"
	ActionLike          Action = "like"
	ActionCommentAdd    Action = "comment_add"
	ActionCommentDelete Action = "comment_delete"
)

// State is the lifecycle of a single (entity, action) pair.
type State string

const (
	StateIdle      State = "idle"
	StatePending   State = "pending"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// ErrActionPending is returned when the same action on the same entity
// is dispatched while one is still outstanding. No request is issued.
var ErrActionPending = errors.New("action already in progress")

type gateKey struct {
	entityID string
	action   Action
}

// Coordinator tracks a per-entity, per-action state machine so a
// single control cannot be invoked twice concurrently for the same
// entity. Gates are independent per entity and per action: a like and
// a delete on the same entry may run concurrently, two likes may not.
type Coordinator struct {
	mu     sync.Mutex
	states map[gateKey]State
}

func NewCoordinator() *Coordinator {
	return &Coordinator{
		states: make(map[gateKey]State),
	}
}

// State returns the current state of the gate, StateIdle when the pair
// was never dispatched.
func (c *Coordinator) State(entityID string, action Action) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.states[gateKey{entityID, action}]; ok {
		return s
	}
	return StateIdle
}

// Busy reports whether the gate is pending.
func (c *Coordinator) Busy(entityID string, action Action) bool {
	return c.State(entityID, action) == StatePending
}

// Run executes fn behind the gate for (entityID, action). If the gate
// is already pending, fn is not called and ErrActionPending is
// returned. The gate always leaves pending when fn returns, moving to
// succeeded or failed with fn's outcome.
func (c *Coordinator) Run(entityID string, action Action, fn func() error) error {
	key := gateKey{entityID, action}

	c.mu.Lock()
	if c.states[key] == StatePending {
		c.mu.Unlock()
		return ErrActionPending
	}
	c.states[key] = StatePending
	c.mu.Unlock()

	var err error
	completed := false
	defer func() {
		c.mu.Lock()
		if !completed || err != nil {
			c.states[key] = StateFailed
		} else {
			c.states[key] = StateSucceeded
		}
		c.mu.Unlock()
	}()

	err = fn()
	completed = true
	return err
}

// Forget drops all gates for an entity, e.g. after it is removed from
// the local collection.
func (c *Coordinator) Forget(entityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.states {
		if key.entityID == entityID {
			delete(c.states, key)
		}
	}
}
