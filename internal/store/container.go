package store

import "sync"

// Container holds the current snapshot of a state value and serializes
// updates to it. Consumers receive it by injection; there is no global store.
type Container[S any] struct {
	mu     sync.RWMutex
	state  S
	subs   map[int]chan S
	nextID int
}

// NewContainer creates a container holding initial.
func NewContainer[S any](initial S) *Container[S] {
	return &Container[S]{
		state: initial,
		subs:  make(map[int]chan S),
	}
}

// Snapshot returns the current state.
func (c *Container[S]) Snapshot() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Dispatch applies reducer to the current state and stores the result.
func (c *Container[S]) Dispatch(reducer func(S) S) S {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = reducer(c.state)
	c.notify()
	return c.state
}

// DispatchErr applies a fallible reducer. On error the state is left as it was.
func (c *Container[S]) DispatchErr(reducer func(S) (S, error)) (S, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := reducer(c.state)
	if err != nil {
		return c.state, err
	}
	c.state = next
	c.notify()
	return c.state, nil
}

// Subscribe registers for snapshots published after each successful dispatch.
// Snapshots are dropped for a subscriber whose buffer is full. The returned
// function unsubscribes and closes the channel.
func (c *Container[S]) Subscribe(buffer int) (<-chan S, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextID
	c.nextID++
	ch := make(chan S, buffer)
	c.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			delete(c.subs, id)
			close(ch)
		})
	}
}

// notify must be called with mu held.
func (c *Container[S]) notify() {
	for _, ch := range c.subs {
		select {
		case ch <- c.state:
		default:
		}
	}
}
