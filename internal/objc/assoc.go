package objc

import (
	"fmt"
	"sync"
)

// StateTable attaches out-of-band context to runtime object instances.
// Synthesized classes carry no storage fields, so the token that ties an
// instance back to application state lives in this identity-keyed side
// table instead.
//
// Semantics per (instance, key) pair: set exactly once at creation time,
// read any number of times afterwards, cleared only when the instance is
// destroyed. The table holds a non-owning copy of the token.
type StateTable struct {
	mu      sync.Mutex
	entries map[Handle]map[string]uint64
}

// NewStateTable returns an empty table.
func NewStateTable() *StateTable {
	return &StateTable{entries: make(map[Handle]map[string]uint64)}
}

// Set attaches token to instance under key. Setting the same key twice on
// one instance is a programming error and is rejected.
func (t *StateTable) Set(instance Handle, key string, token uint64) error {
	if !ValidHandle(instance) {
		return fmt.Errorf("objc: invalid instance %#x", uintptr(instance))
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := t.entries[instance]
	if keys == nil {
		keys = make(map[string]uint64)
		t.entries[instance] = keys
	}
	if _, ok := keys[key]; ok {
		return fmt.Errorf("objc: key %q already set on instance %#x", key, uintptr(instance))
	}
	keys[key] = token
	return nil
}

// Get returns the token stored for (instance, key) and whether it was
// present.
func (t *StateTable) Get(instance Handle, key string) (uint64, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys, ok := t.entries[instance]
	if !ok {
		return 0, false
	}
	token, ok := keys[key]
	return token, ok
}

// Clear drops every key attached to instance. Called when the instance is
// destroyed; the tokens themselves are owned by the application.
func (t *StateTable) Clear(instance Handle) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.entries, instance)
}

// Len returns the number of instances with attached state.
func (t *StateTable) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.entries)
}
