package service

import (
	"fmt"
	"sync"
)

// KeyedMutex hands out one mutex per key so check-then-write sequences on
// the same entity are serialized while unrelated entities proceed in
// parallel. Locks are never evicted; the fleet is small and bounded.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) Lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	k.mu.Unlock()
	l.Lock()
}

func (k *KeyedMutex) Unlock(key string) {
	k.mu.Lock()
	l := k.locks[key]
	k.mu.Unlock()
	l.Unlock()
}

func carKey(id int32) string      { return fmt.Sprintf("car:%d", id) }
func customerKey(id int32) string { return fmt.Sprintf("customer:%d", id) }
