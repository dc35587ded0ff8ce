// SPDX-License-Identifier: MIT
package treestore

import "sync"

// SyncStore is a thread-safe [Store].
//
// Queries hold a read lock, mutations a write lock.
type SyncStore struct {
	m     sync.RWMutex
	store *Store
}

// NewSync instantiates a [SyncStore] indexing items.
func NewSync(items []Item, options ...Option) *SyncStore {
	return &SyncStore{store: New(items, options...)}
}

// Synchronized wraps an existing [Store]; the Store must not be used directly afterwards.
func Synchronized(s *Store) *SyncStore { return &SyncStore{store: s} }

// Len is the number of items in the Store.
func (s *SyncStore) Len() int {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.Len()
}

// Has checks for the existence of an item.
func (s *SyncStore) Has(id ID) bool {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.Has(id)
}

// All lists the items in insertion order.
func (s *SyncStore) All() []Item {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.All()
}

// Item retrieves the item identified by id.
func (s *SyncStore) Item(id ID) (Item, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.Item(id)
}

// Children lists the immediate children of id.
func (s *SyncStore) Children(id ID) []Item {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.Children(id)
}

// AllChildren lists all children of id.
func (s *SyncStore) AllChildren(id ID) []Item {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.AllChildren(id)
}

// AllParents lists id's item & its parent chain.
func (s *SyncStore) AllParents(id ID) ([]Item, error) {
	s.m.RLock()
	defer s.m.RUnlock()
	return s.store.AllParents(id)
}

// AddItem inserts item.
func (s *SyncStore) AddItem(item Item) {
	s.m.Lock()
	defer s.m.Unlock()
	s.store.AddItem(item)
}

// UpdateItem replaces item.
func (s *SyncStore) UpdateItem(item Item) {
	s.m.Lock()
	defer s.m.Unlock()
	s.store.UpdateItem(item)
}

// RemoveItem removes the item identified by id & its children.
func (s *SyncStore) RemoveItem(id ID) {
	s.m.Lock()
	defer s.m.Unlock()
	s.store.RemoveItem(id)
}

// Read runs fn with shared access to the underlying Store.
//
// fn must not mutate the Store; use it for multi-step reads such as projections.
func (s *SyncStore) Read(fn func(*Store) error) error {
	s.m.RLock()
	defer s.m.RUnlock()
	return fn(s.store)
}
