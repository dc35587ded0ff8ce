// SPDX-License-Identifier: MIT
package treestore

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type (
	// Store holds Items & two indices derived from them: one by id & one by parent id.
	//
	// The indices are kept consistent by every mutation. Synchronization is left to the caller,
	// see SyncStore.
	Store struct {
		// cfg contains a pointer to a [Config], possibly shared with other components.
		cfg *Config

		// order holds the ids in insertion order.
		order []ID

		// items is the identity index.
		items map[ID]Item

		// children maps a parent id to the ids of its children in insertion order.
		//
		// An absent entry means no children.
		children map[ID][]ID
	}

	// Config defines configuration options for the [Store], [BuildSource] & the projector.
	Config struct {
		// Logger for Store messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool
	}

	// Option defines the Store functional option type.
	Option func(*Store)
)

// Errors encountered when querying a Store.
var (
	ErrNotFound = errors.New("record does not exist")
	ErrCycle    = errors.New("parent chain is cyclic")
)

var defConfig = DefConfig()

// DefConfig obtains the package's default [Config].
func DefConfig() *Config {
	return &Config{
		Logger: logrus.New(),
		Debug:  false,
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
}

// WithConfig configures the [Store] [Config].
func WithConfig(cfg *Config) Option {
	return func(s *Store) { s.cfg = cfg }
}

// New instantiates a [Store] indexing items.
//
// Where an id repeats, the first occurrence fixes the position & the last one the record.
func New(items []Item, options ...Option) *Store {
	s := &Store{
		cfg:      defConfig,
		order:    make([]ID, 0, len(items)),
		items:    make(map[ID]Item, len(items)),
		children: make(map[ID][]ID),
	}

	for _, opt := range options {
		opt(s)
	}
	if s.cfg == nil {
		s.cfg = defConfig
	}
	s.cfg.Validate()

	for _, item := range items {
		if _, ok := s.items[item.ID]; !ok {
			s.order = append(s.order, item.ID)
		}
		s.items[item.ID] = item
	}

	for _, id := range s.order {
		if parent := s.items[id].Parent; !parent.IsNil() {
			s.children[parent] = append(s.children[parent], id)
		}
	}

	if s.cfg.Debug {
		s.cfg.Logger.Debugf("indexed %d items, children: %s", len(s.order), spew.Sdump(s.children))
	}

	return s
}

// Config retrieves the [Store]'s Config.
func (s *Store) Config() *Config { return s.cfg }

// Len is the number of items in the Store.
func (s *Store) Len() int { return len(s.order) }

// Has checks for the existence of an item.
func (s *Store) Has(id ID) (ok bool) {
	_, ok = s.items[id]
	return
}

// All lists the items in insertion order.
func (s *Store) All() (items []Item) {
	items = make([]Item, len(s.order))
	for index, id := range s.order {
		items[index] = s.items[id]
	}

	return
}

// Item retrieves the item identified by id.
func (s *Store) Item(id ID) (item Item, err error) {
	item, ok := s.items[id]
	if !ok {
		err = fmt.Errorf("(%v) %w", id, ErrNotFound)
	}

	return
}

// Children lists the immediate children of id.
//
// Unknown ids & leaves yield an empty list.
func (s *Store) Children(id ID) []Item { return s.resolve(s.children[id]) }

// AllChildren lists the immediate & children-of children of id, excluding id itself.
//
// The walk is depth-first; callers should not rely on the order.
func (s *Store) AllChildren(id ID) (children []Item) {
	children = make([]Item, 0)
	visited := map[ID]struct{}{id: {}}

	stack := slices.Clone(s.children[id])
	for len(stack) > 0 {
		var current ID
		current, stack = stack[len(stack)-1], stack[:len(stack)-1]

		if _, ok := visited[current]; ok {
			if s.cfg.Debug {
				s.cfg.Logger.Debugf("(%v) revisited below (%v), skipping", current, id)
			}
			continue
		}
		visited[current] = struct{}{}

		children = append(children, s.items[current])
		stack = append(stack, s.children[current]...)
	}

	return
}

// AllChildrenByLevel lists the children of id grouped by depth, nearest level first.
func (s *Store) AllChildrenByLevel(id ID) (levels [][]Item) {
	levels = make([][]Item, 0)
	visited := map[ID]struct{}{id: {}}

	queue := s.children[id]
	for len(queue) > 0 {
		var (
			peers []Item
			next  []ID
		)

		for _, current := range queue {
			if _, ok := visited[current]; ok {
				continue
			}
			visited[current] = struct{}{}

			peers = append(peers, s.items[current])
			next = append(next, s.children[current]...)
		}

		if len(peers) > 0 {
			levels = append(levels, peers)
		}
		queue = next
	}

	return
}

// AllParents lists id's item followed by its parent, grandparent & so on up to the root.
//
// Fails with ErrNotFound if id or an item on its parent chain is absent & with ErrCycle if the
// chain loops.
func (s *Store) AllParents(id ID) (parents []Item, err error) {
	current, err := s.Item(id)
	if err != nil {
		return
	}

	parents = []Item{current}
	seen := map[ID]struct{}{current.ID: {}}

	for !current.Parent.IsNil() {
		parentID := current.Parent
		if _, ok := seen[parentID]; ok {
			return nil, fmt.Errorf("(%v) %w through (%v)", id, ErrCycle, parentID)
		}

		if current, err = s.Item(parentID); err != nil {
			return nil, fmt.Errorf("parent of (%v): %w", parents[len(parents)-1].ID, err)
		}
		seen[parentID] = struct{}{}

		parents = append(parents, current)
	}

	return
}

// Roots lists the items lacking a parent in insertion order.
func (s *Store) Roots() (roots []Item) {
	roots = make([]Item, 0)
	for _, id := range s.order {
		if item := s.items[id]; item.IsRoot() {
			roots = append(roots, item)
		}
	}

	return
}

// Leaves lists the items lacking children in insertion order.
func (s *Store) Leaves() (leaves []Item) {
	leaves = make([]Item, 0)
	for _, id := range s.order {
		if len(s.children[id]) < 1 {
			leaves = append(leaves, s.items[id])
		}
	}

	return
}

// AddItem inserts item, overwriting any item sharing its id.
//
// An overwritten item is first detached from its previous parent, re-adding an item never
// duplicates it in a children list.
func (s *Store) AddItem(item Item) {
	if prev, ok := s.items[item.ID]; ok {
		s.detach(prev.Parent, item.ID)
	} else {
		s.order = append(s.order, item.ID)
	}

	s.items[item.ID] = item
	s.attach(item.Parent, item.ID)
}

// UpdateItem replaces an item, moving it between children lists when its parent changes.
//
// An unknown item is added.
func (s *Store) UpdateItem(item Item) {
	prev, ok := s.items[item.ID]
	if !ok {
		s.AddItem(item)
		return
	}

	if prev.Parent != item.Parent {
		s.detach(prev.Parent, item.ID)
		s.attach(item.Parent, item.ID)
	}
	s.items[item.ID] = item
}

// RemoveItem removes an item together with all of its children.
//
// Removing an unknown id is a no-op.
func (s *Store) RemoveItem(id ID) {
	item, ok := s.items[id]
	if !ok {
		return
	}

	removed := map[ID]struct{}{id: {}}
	for _, child := range s.AllChildren(id) {
		removed[child.ID] = struct{}{}
	}
	isRemoved := func(candidate ID) (ok bool) {
		_, ok = removed[candidate]
		return
	}

	s.detachFunc(item.Parent, isRemoved)
	for removedID := range removed {
		delete(s.children, removedID)
		delete(s.items, removedID)
	}
	s.order = slices.DeleteFunc(s.order, isRemoved)

	if s.cfg.Debug {
		s.cfg.Logger.Debugf("removed (%v) & %d children", id, len(removed)-1)
	}
}

// attach appends id to the children of parent.
func (s *Store) attach(parent, id ID) {
	if parent.IsNil() {
		return
	}
	s.children[parent] = append(s.children[parent], id)
}

// detach removes id from the children of parent.
func (s *Store) detach(parent, id ID) {
	s.detachFunc(parent, func(child ID) bool { return child == id })
}

func (s *Store) detachFunc(parent ID, del func(ID) bool) {
	list, ok := s.children[parent]
	if parent.IsNil() || !ok {
		return
	}

	if list = slices.DeleteFunc(list, del); len(list) < 1 {
		delete(s.children, parent)
		return
	}
	s.children[parent] = list
}

// resolve maps ids to their items.
func (s *Store) resolve(ids []ID) (items []Item) {
	items = make([]Item, len(ids))
	for index, id := range ids {
		items[index] = s.items[id]
	}

	return
}
