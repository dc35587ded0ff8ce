// SPDX-License-Identifier: MIT
package treestore

import "fmt"

// Item is a record held by a Store.
//
// A Nil Parent marks a root item. The Parent is not required to exist in the Store.
type Item struct {
	ID     ID     `json:"id" yaml:"id"`
	Parent ID     `json:"parent" yaml:"parent"`
	Label  string `json:"label" yaml:"label"`
}

// IsRoot reports whether the Item lacks a parent.
func (i Item) IsRoot() bool { return i.Parent.IsNil() }

// String renders the Item as `id(parent): label`.
func (i Item) String() string { return fmt.Sprintf("%v(%v): %s", i.ID, i.Parent, i.Label) }

// ItemID implements Builder.
func (i Item) ItemID() ID { return i.ID }

// ParentID implements Builder.
func (i Item) ParentID() ID { return i.Parent }

// ItemLabel implements Builder.
func (i Item) ItemLabel() string { return i.Label }

// IDs lists the identifiers of some items, preserving their order.
func IDs(items []Item) (ids []ID) {
	ids = make([]ID, len(items))
	for index := range items {
		ids[index] = items[index].ID
	}

	return
}
