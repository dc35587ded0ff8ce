// SPDX-License-Identifier: MIT

// Package itemfile decodes item lists from YAML or JSON documents.
//
// A document is a sequence of records with the keys id, parent & label:
//
//	- id: 1
//	  label: Item 1
//	- id: 91064cee
//	  parent: 1
//
// Integer scalars become integer ids, other string scalars string ids; a missing or null
// parent marks a root. JSON documents are accepted as the YAML subset they are.
package itemfile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"gitlab.com/fisherprime/treestore"
)

type (
	record struct {
		ID     yaml.Node `yaml:"id"`
		Parent yaml.Node `yaml:"parent"`
		Label  string    `yaml:"label"`
	}

	// outRecord holds the encoded form of an item; ids are int64, string or nil.
	outRecord struct {
		ID     interface{} `yaml:"id"`
		Parent interface{} `yaml:"parent,omitempty"`
		Label  string      `yaml:"label,omitempty"`
	}
)

var (
	ErrMissingID = errors.New("record lacks an id")
	ErrInvalidID = errors.New("unsupported id value")
)

// LoadFile reads the items held in the file at path.
func LoadFile(path string) ([]treestore.Item, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open item file: %w", err)
	}
	defer f.Close()

	items, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return items, nil
}

// Load decodes the items held in a YAML or JSON document, preserving their order.
//
// Unknown record keys are rejected. An empty document yields no items.
func Load(r io.Reader) (items []treestore.Item, err error) {
	var records []record

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err = decoder.Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to parse item file: %w", err)
	}

	items = make([]treestore.Item, 0, len(records))
	for index := range records {
		rec := &records[index]

		if isAbsent(&rec.ID) {
			return nil, fmt.Errorf("record %d: %w", index, ErrMissingID)
		}

		var item treestore.Item
		if item.ID, err = decodeID(&rec.ID); err != nil {
			return nil, fmt.Errorf("record %d id: %w", index, err)
		}
		if item.Parent, err = decodeID(&rec.Parent); err != nil {
			return nil, fmt.Errorf("record %d parent: %w", index, err)
		}
		item.Label = rec.Label

		items = append(items, item)
	}

	return
}

func isAbsent(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

func decodeID(node *yaml.Node) (treestore.ID, error) {
	if isAbsent(node) {
		return treestore.Nil, nil
	}
	if node.Kind != yaml.ScalarNode {
		return treestore.Nil, fmt.Errorf("%w at line %d: not a scalar", ErrInvalidID, node.Line)
	}

	switch node.ShortTag() {
	case "!!int":
		var n int64
		if err := node.Decode(&n); err != nil {
			return treestore.Nil, fmt.Errorf("%w at line %d: %w", ErrInvalidID, node.Line, err)
		}
		return treestore.IntID(n), nil
	case "!!str":
		return treestore.StringID(node.Value), nil
	default:
		return treestore.Nil, fmt.Errorf("%w at line %d: %s %s", ErrInvalidID, node.Line, node.ShortTag(), strconv.Quote(node.Value))
	}
}

// Write encodes items as a YAML document Load can read back.
func Write(w io.Writer, items []treestore.Item) (err error) {
	records := make([]outRecord, len(items))
	for index, item := range items {
		records[index] = outRecord{ID: encodeID(item.ID), Parent: encodeID(item.Parent), Label: item.Label}
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err = encoder.Encode(records); err != nil {
		return fmt.Errorf("failed to encode items: %w", err)
	}

	return encoder.Close()
}

func encodeID(id treestore.ID) interface{} {
	if n, ok := id.Int(); ok {
		return n
	}
	if s, ok := id.Str(); ok {
		return s
	}

	return nil
}
