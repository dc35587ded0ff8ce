// SPDX-License-Identifier: MIT
package treestore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

type (
	// ID identifies an Item; it holds either an integer or a string.
	//
	// The zero value is Nil, used as the parent of root items. IDs are comparable & safe to
	// use as map keys; IntID(1) and StringID("1") are distinct.
	ID struct {
		str  string
		num  int64
		kind idKind
	}

	idKind uint8
)

const (
	kindNil idKind = iota
	kindInt
	kindString
)

// Nil is the null ID.
var Nil ID

// ErrInvalidID is returned when decoding an ID from an unsupported JSON value.
var ErrInvalidID = errors.New("invalid id")

// IntID creates an integer ID.
func IntID(n int64) ID { return ID{num: n, kind: kindInt} }

// StringID creates a string ID.
func StringID(s string) ID { return ID{str: s, kind: kindString} }

// ParseID creates an integer ID for base-10 integer input & a string ID otherwise.
func ParseID(s string) ID {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntID(n)
	}

	return StringID(s)
}

// IsNil reports whether the ID is the null ID.
func (id ID) IsNil() bool { return id.kind == kindNil }

// Int retrieves the integer value of an integer ID.
func (id ID) Int() (n int64, ok bool) { return id.num, id.kind == kindInt }

// Str retrieves the string value of a string ID.
func (id ID) Str() (s string, ok bool) { return id.str, id.kind == kindString }

// String renders the ID; Nil renders as an empty string.
func (id ID) String() string {
	switch id.kind {
	case kindInt:
		return strconv.FormatInt(id.num, 10)
	case kindString:
		return id.str
	default:
		return ""
	}
}

// GoString is used by %#v & go-spew style dumps.
func (id ID) GoString() string {
	switch id.kind {
	case kindInt:
		return fmt.Sprintf("treestore.IntID(%d)", id.num)
	case kindString:
		return fmt.Sprintf("treestore.StringID(%q)", id.str)
	default:
		return "treestore.Nil"
	}
}

// MarshalJSON encodes integer IDs as numbers, string IDs as strings & Nil as null.
func (id ID) MarshalJSON() ([]byte, error) {
	switch id.kind {
	case kindInt:
		return []byte(strconv.FormatInt(id.num, 10)), nil
	case kindString:
		return json.Marshal(id.str)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (id *ID) UnmarshalJSON(data []byte) (err error) {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*id = Nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err = json.Unmarshal(data, &s); err != nil {
			return
		}
		*id = StringID(s)
	default:
		var n int64
		if err = json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidID, string(data))
		}
		*id = IntID(n)
	}

	return
}
