// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"errors"
	"fmt"

	"gitlab.com/fisherprime/treestore/lexer"
)

type (
	// decoder rebuilds items from lexed topology notation.
	decoder struct {
		lexer *lexer.Lexer
		items []Item
	}

	decodeState int
)

const (
	// stateValue marks a fully decoded value.
	stateValue decodeState = iota
	// stateEnd marks a consumed end marker.
	stateEnd
	// stateEOF marks the end of the source.
	stateEOF
)

// Deserialization errors.
var (
	ErrInvalidSource       = errors.New("invalid deserialization source")
	ErrExcessiveValues     = errors.New("the deserialization source has excessive values")
	ErrExcessiveEndMarkers = errors.New("the deserialization source has excessive end markers")
)

// Deserialize transforms a serialized topology into Items, parents preceding their children.
//
// Ids are read with ParseID, labels are left empty. Pass the result to New to index it.
func Deserialize(ctx context.Context, opts ...lexer.Option) (items []Item, err error) {
	l := lexer.New(opts...)
	go l.Lex(ctx)
	defer func() { go l.Drain() }()

	d := &decoder{lexer: l}
	for {
		var state decodeState
		if state, err = d.decode(ctx, Nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
		}

		if state == stateEnd {
			return nil, fmt.Errorf("%w: %s after %d values", ErrExcessiveEndMarkers, string(l.EndMarker()), len(d.items))
		}
		if state == stateEOF {
			break
		}
	}

	if diff := l.ValueCounter() - l.EndCounter(); diff > 0 {
		return nil, fmt.Errorf("%w: +%d", ErrExcessiveValues, diff)
	}

	l.Logger().Debugf("deserialized %d items", len(d.items))

	return d.items, nil
}

// decode consumes a value & its children, an end marker or the end of the source.
func (d *decoder) decode(ctx context.Context, parent ID) (state decodeState, err error) {
	for {
		select {
		case <-ctx.Done():
			return stateEOF, ctx.Err()
		default:
		}

		item, proceed := d.lexer.Item()
		if !proceed {
			return stateEOF, nil
		}

		switch item.ID {
		case lexer.ItemEOF:
			return stateEOF, nil
		case lexer.ItemError:
			return stateEOF, item.Err
		case lexer.ItemEndMarker:
			return stateEnd, nil
		case lexer.ItemSplitter:
			continue
		}

		id := ParseID(item.Val)
		d.items = append(d.items, Item{ID: id, Parent: parent})

		for {
			if state, err = d.decode(ctx, id); err != nil || state == stateEOF {
				return
			}

			// The end marker closing this value's children.
			if state == stateEnd {
				return stateValue, nil
			}
		}
	}
}
