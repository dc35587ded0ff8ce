// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/treestore/lexer"
)

// ErrUnserializableID is returned when an id cannot be expressed in the topology notation.
var ErrUnserializableID = errors.New("id cannot be serialized")

// Serialize transforms the topology of the Store into a string.
//
// Each root is written in Roots order as its id, its serialized children & an end marker;
// children follow the Children order. Labels are not serialized, neither are items
// unreachable from a root. String ids that look like integers come back as integer ids.
func (s *Store) Serialize(ctx context.Context, cfg *lexer.Config) (output string, err error) {
	if cfg == nil {
		cfg = lexer.DefaultConfig()
	}
	cfg.Validate()

	for _, id := range s.order {
		if value := id.String(); !lexer.IsValue(value) ||
			strings.ContainsRune(value, cfg.Splitter) || strings.ContainsRune(value, cfg.EndMarker) {
			return "", fmt.Errorf("(%#v) %w", id, ErrUnserializableID)
		}
	}

	serCtx, serCancel := context.WithCancel(ctx)
	defer serCancel()

	serChan := make(chan string)
	go func() {
		defer close(serChan)

		for _, root := range s.Roots() {
			if !s.serialize(serCtx, cfg, root.ID, serChan) {
				return
			}
		}
	}()

	var buffer strings.Builder
	endMarker := string(cfg.EndMarker)

	for value := range serChan {
		if buffer.Len() > 0 && value != endMarker {
			buffer.WriteRune(cfg.Splitter)
		}
		buffer.WriteString(value)
	}

	if err = ctx.Err(); err != nil {
		return "", err
	}
	output = buffer.String()

	if cfg.Debug {
		cfg.Logger.Debugf("serialized %d items: %s", s.Len(), output)
	}

	return
}

// serialize performs the serialization grunt work, reporting false on cancellation.
func (s *Store) serialize(ctx context.Context, cfg *lexer.Config, id ID, serChan chan<- string) bool {
	select {
	case <-ctx.Done():
		return false
	case serChan <- id.String():
	}

	for _, child := range s.children[id] {
		if !s.serialize(ctx, cfg, child, serChan) {
			return false
		}
	}

	select {
	case <-ctx.Done():
		return false
	case serChan <- string(cfg.EndMarker):
	}

	return true
}
