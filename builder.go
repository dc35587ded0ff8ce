// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
)

type (
	// Builder defines an interface for entities that can be read into a Store.
	Builder interface {
		// ItemID obtains the entity's id.
		ItemID() ID
		// ParentID obtains the entity's parent id, Nil for roots.
		ParentID() ID
		// ItemLabel obtains the entity's display label.
		ItemLabel() string
	}

	// BuildSource is a wrapper type for []Builder used to generate a Store.
	BuildSource struct {
		cfg *Config

		list   []Builder
		strict bool
	}

	// BuildOption defines the BuildSource functional option type.
	BuildOption func(*BuildSource)
)

// Store building errors.
var (
	ErrBuildStore = errors.New("failed to build store")

	ErrEmptySource   = errors.New("empty build source")
	ErrLocateParents = errors.New("unable to locate parent(s)")

	ErrPanicked = errors.New("recovery from panic")
)

// NewBuildSource instantiates a BuildSource.
func NewBuildSource(options ...BuildOption) *BuildSource {
	b := &BuildSource{cfg: defConfig, list: []Builder{}}

	for _, opt := range options {
		opt(b)
	}
	if b.cfg == nil {
		b.cfg = defConfig
	}
	b.cfg.Validate()

	return b
}

// WithBuilders configures the underlying list.
func WithBuilders(list []Builder) BuildOption {
	return func(b *BuildSource) { b.list = list }
}

// WithItems configures the underlying list from Items.
func WithItems(items []Item) BuildOption {
	return func(b *BuildSource) {
		b.list = make([]Builder, len(items))
		for index := range items {
			b.list[index] = items[index]
		}
	}
}

// WithBuildConfig configures the [Config] shared with the built Store.
func WithBuildConfig(cfg *Config) BuildOption {
	return func(b *BuildSource) { b.cfg = cfg }
}

// WithStrict enables validation of parent references & parent chains.
func WithStrict(strict bool) BuildOption {
	return func(b *BuildSource) { b.strict = strict }
}

// Len retrieves the length of the BuildSource.
func (b *BuildSource) Len() int { return len(b.list) }

// Add appends entities to the BuildSource.
func (b *BuildSource) Add(builders ...Builder) { b.list = append(b.list, builders...) }

// Build generates a Store from the BuildSource.
//
// In strict mode every parent must exist & every item must reach a root.
func (b *BuildSource) Build(ctx context.Context) (s *Store, err error) {
	defer func() {
		if err != nil {
			s, err = nil, fmt.Errorf("%w: %w", ErrBuildStore, err)
		}
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanicked, r)
		}

		// Skip expensive operation if not debug.
		if err != nil && b.cfg.Debug {
			b.cfg.Logger.Debugf("build source: %s", spew.Sdump(b.list))
		}
	}()

	if b.Len() < 1 {
		err = ErrEmptySource
		return
	}

	select {
	case <-ctx.Done():
		err = ctx.Err()
		return
	default:
	}

	items := make([]Item, len(b.list))
	for index, builder := range b.list {
		items[index] = Item{
			ID:     builder.ItemID(),
			Parent: builder.ParentID(),
			Label:  builder.ItemLabel(),
		}
	}
	s = New(items, WithConfig(b.cfg))

	if b.strict {
		err = b.validate(ctx, s)
	}

	return
}

// validate resolves the parent chain of every item, caching the ids known to reach a root.
func (b *BuildSource) validate(ctx context.Context, s *Store) (err error) {
	rooted := make(map[ID]struct{}, s.Len())

	for _, item := range s.All() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, ok := rooted[item.ID]; ok {
			continue
		}

		var parents []Item
		if parents, err = s.AllParents(item.ID); err != nil {
			if errors.Is(err, ErrNotFound) {
				err = fmt.Errorf("%w: %w", ErrLocateParents, err)
			}

			return
		}

		for _, parent := range parents {
			rooted[parent.ID] = struct{}{}
		}
	}

	return
}
