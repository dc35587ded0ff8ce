// SPDX-License-Identifier: MIT

// Package grid projects a treestore.Store into rows for path-aware data grids.
//
// Each row carries the item, the stringified ids from its root down to itself & whether the
// item groups other rows.
package grid

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"golang.org/x/exp/slices"

	"gitlab.com/fisherprime/treestore"
)

type (
	// Source is the read-only part of the [treestore.Store] API the projection relies on.
	Source interface {
		All() []treestore.Item
		Children(id treestore.ID) []treestore.Item
		AllParents(id treestore.ID) ([]treestore.Item, error)
	}

	// Category classifies a Row.
	Category string

	// Row is a projected Item.
	Row struct {
		treestore.Item

		// Path holds the ids from the root down to the item.
		Path     []string `json:"path"`
		Category Category `json:"category"`
	}

	// Projector computes Rows, sequentially or on a worker pool.
	Projector struct {
		cfg     *treestore.Config
		workers int
	}

	// Option defines the Projector functional option type.
	Option func(*Projector)
)

// Row categories.
const (
	CategoryGroup Category = "Group"
	CategoryItem  Category = "Item"
)

// ErrProject is returned when a row cannot be projected.
var ErrProject = errors.New("failed to project row")

// New instantiates a [Projector].
func New(options ...Option) *Projector {
	p := &Projector{cfg: treestore.DefConfig(), workers: 1}

	for _, opt := range options {
		opt(p)
	}
	if p.cfg == nil {
		p.cfg = treestore.DefConfig()
	}
	p.cfg.Validate()

	return p
}

// WithConfig configures the logger & debug options.
func WithConfig(cfg *treestore.Config) Option {
	return func(p *Projector) { p.cfg = cfg }
}

// WithWorkers configures the size of the worker pool, values below 2 project sequentially.
//
// The Source must not be mutated while projecting.
func WithWorkers(workers int) Option {
	return func(p *Projector) { p.workers = workers }
}

// Project computes a Row for every item of src using a default Projector.
func Project(ctx context.Context, src Source, options ...Option) ([]Row, error) {
	return New(options...).Project(ctx, src)
}

// Project computes a Row for every item of src, following the order of src.All.
func (p *Projector) Project(ctx context.Context, src Source) (rows []Row, err error) {
	items := src.All()
	rows = make([]Row, len(items))

	if p.workers > 1 && len(items) > 1 {
		err = p.projectPool(ctx, src, items, rows)
	} else {
		for index := range items {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}

			if rows[index], err = projectRow(src, items[index]); err != nil {
				return nil, err
			}
		}
	}
	if err != nil {
		return nil, err
	}

	if p.cfg.Debug {
		p.cfg.Logger.Debugf("projected %d rows with %d workers", len(rows), p.workers)
	}

	return
}

// projectPool fills rows on an ants pool, returning the first error encountered.
func (p *Projector) projectPool(ctx context.Context, src Source, items []treestore.Item, rows []Row) (err error) {
	var (
		errOnce sync.Once
		wg      sync.WaitGroup
	)

	poolCtx, poolCancel := context.WithCancel(ctx)
	defer poolCancel()

	setErr := func(e error) {
		errOnce.Do(func() {
			err = e
			poolCancel()
		})
	}

	pool, err := ants.NewPoolWithFunc(p.workers, func(arg interface{}) {
		defer wg.Done()

		index := arg.(int)
		if poolCtx.Err() != nil {
			return
		}

		row, rowErr := projectRow(src, items[index])
		if rowErr != nil {
			setErr(rowErr)
			return
		}
		rows[index] = row
	}, ants.WithLogger(p.cfg.Logger))
	if err != nil {
		return fmt.Errorf("worker pool: %w", err)
	}
	defer pool.Release()

	for index := range items {
		if poolCtx.Err() != nil {
			break
		}

		wg.Add(1)
		if invokeErr := pool.Invoke(index); invokeErr != nil {
			wg.Done()
			setErr(fmt.Errorf("worker pool: %w", invokeErr))
			break
		}
	}
	wg.Wait()

	if err == nil {
		err = ctx.Err()
	}

	return
}

// projectRow computes the Row of a single item.
func projectRow(src Source, item treestore.Item) (row Row, err error) {
	parents, err := src.AllParents(item.ID)
	if err != nil {
		err = fmt.Errorf("%w (%v): %w", ErrProject, item.ID, err)
		return
	}

	// AllParents runs from the item up to its root.
	slices.Reverse(parents)

	path := make([]string, len(parents))
	for index := range parents {
		path[index] = parents[index].ID.String()
	}

	category := CategoryItem
	if len(src.Children(item.ID)) > 0 {
		category = CategoryGroup
	}

	return Row{Item: item, Path: path, Category: category}, nil
}
