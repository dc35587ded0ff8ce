// SPDX-License-Identifier: MIT
package treestore

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// department is a caller-side record read into a Store.
type department struct {
	code, superior, name string
}

func (d department) ItemID() ID { return StringID(d.code) }

func (d department) ParentID() ID {
	if d.superior == "" {
		return Nil
	}
	return StringID(d.superior)
}

func (d department) ItemLabel() string { return d.name }

type panickingBuilder struct{}

func (panickingBuilder) ItemID() ID        { panic("no id") }
func (panickingBuilder) ParentID() ID      { return Nil }
func (panickingBuilder) ItemLabel() string { return "" }

func TestBuildSource_Build(t *testing.T) {
	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		opts    []BuildOption
		wantIDs []ID
		wantErr error
	}{
		{
			name: "valid",
			ctx:  context.Background(),
			opts: []BuildOption{WithBuilders([]Builder{
				department{code: "hq", name: "Headquarters"},
				department{code: "ops", superior: "hq", name: "Operations"},
			})},
			wantIDs: []ID{StringID("hq"), StringID("ops")},
		},
		{
			name:    "items",
			ctx:     context.Background(),
			opts:    []BuildOption{WithItems(mockTree), WithStrict(true)},
			wantIDs: IDs(mockTree),
		},
		{
			name: "missing parent (permissive)",
			ctx:  context.Background(),
			opts: []BuildOption{WithBuilders([]Builder{
				department{code: "ops", superior: "hq"},
			})},
			wantIDs: []ID{StringID("ops")},
		},
		{
			name: "missing parent (strict)",
			ctx:  context.Background(),
			opts: []BuildOption{WithStrict(true), WithBuilders([]Builder{
				department{code: "ops", superior: "hq"},
			})},
			wantErr: ErrLocateParents,
		},
		{
			name: "cycle (strict)",
			ctx:  context.Background(),
			opts: []BuildOption{WithStrict(true), WithBuilders([]Builder{
				department{code: "a", superior: "b"},
				department{code: "b", superior: "a"},
			})},
			wantErr: ErrCycle,
		},
		{
			name:    "empty",
			ctx:     context.Background(),
			wantErr: ErrEmptySource,
		},
		{
			name:    "panic",
			ctx:     context.Background(),
			opts:    []BuildOption{WithBuilders([]Builder{panickingBuilder{}})},
			wantErr: ErrPanicked,
		},
		{
			name:    "canceled",
			ctx:     canceled,
			opts:    []BuildOption{WithItems(mockTree)},
			wantErr: context.Canceled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotS, err := NewBuildSource(tt.opts...).Build(tt.ctx)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("BuildSource.Build() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				if !errors.Is(err, ErrBuildStore) || gotS != nil {
					t.Errorf("BuildSource.Build() = %v, %v, want nil & %v", gotS, err, ErrBuildStore)
				}
				return
			}

			if got := IDs(gotS.All()); !reflect.DeepEqual(got, tt.wantIDs) {
				t.Errorf("BuildSource.Build() = %v, want %v", got, tt.wantIDs)
			}
		})
	}
}

func TestBuildSource_Add(t *testing.T) {
	b := NewBuildSource()
	b.Add(department{code: "hq"}, department{code: "ops", superior: "hq", name: "Operations"})

	if b.Len() != 2 {
		t.Fatalf("BuildSource.Len() = %d, want 2", b.Len())
	}

	s, err := b.Build(context.Background())
	if err != nil {
		t.Fatalf("BuildSource.Build() error = %v", err)
	}

	want := []Item{{ID: StringID("ops"), Parent: StringID("hq"), Label: "Operations"}}
	if got := s.Children(StringID("hq")); !reflect.DeepEqual(got, want) {
		t.Errorf("Store.Children() = %v, want %v", got, want)
	}
}
