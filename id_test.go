// SPDX-License-Identifier: MIT
package treestore

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input string
		want  ID
	}{
		{input: "1", want: IntID(1)},
		{input: "-12", want: IntID(-12)},
		{input: "91064cee", want: StringID("91064cee")},
		{input: "", want: StringID("")},
		{input: "1.5", want: StringID("1.5")},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseID(tt.input); got != tt.want {
				t.Errorf("ParseID() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestID_String(t *testing.T) {
	tests := []struct {
		name string
		id   ID
		want string
	}{
		{name: "int", id: IntID(42), want: "42"},
		{name: "string", id: StringID("91064cee"), want: "91064cee"},
		{name: "nil", id: Nil, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.String(); got != tt.want {
				t.Errorf("ID.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestID_distinctKinds(t *testing.T) {
	if IntID(1) == StringID("1") {
		t.Error("IntID(1) == StringID(\"1\"), want distinct ids")
	}
	if !Nil.IsNil() || IntID(0).IsNil() || StringID("").IsNil() {
		t.Error("ID.IsNil() only holds for Nil")
	}
	if n, ok := IntID(7).Int(); !ok || n != 7 {
		t.Errorf("ID.Int() = %d, %v, want 7, true", n, ok)
	}
	if _, ok := StringID("7").Int(); ok {
		t.Error("ID.Int() ok for a string id")
	}
	if s, ok := StringID("a").Str(); !ok || s != "a" {
		t.Errorf("ID.Str() = %q, %v, want a, true", s, ok)
	}
}

func TestItem_JSON(t *testing.T) {
	items := []Item{
		{ID: IntID(1), Parent: Nil, Label: "Item 1"},
		{ID: StringID("91064cee"), Parent: IntID(1), Label: "Item 2"},
		{ID: IntID(4), Parent: StringID("91064cee"), Label: "Item 4"},
	}
	want := `[{"id":1,"parent":null,"label":"Item 1"},` +
		`{"id":"91064cee","parent":1,"label":"Item 2"},` +
		`{"id":4,"parent":"91064cee","label":"Item 4"}]`

	data, err := json.Marshal(items)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != want {
		t.Errorf("json.Marshal() = %s, want %s", data, want)
	}

	var got []Item
	if err = json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !reflect.DeepEqual(got, items) {
		t.Errorf("json.Unmarshal() = %v, want %v", got, items)
	}
}

func TestID_UnmarshalJSON_invalid(t *testing.T) {
	var id ID
	if err := json.Unmarshal([]byte(`true`), &id); !errors.Is(err, ErrInvalidID) {
		t.Errorf("ID.UnmarshalJSON() error = %v, want %v", err, ErrInvalidID)
	}
}
