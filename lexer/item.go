// SPDX-License-Identifier: MIT
package lexer

type (
	// ItemID identifies the kind of a lexed Item.
	ItemID int

	// Item is a token lexed from the topology notation.
	Item struct {
		Err error
		Val string // The lexed text, an id for ItemValue.
		ID  ItemID
	}
)

const (
	_             = iota // Consume 0 to start actual numbering at 1.
	ItemError            // Lexing failed, see Item.Err.
	ItemSplitter         // Separates values.
	ItemEOF              // End of the source.
	ItemValue            // An item id.
	ItemEndMarker        // Closes the children of the last open value.
)

// String names the ItemID.
func (i ItemID) String() string {
	switch i {
	case ItemError:
		return "error"
	case ItemSplitter:
		return "splitter"
	case ItemEOF:
		return "eof"
	case ItemValue:
		return "value"
	case ItemEndMarker:
		return "end marker"
	default:
		return "unknown"
	}
}
