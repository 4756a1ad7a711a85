package order

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseErrorKind distinguishes the two ways an order utterance can fail.
type ParseErrorKind string

const (
	KindInvalidFormat ParseErrorKind = "invalid_format"
	KindItemNotFound  ParseErrorKind = "item_not_found"
)

// ParseError is the typed parse failure. AttemptedName is only set for
// KindItemNotFound and carries the item text as the user wrote it.
type ParseError struct {
	Kind          ParseErrorKind
	AttemptedName string
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case KindItemNotFound:
		return fmt.Sprintf("item %q is not on the menu", e.AttemptedName)
	default:
		return "utterance does not match 'Item, Quantidade'"
	}
}

// ParsedOrder is a validated (item, quantity) pair. ItemName is the canonical
// catalog name, not the raw user text.
type ParsedOrder struct {
	ItemName string
	Quantity int
}

// Parse turns a free-text order utterance into a ParsedOrder.
//
// Shape is "<item>[, <quantity>]": without a comma the quantity defaults to 1,
// with more than one comma the utterance is rejected. A single leading "x " or
// "X " is stripped from the item so inline multipliers like "2x Burger" still
// resolve. Quantity is parsed as a base-10 integer and is NOT validated for
// positivity; zero and negative quantities propagate unchanged.
func Parse(utterance string, catalog *Catalog) (ParsedOrder, error) {
	rawItem := utterance
	rawQty := "1"

	if strings.Contains(utterance, ",") {
		fields := strings.Split(utterance, ",")
		if len(fields) != 2 {
			return ParsedOrder{}, &ParseError{Kind: KindInvalidFormat}
		}
		rawItem, rawQty = fields[0], fields[1]
	}

	rawItem = strings.TrimSpace(rawItem)
	rawItem = stripQuantityPrefix(rawItem)

	qty, err := strconv.Atoi(strings.TrimSpace(rawQty))
	if err != nil {
		return ParsedOrder{}, &ParseError{Kind: KindInvalidFormat}
	}

	item, ok := catalog.Lookup(rawItem)
	if !ok {
		return ParsedOrder{}, &ParseError{Kind: KindItemNotFound, AttemptedName: rawItem}
	}

	return ParsedOrder{ItemName: item.Name, Quantity: qty}, nil
}

// stripQuantityPrefix removes one leading "x " or "X " token.
func stripQuantityPrefix(item string) string {
	if strings.HasPrefix(item, "x ") || strings.HasPrefix(item, "X ") {
		return item[2:]
	}
	return item
}
