package order

import (
	"fmt"
	"strings"
)

// MenuItem is a single orderable entry. Name is the canonical, case-sensitive
// form used everywhere else in the order flow.
type MenuItem struct {
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
}

// Catalog is the fixed menu. Items keep their declaration order because
// Lookup resolves by first match; callers that care about match precedence
// control it through ordering.
type Catalog struct {
	items []MenuItem
}

func NewCatalog(items ...MenuItem) *Catalog {
	return &Catalog{items: append([]MenuItem(nil), items...)}
}

// DefaultCatalog returns the concierge menu.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		MenuItem{Name: "X-Burger", UnitPrice: 25.00},
		MenuItem{Name: "Pizza", UnitPrice: 45.00},
		MenuItem{Name: "Refrigerante", UnitPrice: 8.00},
		MenuItem{Name: "Açaí", UnitPrice: 18.00},
	)
}

// Lookup finds the first item whose lower-cased name appears as a substring
// of the lower-cased candidate. The match is intentionally permissive: a
// candidate like "burger combo" resolves to "X-Burger" only if no earlier
// item matches first, and overlapping names can shadow each other. Callers
// accept that imprecision.
func (c *Catalog) Lookup(candidate string) (MenuItem, bool) {
	if c == nil {
		return MenuItem{}, false
	}
	lowered := strings.ToLower(candidate)
	for _, item := range c.items {
		if strings.Contains(lowered, strings.ToLower(item.Name)) {
			return item, true
		}
	}
	return MenuItem{}, false
}

// All returns the items in catalog order.
func (c *Catalog) All() []MenuItem {
	if c == nil {
		return nil
	}
	return append([]MenuItem(nil), c.items...)
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// String renders a human-readable listing, one item per line.
func (c *Catalog) String() string {
	if c == nil || len(c.items) == 0 {
		return "(cardápio vazio)"
	}
	var b strings.Builder
	for i, item := range c.items {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: R$ %.2f", item.Name, item.UnitPrice)
	}
	return b.String()
}
