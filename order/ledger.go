package order

import (
	"strconv"
	"time"
)

// Status is the lifecycle state of a placed order. Creation always starts at
// StatusCooking; later states exist for an external fulfillment process.
type Status string

const (
	StatusCooking   Status = "Cooking"
	StatusReady     Status = "Ready"
	StatusDelivered Status = "Delivered"
	StatusCancelled Status = "Cancelled"
)

// Order is one ledger entry. ItemName always references an existing catalog
// item and Quantity is never mutated after creation.
type Order struct {
	ID        string    `json:"id"`
	ItemName  string    `json:"item_name"`
	Quantity  int       `json:"quantity"`
	Status    Status    `json:"status"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"created_at"`
}

// Ledger is the in-memory store of placed orders for one conversational
// session. It is owned by a single Service and assumes at most one writer at
// a time; hosting code that serves sessions concurrently must give each
// session its own Ledger.
//
// Identifiers come from a monotonically increasing counter starting at 100,
// so they look like the familiar short order numbers while staying unique for
// the process lifetime (no silent overwrites).
type Ledger struct {
	orders map[string]Order
	ids    []string
	nextID int
	now    func() time.Time
}

func NewLedger() *Ledger {
	return &Ledger{
		orders: make(map[string]Order, 8),
		nextID: 100,
		now:    time.Now,
	}
}

// Insert stores a new order and returns its generated identifier.
func (l *Ledger) Insert(itemName string, quantity int, status Status, total float64) string {
	id := strconv.Itoa(l.nextID)
	l.nextID++

	l.orders[id] = Order{
		ID:        id,
		ItemName:  itemName,
		Quantity:  quantity,
		Status:    status,
		Total:     total,
		CreatedAt: l.now().UTC(),
	}
	l.ids = append(l.ids, id)
	return id
}

// Get returns the order for id, if any.
func (l *Ledger) Get(id string) (Order, bool) {
	o, ok := l.orders[id]
	return o, ok
}

// SetStatus advances the status of an existing order. Returns false when the
// id is unknown.
func (l *Ledger) SetStatus(id string, status Status) bool {
	o, ok := l.orders[id]
	if !ok {
		return false
	}
	o.Status = status
	l.orders[id] = o
	return true
}

// IDs returns all known identifiers in insertion order.
func (l *Ledger) IDs() []string {
	return append([]string(nil), l.ids...)
}

func (l *Ledger) Len() int {
	return len(l.orders)
}
