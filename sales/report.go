package sales

import (
	"fmt"
	"sort"
	"strings"
)

// Report answers the aggregate questions the analyst tools expose. It is
// computed once from the loaded sheet and read-only after that, so it can be
// shared across sessions without locking.
type Report struct {
	sales []Sale
}

func NewReport(sales []Sale) *Report {
	return &Report{sales: append([]Sale(nil), sales...)}
}

func (r *Report) Rows() int {
	return len(r.sales)
}

func (r *Report) TotalQuantity() int {
	total := 0
	for _, s := range r.sales {
		total += s.Quantity
	}
	return total
}

func (r *Report) TotalRevenue() float64 {
	total := 0.0
	for _, s := range r.sales {
		total += s.Revenue()
	}
	return total
}

// CategoryRevenue is one row of the by-category breakdown.
type CategoryRevenue struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// ByCategory groups revenue per category, highest revenue first. Ties break
// alphabetically so the ordering is stable.
func (r *Report) ByCategory() []CategoryRevenue {
	byCat := make(map[string]*CategoryRevenue)
	for _, s := range r.sales {
		row, ok := byCat[s.Category]
		if !ok {
			row = &CategoryRevenue{Category: s.Category}
			byCat[s.Category] = row
		}
		row.Quantity += s.Quantity
		row.Revenue += s.Revenue()
	}

	rows := make([]CategoryRevenue, 0, len(byCat))
	for _, row := range byCat {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].Category < rows[j].Category
	})
	return rows
}

// ProductRevenue is one row of the top-products ranking.
type ProductRevenue struct {
	Product  string  `json:"product"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// TopProducts ranks products by revenue and returns at most limit rows.
// limit <= 0 means no cap.
func (r *Report) TopProducts(limit int) []ProductRevenue {
	byProduct := make(map[string]*ProductRevenue)
	for _, s := range r.sales {
		row, ok := byProduct[s.Product]
		if !ok {
			row = &ProductRevenue{Product: s.Product}
			byProduct[s.Product] = row
		}
		row.Quantity += s.Quantity
		row.Revenue += s.Revenue()
	}

	rows := make([]ProductRevenue, 0, len(byProduct))
	for _, row := range byProduct {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Revenue != rows[j].Revenue {
			return rows[i].Revenue > rows[j].Revenue
		}
		return rows[i].Product < rows[j].Product
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}

// Summary renders the headline numbers for the vendas.resumo tool.
func (r *Report) Summary() string {
	return fmt.Sprintf("%d registros, %d itens vendidos, faturamento total R$ %.2f",
		r.Rows(), r.TotalQuantity(), r.TotalRevenue())
}

// CategoryTable renders the by-category breakdown, one line per category.
func (r *Report) CategoryTable() string {
	rows := r.ByCategory()
	if len(rows) == 0 {
		return "(sem vendas)"
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s: %d itens, R$ %.2f", row.Category, row.Quantity, row.Revenue)
	}
	return b.String()
}

// ProductTable renders the top-products ranking, one line per product.
func (r *Report) ProductTable(limit int) string {
	rows := r.TopProducts(limit)
	if len(rows) == 0 {
		return "(sem vendas)"
	}
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s: %d itens, R$ %.2f", i+1, row.Product, row.Quantity, row.Revenue)
	}
	return b.String()
}
