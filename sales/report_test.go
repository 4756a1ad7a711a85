package sales

import (
	"errors"
	"strings"
	"testing"
)

const sheet = `produto,categoria,quantidade,preco_unitario
Pizza,comida,10,45.00
X-Burger,comida,8,25.00
Refrigerante,bebida,20,8.00
Açaí,sobremesa,5,18.00
`

func testReport(t *testing.T) *Report {
	t.Helper()
	sales, err := Read(strings.NewReader(sheet))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	return NewReport(sales)
}

func TestReadParsesAllRows(t *testing.T) {
	t.Parallel()

	sales, err := Read(strings.NewReader(sheet))
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if len(sales) != 4 {
		t.Fatalf("len = %d, want 4", len(sales))
	}
	if sales[0].Product != "Pizza" || sales[0].Quantity != 10 || sales[0].UnitPrice != 45.00 {
		t.Fatalf("unexpected first row: %+v", sales[0])
	}
}

func TestReadRejectsBadHeader(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader("name,price\nPizza,45\n"))
	if err == nil {
		t.Fatal("Read() accepted a wrong header")
	}
}

func TestReadRejectsMalformedRow(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader("produto,categoria,quantidade,preco_unitario\nPizza,comida,dez,45.00\n"))
	if err == nil {
		t.Fatal("Read() accepted non-numeric quantity")
	}
}

func TestReadEmptyDataset(t *testing.T) {
	t.Parallel()

	_, err := Read(strings.NewReader("produto,categoria,quantidade,preco_unitario\n"))
	if !errors.Is(err, ErrEmptyDataset) {
		t.Fatalf("Read() error = %v, want ErrEmptyDataset", err)
	}
}

func TestTotals(t *testing.T) {
	t.Parallel()

	r := testReport(t)
	// 10*45 + 8*25 + 20*8 + 5*18 = 450 + 200 + 160 + 90 = 900
	if got := r.TotalRevenue(); got != 900.00 {
		t.Fatalf("TotalRevenue() = %.2f, want 900.00", got)
	}
	if got := r.TotalQuantity(); got != 43 {
		t.Fatalf("TotalQuantity() = %d, want 43", got)
	}
}

func TestByCategorySortedByRevenue(t *testing.T) {
	t.Parallel()

	rows := testReport(t).ByCategory()
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	if rows[0].Category != "comida" || rows[0].Revenue != 650.00 {
		t.Fatalf("top category = %+v, want comida with 650.00", rows[0])
	}
	if rows[1].Category != "bebida" || rows[2].Category != "sobremesa" {
		t.Fatalf("unexpected order: %+v", rows)
	}
}

func TestTopProductsLimit(t *testing.T) {
	t.Parallel()

	rows := testReport(t).TopProducts(2)
	if len(rows) != 2 {
		t.Fatalf("len = %d, want 2", len(rows))
	}
	if rows[0].Product != "Pizza" || rows[1].Product != "X-Burger" {
		t.Fatalf("unexpected ranking: %+v", rows)
	}
}

func TestSummaryMentionsTotals(t *testing.T) {
	t.Parallel()

	got := testReport(t).Summary()
	for _, want := range []string{"4 registros", "43 itens", "900.00"} {
		if !strings.Contains(got, want) {
			t.Fatalf("Summary() = %q, missing %q", got, want)
		}
	}
}
