package sales

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Sale is one row of the partner sales sheet.
type Sale struct {
	Product   string  `json:"product"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Revenue is quantity times unit price for this row.
func (s Sale) Revenue() float64 {
	return float64(s.Quantity) * s.UnitPrice
}

var ErrEmptyDataset = errors.New("sales dataset is empty")

// expected header, in order
var datasetColumns = []string{"produto", "categoria", "quantidade", "preco_unitario"}

// Load reads the sales sheet from a CSV file on disk.
func Load(path string) ([]Sale, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sales dataset: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses the sales sheet from r. The first record must be the header
// produto,categoria,quantidade,preco_unitario; every following record becomes
// one Sale. Malformed rows fail the whole read rather than being skipped, so
// a broken sheet is caught at startup instead of skewing every report.
func Read(r io.Reader) ([]Sale, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDataset
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var sales []Sale
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}

		sale, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		sales = append(sales, sale)
	}

	if len(sales) == 0 {
		return nil, ErrEmptyDataset
	}
	return sales, nil
}

func validateHeader(header []string) error {
	if len(header) != len(datasetColumns) {
		return fmt.Errorf("header has %d columns, want %d", len(header), len(datasetColumns))
	}
	for i, want := range datasetColumns {
		if !strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return fmt.Errorf("header column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}

func parseRecord(record []string) (Sale, error) {
	if len(record) != len(datasetColumns) {
		return Sale{}, fmt.Errorf("row has %d columns, want %d", len(record), len(datasetColumns))
	}

	product := strings.TrimSpace(record[0])
	if product == "" {
		return Sale{}, errors.New("empty product name")
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil {
		return Sale{}, fmt.Errorf("invalid quantity %q: %w", record[2], err)
	}

	unitPrice, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil {
		return Sale{}, fmt.Errorf("invalid unit price %q: %w", record[3], err)
	}

	return Sale{
		Product:   product,
		Category:  strings.TrimSpace(record[1]),
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}
