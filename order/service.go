package order

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// ErrNotFound reports a ledger lookup miss.
var ErrNotFound = errors.New("order not found")

// Service orchestrates the catalog, parser, and ledger behind the callable
// tool surface. The typed methods (Place, Status, Menu) are the programmatic
// API; the string methods (PlaceOrder, CheckStatus, ListMenu) are their
// tool-facing projections and never return an error, only explanatory text,
// because the consumer is a language model that needs natural-language
// feedback to retry.
type Service struct {
	catalog *Catalog
	ledger  *Ledger
	log     zerolog.Logger
}

func NewService(catalog *Catalog, ledger *Ledger, log zerolog.Logger) (*Service, error) {
	if catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if ledger == nil {
		return nil, errors.New("ledger is required")
	}
	return &Service{catalog: catalog, ledger: ledger, log: log}, nil
}

// Place parses the utterance and creates a ledger entry with StatusCooking.
// Failures come back as *ParseError so callers can tell a malformed utterance
// from an unknown item. Nothing is written to the ledger on failure.
func (s *Service) Place(utterance string) (Order, error) {
	parsed, err := Parse(utterance, s.catalog)
	if err != nil {
		return Order{}, err
	}

	item, ok := s.catalog.Lookup(parsed.ItemName)
	if !ok {
		// Parse resolved the name against the same catalog, so this is
		// unreachable unless the catalog changed underneath us.
		return Order{}, &ParseError{Kind: KindItemNotFound, AttemptedName: parsed.ItemName}
	}

	total := item.UnitPrice * float64(parsed.Quantity)
	id := s.ledger.Insert(item.Name, parsed.Quantity, StatusCooking, total)

	s.log.Info().
		Str("order_id", id).
		Str("item", item.Name).
		Int("quantity", parsed.Quantity).
		Float64("total", total).
		Msg("order placed")

	o, _ := s.ledger.Get(id)
	return o, nil
}

// Status looks up an order by its identifier text. The text is normalized by
// trimming whitespace and stripping one leading '#'.
func (s *Service) Status(idText string) (Order, error) {
	id := normalizeID(idText)
	o, ok := s.ledger.Get(id)
	if !ok {
		return Order{}, fmt.Errorf("%w: id=%s", ErrNotFound, id)
	}
	return o, nil
}

// Menu returns the catalog items in order.
func (s *Service) Menu() []MenuItem {
	return s.catalog.All()
}

/* ----------------------- tool-facing string surface ---------------------- */

// PlaceOrder is the fazer_pedido projection.
func (s *Service) PlaceOrder(utterance string) string {
	o, err := s.Place(utterance)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) && parseErr.Kind == KindItemNotFound {
			return fmt.Sprintf("Erro: Não temos '%s'. Consulte o cardápio.", parseErr.AttemptedName)
		}
		return "Erro: Formato inválido. Tente 'Item, Quantidade'."
	}
	return fmt.Sprintf("Pedido #%s (%dx %s) confirmado! Total: R$ %.2f", o.ID, o.Quantity, o.ItemName, o.Total)
}

// CheckStatus is the ver_status projection. An unknown id answers with the
// full list of known identifiers; with no multi-tenant concept in the system
// that disclosure is deliberate and harmless.
func (s *Service) CheckStatus(idText string) string {
	o, err := s.Status(idText)
	if err != nil {
		return fmt.Sprintf("Pedido #%s não encontrado. Pedidos ativos: [%s]",
			normalizeID(idText), strings.Join(s.ledger.IDs(), ", "))
	}
	return fmt.Sprintf("Pedido #%s (%dx %s): %s", o.ID, o.Quantity, o.ItemName, o.Status)
}

// ListMenu is the ver_cardapio projection.
func (s *Service) ListMenu() string {
	return s.catalog.String()
}

func normalizeID(idText string) string {
	return strings.TrimPrefix(strings.TrimSpace(idText), "#")
}
