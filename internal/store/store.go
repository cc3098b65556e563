package store

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_store/internal/product"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// LineItem is one line of an order.
type LineItem struct {
	Product  product.Product
	Quantity int
}

// OrderError reports the order line that stopped an order.
type OrderError struct {
	Line    int
	Product string
	Err     error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order line %d (%s): %v", e.Line+1, e.Product, e.Err)
}

func (e *OrderError) Unwrap() error { return e.Err }

// Store holds an ordered collection of products. It is not safe for
// concurrent use; callers serialize access.
type Store struct {
	products []product.Product
}

// New creates a store holding the given products in order.
func New(products ...product.Product) *Store {
	s := &Store{}
	for _, p := range products {
		s.AddProduct(p)
	}
	return s
}

// AddProduct appends p. Duplicates are not checked.
func (s *Store) AddProduct(p product.Product) {
	s.products = append(s.products, p)
}

// RemoveProduct removes the first entry that is p itself.
func (s *Store) RemoveProduct(p product.Product) error {
	for i, held := range s.products {
		if held == p {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	name := "<nil>"
	if p != nil {
		name = p.Name()
	}
	return fmt.Errorf("%w: product %q is not in the store", utils.ErrNotFound, name)
}

// TotalQuantity sums stock over every held product. Products without stock
// tracking are left out.
func (s *Store) TotalQuantity() int {
	total := 0
	for _, p := range s.products {
		if q := p.Quantity(); q != product.Unlimited {
			total += q
		}
	}
	return total
}

// ActiveProducts returns the active products in insertion order.
func (s *Store) ActiveProducts() []product.Product {
	active := make([]product.Product, 0, len(s.products))
	for _, p := range s.products {
		if p.IsActive() {
			active = append(active, p)
		}
	}
	return active
}

// Products returns every held product, active or not.
func (s *Store) Products() []product.Product {
	all := make([]product.Product, len(s.products))
	copy(all, s.products)
	return all
}

// Lookup returns the first product with the given name.
func (s *Store) Lookup(name string) (product.Product, error) {
	for _, p := range s.products {
		if p.Name() == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: product %q", utils.ErrNotFound, name)
}

// Order buys every line and returns the summed charge.
//
// Orders are all-or-nothing: every line is validated before any stock
// moves, so a rejected line leaves all products untouched. Stock is checked
// against the cumulative demand of lines naming the same product; per-order
// caps apply to each line.
func (s *Store) Order(items []LineItem) (decimal.Decimal, error) {
	demand := make(map[product.Product]int, len(items))
	for i, item := range items {
		if err := validateLine(item, demand[item.Product]); err != nil {
			return decimal.Zero, &OrderError{Line: i, Product: lineName(item), Err: err}
		}
		demand[item.Product] += item.Quantity
	}

	total := decimal.Zero
	for i, item := range items {
		charged, err := item.Product.Buy(item.Quantity)
		if err != nil {
			return decimal.Zero, &OrderError{Line: i, Product: item.Product.Name(), Err: err}
		}
		total = total.Add(charged)
	}
	return total, nil
}

// validateLine checks one line given the units earlier lines already claim
// from the same product.
func validateLine(item LineItem, claimed int) error {
	p := item.Product
	if p == nil {
		return fmt.Errorf("%w: missing product", utils.ErrInvalidArgument)
	}
	if !p.IsActive() {
		return fmt.Errorf("%w: product is not active", utils.ErrInsufficientStock)
	}
	if available := p.Quantity(); available != product.Unlimited && available-claimed < item.Quantity {
		return fmt.Errorf("%w: requested %d, available %d", utils.ErrInsufficientStock, item.Quantity, available-claimed)
	}
	return p.CanBuy(item.Quantity)
}

func lineName(item LineItem) string {
	if item.Product == nil {
		return "<nil>"
	}
	return item.Product.Name()
}
