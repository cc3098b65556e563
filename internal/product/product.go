package product

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_store/internal/promotion"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// Unlimited is the quantity reported by products that do not track stock.
// No finite count can equal it.
const Unlimited = -1

// Kind enumerates the product variants.
type Kind string

const (
	KindStandard   Kind = "standard"
	KindNonStocked Kind = "non_stocked"
	KindLimited    Kind = "limited"
)

// Product is a catalog entry that can be listed and purchased.
// Each variant decides how quantity is reported, how a purchase is
// validated, and how it renders itself.
type Product interface {
	Name() string
	Price() decimal.Decimal
	Kind() Kind

	Quantity() int
	SetQuantity(quantity int) error

	IsActive() bool
	Activate()
	Deactivate()

	Promotion() promotion.Promotion
	SetPromotion(p promotion.Promotion) error
	RemovePromotion()

	Show() string
	CanBuy(quantity int) error
	Buy(quantity int) (decimal.Decimal, error)
	Snapshot() Snapshot
}

// Snapshot is a read-only view of a product for listings.
type Snapshot struct {
	Name        string          `json:"name"`
	Kind        Kind            `json:"kind"`
	Price       decimal.Decimal `json:"price"`
	Quantity    *int            `json:"quantity"`
	Unlimited   bool            `json:"unlimited"`
	MaxPerOrder int             `json:"maxPerOrder,omitempty"`
	Active      bool            `json:"active"`
	Promotion   string          `json:"promotion,omitempty"`
	Display     string          `json:"display"`
}

// Option customizes product construction.
type Option func(*options)

type options struct {
	active    *bool
	promotion promotion.Promotion
}

// WithActive overrides the initial active flag. A product created with zero
// quantity stays inactive regardless.
func WithActive(active bool) Option {
	return func(o *options) { o.active = &active }
}

// WithPromotion attaches a promotion at construction time.
func WithPromotion(p promotion.Promotion) Option {
	return func(o *options) { o.promotion = p }
}

// base carries the state shared by every variant.
type base struct {
	name      string
	price     decimal.Decimal
	quantity  int
	active    bool
	promotion promotion.Promotion
}

func newBase(name string, price decimal.Decimal, quantity int, opts []Option) (base, error) {
	if name == "" {
		return base{}, fmt.Errorf("%w: product name cannot be empty", utils.ErrInvalidArgument)
	}
	if price.IsNegative() {
		return base{}, fmt.Errorf("%w: price cannot be negative", utils.ErrInvalidArgument)
	}
	if quantity < 0 {
		return base{}, fmt.Errorf("%w: quantity cannot be negative", utils.ErrInvalidArgument)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	active := quantity > 0
	if o.active != nil && quantity > 0 {
		active = *o.active
	}

	return base{
		name:      name,
		price:     price,
		quantity:  quantity,
		active:    active,
		promotion: o.promotion,
	}, nil
}

func (b *base) Name() string           { return b.name }
func (b *base) Price() decimal.Decimal { return b.price }
func (b *base) Quantity() int          { return b.quantity }
func (b *base) IsActive() bool         { return b.active }
func (b *base) Activate()              { b.active = true }
func (b *base) Deactivate()            { b.active = false }

// SetQuantity replaces the stock count. Reaching zero deactivates the
// product; raising it again does not reactivate it.
func (b *base) SetQuantity(quantity int) error {
	if quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", utils.ErrInvalidArgument)
	}
	b.quantity = quantity
	if quantity == 0 {
		b.Deactivate()
	}
	return nil
}

func (b *base) Promotion() promotion.Promotion { return b.promotion }

// SetPromotion replaces any promotion currently attached.
func (b *base) SetPromotion(p promotion.Promotion) error {
	if p == nil {
		return fmt.Errorf("%w: invalid promotion", utils.ErrInvalidArgument)
	}
	b.promotion = p
	return nil
}

func (b *base) RemovePromotion() { b.promotion = nil }

func (b *base) promotionName() string {
	if b.promotion == nil {
		return "None"
	}
	return b.promotion.Name()
}

// charge prices quantity units, through the promotion when one is attached.
func (b *base) charge(quantity int) (decimal.Decimal, error) {
	if b.promotion != nil {
		return b.promotion.Apply(b.price, quantity)
	}
	return b.price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// purchase charges and, when tracked, depletes stock. Callers validate first.
func (b *base) purchase(quantity int, tracked bool) (decimal.Decimal, error) {
	total, err := b.charge(quantity)
	if err != nil {
		return decimal.Zero, err
	}
	if tracked {
		if err := b.SetQuantity(b.quantity - quantity); err != nil {
			return decimal.Zero, err
		}
	}
	return total, nil
}

func (b *base) snapshot(kind Kind, active bool) Snapshot {
	s := Snapshot{
		Name:   b.name,
		Kind:   kind,
		Price:  b.price,
		Active: active,
	}
	if b.promotion != nil {
		s.Promotion = b.promotion.Name()
	}
	return s
}

func checkPositive(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity to buy must be greater than zero", utils.ErrInvalidQuantity)
	}
	return nil
}

func checkStock(quantity, available int) error {
	if quantity > available {
		return fmt.Errorf("%w: requested %d, available %d", utils.ErrInsufficientStock, quantity, available)
	}
	return nil
}
