package product

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_store/internal/utils"
)

// Standard is a product with a finite stock count.
type Standard struct {
	base
}

// New creates a standard product. It is active when quantity > 0 unless
// WithActive(false) is given.
func New(name string, price decimal.Decimal, quantity int, opts ...Option) (*Standard, error) {
	b, err := newBase(name, price, quantity, opts)
	if err != nil {
		return nil, err
	}
	return &Standard{base: b}, nil
}

func (p *Standard) Kind() Kind { return KindStandard }

func (p *Standard) CanBuy(quantity int) error {
	if err := checkPositive(quantity); err != nil {
		return err
	}
	return checkStock(quantity, p.quantity)
}

func (p *Standard) Buy(quantity int) (decimal.Decimal, error) {
	if err := p.CanBuy(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.purchase(quantity, true)
}

func (p *Standard) Show() string {
	return fmt.Sprintf("%s, Price: $%s, Quantity: %d, Promotion: %s",
		p.name, p.price.String(), p.quantity, p.promotionName())
}

func (p *Standard) Snapshot() Snapshot {
	s := p.snapshot(KindStandard, p.IsActive())
	q := p.quantity
	s.Quantity = &q
	s.Display = p.Show()
	return s
}

// NonStocked is a product without stock tracking, such as a software
// license. It is always active.
type NonStocked struct {
	base
}

func NewNonStocked(name string, price decimal.Decimal, opts ...Option) (*NonStocked, error) {
	b, err := newBase(name, price, 0, opts)
	if err != nil {
		return nil, err
	}
	return &NonStocked{base: b}, nil
}

func (p *NonStocked) Kind() Kind     { return KindNonStocked }
func (p *NonStocked) Quantity() int  { return Unlimited }
func (p *NonStocked) IsActive() bool { return true }

func (p *NonStocked) CanBuy(quantity int) error {
	return checkPositive(quantity)
}

func (p *NonStocked) Buy(quantity int) (decimal.Decimal, error) {
	if err := p.CanBuy(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.purchase(quantity, false)
}

func (p *NonStocked) Show() string {
	return fmt.Sprintf("%s, Price: $%s, Quantity: Unlimited, Promotion: %s",
		p.name, p.price.String(), p.promotionName())
}

func (p *NonStocked) Snapshot() Snapshot {
	s := p.snapshot(KindNonStocked, true)
	s.Unlimited = true
	s.Display = p.Show()
	return s
}

// Limited is a stocked product that caps how many units a single order may
// take.
type Limited struct {
	base
	maximum int
}

func NewLimited(name string, price decimal.Decimal, quantity, maximum int, opts ...Option) (*Limited, error) {
	b, err := newBase(name, price, quantity, opts)
	if err != nil {
		return nil, err
	}
	if maximum <= 0 {
		return nil, fmt.Errorf("%w: maximum per order must be greater than zero", utils.ErrInvalidArgument)
	}
	return &Limited{base: b, maximum: maximum}, nil
}

func (p *Limited) Kind() Kind   { return KindLimited }
func (p *Limited) Maximum() int { return p.maximum }

// CanBuy rejects requests over the per-order cap before looking at stock.
func (p *Limited) CanBuy(quantity int) error {
	if err := checkPositive(quantity); err != nil {
		return err
	}
	if quantity > p.maximum {
		return fmt.Errorf("%w: cannot buy more than %d per order", utils.ErrLimitExceeded, p.maximum)
	}
	return checkStock(quantity, p.quantity)
}

func (p *Limited) Buy(quantity int) (decimal.Decimal, error) {
	if err := p.CanBuy(quantity); err != nil {
		return decimal.Zero, err
	}
	return p.purchase(quantity, true)
}

func (p *Limited) Show() string {
	return fmt.Sprintf("%s, Price: $%s, Quantity: %d, Limited to %d per order!, Promotion: %s",
		p.name, p.price.String(), p.quantity, p.maximum, p.promotionName())
}

func (p *Limited) Snapshot() Snapshot {
	s := p.snapshot(KindLimited, p.IsActive())
	q := p.quantity
	s.Quantity = &q
	s.MaxPerOrder = p.maximum
	s.Display = p.Show()
	return s
}

var (
	_ Product = (*Standard)(nil)
	_ Product = (*NonStocked)(nil)
	_ Product = (*Limited)(nil)
)
