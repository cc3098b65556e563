package promotion

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_store/internal/utils"
)

// Kind enumerates the supported pricing strategies.
type Kind string

const (
	KindPercentageDiscount  Kind = "percentage_discount"
	KindSecondItemHalfPrice Kind = "second_item_half_price"
	KindBuyTwoGetOneFree    Kind = "buy_two_get_one_free"
)

// Promotion computes the charged total for a unit price and a quantity.
// Implementations hold no mutable state.
type Promotion interface {
	Name() string
	Kind() Kind
	Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error)
}

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// New builds a promotion of the given kind. percent is only read for
// KindPercentageDiscount.
func New(kind Kind, name string, percent decimal.Decimal) (Promotion, error) {
	var (
		p   Promotion
		err error
	)
	switch kind {
	case KindPercentageDiscount:
		var d *PercentageDiscount
		if d, err = NewPercentageDiscount(name, percent); err == nil {
			p = d
		}
	case KindSecondItemHalfPrice:
		var h *SecondItemHalfPrice
		if h, err = NewSecondItemHalfPrice(name); err == nil {
			p = h
		}
	case KindBuyTwoGetOneFree:
		var b *BuyTwoGetOneFree
		if b, err = NewBuyTwoGetOneFree(name); err == nil {
			p = b
		}
	default:
		err = fmt.Errorf("%w: unknown promotion kind %q", utils.ErrInvalidArgument, kind)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: promotion name cannot be empty", utils.ErrInvalidArgument)
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be greater than zero", utils.ErrInvalidQuantity)
	}
	return nil
}

// PercentageDiscount takes a fixed percentage off every unit.
type PercentageDiscount struct {
	name    string
	percent decimal.Decimal
}

// NewPercentageDiscount validates that percent lies in [0,100].
func NewPercentageDiscount(name string, percent decimal.Decimal) (*PercentageDiscount, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if percent.IsNegative() || percent.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: discount percent must be between 0 and 100", utils.ErrInvalidArgument)
	}
	return &PercentageDiscount{name: name, percent: percent}, nil
}

func (p *PercentageDiscount) Name() string { return p.name }
func (p *PercentageDiscount) Kind() Kind   { return KindPercentageDiscount }

// Percent returns the configured discount percentage.
func (p *PercentageDiscount) Percent() decimal.Decimal { return p.percent }

// Apply charges unitPrice × (1 − percent/100) × quantity.
func (p *PercentageDiscount) Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if err := validateQuantity(quantity); err != nil {
		return decimal.Zero, err
	}
	discount := unitPrice.Mul(p.percent).Div(hundred)
	return unitPrice.Sub(discount).Mul(decimal.NewFromInt(int64(quantity))), nil
}

// SecondItemHalfPrice bills every second unit at half price.
type SecondItemHalfPrice struct {
	name string
}

func NewSecondItemHalfPrice(name string) (*SecondItemHalfPrice, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &SecondItemHalfPrice{name: name}, nil
}

func (p *SecondItemHalfPrice) Name() string { return p.name }
func (p *SecondItemHalfPrice) Kind() Kind   { return KindSecondItemHalfPrice }

func (p *SecondItemHalfPrice) Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if err := validateQuantity(quantity); err != nil {
		return decimal.Zero, err
	}
	fullPriceItems := decimal.NewFromInt(int64(quantity/2 + quantity%2))
	halfPriceItems := decimal.NewFromInt(int64(quantity / 2))
	return unitPrice.Mul(fullPriceItems).Add(unitPrice.Mul(half).Mul(halfPriceItems)), nil
}

// BuyTwoGetOneFree charges two units out of every complete group of three.
type BuyTwoGetOneFree struct {
	name string
}

func NewBuyTwoGetOneFree(name string) (*BuyTwoGetOneFree, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	return &BuyTwoGetOneFree{name: name}, nil
}

func (p *BuyTwoGetOneFree) Name() string { return p.name }
func (p *BuyTwoGetOneFree) Kind() Kind   { return KindBuyTwoGetOneFree }

func (p *BuyTwoGetOneFree) Apply(unitPrice decimal.Decimal, quantity int) (decimal.Decimal, error) {
	if err := validateQuantity(quantity); err != nil {
		return decimal.Zero, err
	}
	paidItems := (quantity/3)*2 + quantity%3
	return unitPrice.Mul(decimal.NewFromInt(int64(paidItems))), nil
}
