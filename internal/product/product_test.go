package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/gtd_store/internal/promotion"
	"github.com/GTDGit/gtd_store/internal/utils"
)

func usd(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertMoney(t *testing.T, want, got decimal.Decimal) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %s, got %s", want, got)
}

func TestNew_Valid(t *testing.T) {
	p, err := New("Laptop", usd(1000), 5)
	require.NoError(t, err)

	assert.Equal(t, "Laptop", p.Name())
	assertMoney(t, usd(1000), p.Price())
	assert.Equal(t, 5, p.Quantity())
	assert.True(t, p.IsActive())
	assert.Nil(t, p.Promotion())
}

func TestNew_InvalidDetails(t *testing.T) {
	tests := []struct {
		name     string
		pName    string
		price    decimal.Decimal
		quantity int
	}{
		{name: "empty name", pName: "", price: usd(1000), quantity: 5},
		{name: "negative price", pName: "Laptop", price: usd(-1000), quantity: 5},
		{name: "negative quantity", pName: "Laptop", price: usd(1000), quantity: -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.pName, tt.price, tt.quantity)
			assert.ErrorIs(t, err, utils.ErrInvalidArgument)
			assert.Nil(t, p)
		})
	}
}

func TestNew_ActiveDefaults(t *testing.T) {
	empty, err := New("Empty", usd(1), 0)
	require.NoError(t, err)
	assert.False(t, empty.IsActive())

	forcedOn, err := New("Empty", usd(1), 0, WithActive(true))
	require.NoError(t, err)
	assert.False(t, forcedOn.IsActive(), "zero stock stays inactive")

	forcedOff, err := New("Stocked", usd(1), 3, WithActive(false))
	require.NoError(t, err)
	assert.False(t, forcedOff.IsActive())

	free, err := New("Free sample", decimal.Zero, 1)
	require.NoError(t, err)
	assert.True(t, free.IsActive())
}

func TestSetQuantity(t *testing.T) {
	p, err := New("Laptop", usd(1000), 5)
	require.NoError(t, err)

	require.NoError(t, p.SetQuantity(0))
	assert.False(t, p.IsActive())

	require.NoError(t, p.SetQuantity(10))
	assert.Equal(t, 10, p.Quantity())
	assert.False(t, p.IsActive(), "restocking does not reactivate")

	p.Activate()
	assert.True(t, p.IsActive())

	err = p.SetQuantity(-1)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	assert.Equal(t, 10, p.Quantity())
}

func TestSetQuantity_ZeroDeactivatesEveryFiniteVariant(t *testing.T) {
	std, err := New("Laptop", usd(1000), 5)
	require.NoError(t, err)
	lim, err := NewLimited("Shipping", usd(10), 250, 1)
	require.NoError(t, err)

	for _, p := range []Product{std, lim} {
		p.Activate()
		require.NoError(t, p.SetQuantity(0))
		assert.False(t, p.IsActive(), p.Kind())
	}
}

func TestBuy_ModifiesQuantity(t *testing.T) {
	p, err := New("Laptop", usd(1000), 5)
	require.NoError(t, err)

	total, err := p.Buy(3)
	require.NoError(t, err)
	assertMoney(t, usd(3000), total)
	assert.Equal(t, 2, p.Quantity())
	assert.True(t, p.IsActive())

	total, err = p.Buy(2)
	require.NoError(t, err)
	assertMoney(t, usd(2000), total)
	assert.Equal(t, 0, p.Quantity())
	assert.False(t, p.IsActive())
}

func TestBuy_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		qty     int
		wantErr error
	}{
		{name: "zero", qty: 0, wantErr: utils.ErrInvalidQuantity},
		{name: "negative", qty: -2, wantErr: utils.ErrInvalidQuantity},
		{name: "too much", qty: 6, wantErr: utils.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New("Laptop", usd(1000), 5)
			require.NoError(t, err)

			total, err := p.Buy(tt.qty)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, total.IsZero())
			assert.Equal(t, 5, p.Quantity())
			assert.True(t, p.IsActive())
		})
	}
}

func TestBuy_WithPromotion(t *testing.T) {
	half, err := promotion.NewSecondItemHalfPrice("Second Half price!")
	require.NoError(t, err)

	p, err := New("Bose QuietComfort Earbuds", usd(250), 500, WithPromotion(half))
	require.NoError(t, err)

	total, err := p.Buy(2)
	require.NoError(t, err)
	assertMoney(t, usd(375), total)
	assert.Equal(t, 498, p.Quantity())
}

func TestPromotionAssignment(t *testing.T) {
	p, err := New("Test Product", usd(100), 50)
	require.NoError(t, err)

	pct, err := promotion.NewPercentageDiscount("30% off!", usd(30))
	require.NoError(t, err)
	free, err := promotion.NewBuyTwoGetOneFree("Third One Free!")
	require.NoError(t, err)

	require.NoError(t, p.SetPromotion(pct))
	require.NoError(t, p.SetPromotion(free))
	assert.Equal(t, free, p.Promotion(), "assignment replaces")

	total, err := p.Buy(3)
	require.NoError(t, err)
	assertMoney(t, usd(200), total)

	assert.ErrorIs(t, p.SetPromotion(nil), utils.ErrInvalidArgument)
	assert.Equal(t, free, p.Promotion())

	p.RemovePromotion()
	assert.Nil(t, p.Promotion())

	total, err = p.Buy(3)
	require.NoError(t, err)
	assertMoney(t, usd(300), total)
}

func TestNonStocked(t *testing.T) {
	p, err := NewNonStocked("Windows License", usd(125))
	require.NoError(t, err)

	assert.Equal(t, Unlimited, p.Quantity())
	assert.True(t, p.IsActive())

	p.Deactivate()
	assert.True(t, p.IsActive(), "unlimited stock is always active")

	total, err := p.Buy(1000)
	require.NoError(t, err)
	assertMoney(t, usd(125000), total)
	assert.Equal(t, Unlimited, p.Quantity())

	_, err = p.Buy(0)
	assert.ErrorIs(t, err, utils.ErrInvalidQuantity)
}

func TestLimited(t *testing.T) {
	p, err := NewLimited("Shipping", usd(10), 250, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Maximum())

	_, err = p.Buy(2)
	assert.ErrorIs(t, err, utils.ErrLimitExceeded)
	assert.Equal(t, 250, p.Quantity())

	total, err := p.Buy(1)
	require.NoError(t, err)
	assertMoney(t, usd(10), total)
	assert.Equal(t, 249, p.Quantity())
}

func TestLimited_CapCheckedBeforeStock(t *testing.T) {
	p, err := NewLimited("Shipping", usd(10), 1, 2)
	require.NoError(t, err)

	_, err = p.Buy(3)
	assert.ErrorIs(t, err, utils.ErrLimitExceeded)

	_, err = p.Buy(2)
	assert.ErrorIs(t, err, utils.ErrInsufficientStock)
	assert.Equal(t, 1, p.Quantity())
}

func TestNewLimited_InvalidMaximum(t *testing.T) {
	for _, maximum := range []int{0, -1} {
		_, err := NewLimited("Shipping", usd(10), 250, maximum)
		assert.ErrorIs(t, err, utils.ErrInvalidArgument)
	}
}

func TestShow(t *testing.T) {
	mac, err := New("MacBook Air M2", usd(1450), 100)
	require.NoError(t, err)
	win, err := NewNonStocked("Windows License", usd(125))
	require.NoError(t, err)
	ship, err := NewLimited("Shipping", usd(10), 250, 1)
	require.NoError(t, err)

	assert.Equal(t, "MacBook Air M2, Price: $1450, Quantity: 100, Promotion: None", mac.Show())
	assert.Equal(t, "Windows License, Price: $125, Quantity: Unlimited, Promotion: None", win.Show())
	assert.Equal(t, "Shipping, Price: $10, Quantity: 250, Limited to 1 per order!, Promotion: None", ship.Show())

	pct, err := promotion.NewPercentageDiscount("30% off!", usd(30))
	require.NoError(t, err)
	require.NoError(t, win.SetPromotion(pct))
	assert.Equal(t, "Windows License, Price: $125, Quantity: Unlimited, Promotion: 30% off!", win.Show())
}

func TestSnapshot(t *testing.T) {
	ship, err := NewLimited("Shipping", usd(10), 250, 1)
	require.NoError(t, err)

	s := ship.Snapshot()
	assert.Equal(t, KindLimited, s.Kind)
	require.NotNil(t, s.Quantity)
	assert.Equal(t, 250, *s.Quantity)
	assert.Equal(t, 1, s.MaxPerOrder)
	assert.False(t, s.Unlimited)
	assert.Empty(t, s.Promotion)
	assert.Equal(t, ship.Show(), s.Display)

	win, err := NewNonStocked("Windows License", usd(125))
	require.NoError(t, err)
	s = win.Snapshot()
	assert.Nil(t, s.Quantity)
	assert.True(t, s.Unlimited)
	assert.True(t, s.Active)
}
