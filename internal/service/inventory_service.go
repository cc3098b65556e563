package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/GTDGit/gtd_store/internal/models"
	"github.com/GTDGit/gtd_store/internal/product"
	"github.com/GTDGit/gtd_store/internal/promotion"
	"github.com/GTDGit/gtd_store/internal/sse"
	"github.com/GTDGit/gtd_store/internal/store"
	"github.com/GTDGit/gtd_store/internal/utils"
)

// ReceiptStore keeps order receipts by reference ID.
type ReceiptStore interface {
	Reserve(ctx context.Context, referenceID string) (bool, error)
	Save(ctx context.Context, receipt *models.Receipt) error
	Get(ctx context.Context, referenceID string) (*models.Receipt, error)
	Release(ctx context.Context, referenceID string) error
}

// InventoryService exposes the store to concurrent HTTP clients. One mutex
// guards the store and every product it holds.
type InventoryService struct {
	mu       sync.Mutex
	store    *store.Store
	receipts ReceiptStore
	notifier sse.InventoryNotifier
}

// NewInventoryService constructs an InventoryService. receipts may be nil,
// which disables reference ID deduplication.
func NewInventoryService(st *store.Store, receipts ReceiptStore, notifier sse.InventoryNotifier) *InventoryService {
	if notifier == nil {
		notifier = &sse.NopNotifier{}
	}
	return &InventoryService{
		store:    st,
		receipts: receipts,
		notifier: notifier,
	}
}

// AddProductRequest describes a product added through the admin API.
type AddProductRequest struct {
	Name        string            `json:"name" binding:"required"`
	Kind        string            `json:"kind" binding:"required,oneof=standard non_stocked limited"`
	Price       decimal.Decimal   `json:"price"`
	Quantity    int               `json:"quantity"`
	MaxPerOrder int               `json:"maxPerOrder"`
	Active      *bool             `json:"active"`
	Promotion   *PromotionRequest `json:"promotion"`
}

// PromotionRequest describes a promotion to attach to a product.
type PromotionRequest struct {
	Kind    string          `json:"kind" binding:"required"`
	Name    string          `json:"name" binding:"required"`
	Percent decimal.Decimal `json:"percent"`
}

// ListProducts returns the active products in catalog order.
func (s *InventoryService) ListProducts() []product.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshots(s.store.ActiveProducts())
}

// AllProducts returns every product, active or not.
func (s *InventoryService) AllProducts() []product.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshots(s.store.Products())
}

// TotalQuantity returns the number of stocked units across the store.
func (s *InventoryService) TotalQuantity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.TotalQuantity()
}

// LowStock returns active stocked products whose quantity is at or below
// threshold.
func (s *InventoryService) LowStock(threshold int) []product.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var low []product.Snapshot
	for _, p := range s.store.ActiveProducts() {
		if q := p.Quantity(); q != product.Unlimited && q <= threshold {
			low = append(low, p.Snapshot())
		}
	}
	return low
}

// PlaceOrder resolves the requested lines by product name and buys them.
func (s *InventoryService) PlaceOrder(ctx context.Context, req *models.OrderRequest) (*models.Receipt, error) {
	if s.receipts != nil {
		ok, err := s.receipts.Reserve(ctx, req.ReferenceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, utils.ErrDuplicateReferenceID
		}
	}

	total, deactivated, err := s.order(req.Lines)
	if err != nil {
		log.Warn().Err(err).Str("reference_id", req.ReferenceID).Msg("Order rejected")
		if s.receipts != nil {
			if relErr := s.receipts.Release(ctx, req.ReferenceID); relErr != nil {
				log.Error().Err(relErr).Str("reference_id", req.ReferenceID).Msg("Failed to release reference id")
			}
		}
		return nil, err
	}

	receipt := &models.Receipt{
		OrderID:     uuid.New().String(),
		ReferenceID: req.ReferenceID,
		Lines:       req.Lines,
		Total:       total,
		CreatedAt:   time.Now(),
	}

	if s.receipts != nil {
		// The stock has already moved; a cache failure must not fail the order.
		if err := s.receipts.Save(ctx, receipt); err != nil {
			log.Error().Err(err).Str("order_id", receipt.OrderID).Msg("Failed to cache receipt")
		}
	}

	log.Info().
		Str("order_id", receipt.OrderID).
		Str("reference_id", receipt.ReferenceID).
		Int("lines", len(receipt.Lines)).
		Str("total", total.String()).
		Msg("Order placed")

	s.notifier.NotifyOrderPlaced(receipt)
	for _, name := range deactivated {
		s.notifier.NotifyProductDeactivated(name)
	}
	return receipt, nil
}

// order runs one store order under the lock and reports which products it
// sold out.
func (s *InventoryService) order(lines []models.OrderLine) (decimal.Decimal, []string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]store.LineItem, 0, len(lines))
	for _, line := range lines {
		p, err := s.store.Lookup(line.ProductName)
		if err != nil {
			return decimal.Zero, nil, err
		}
		items = append(items, store.LineItem{Product: p, Quantity: line.Quantity})
	}

	wasActive := make(map[product.Product]bool, len(items))
	for _, item := range items {
		wasActive[item.Product] = item.Product.IsActive()
	}

	total, err := s.store.Order(items)
	if err != nil {
		return decimal.Zero, nil, err
	}

	var deactivated []string
	for p, active := range wasActive {
		if active && !p.IsActive() {
			deactivated = append(deactivated, p.Name())
		}
	}
	return total, deactivated, nil
}

// GetReceipt returns a cached receipt by reference ID.
func (s *InventoryService) GetReceipt(ctx context.Context, referenceID string) (*models.Receipt, error) {
	if s.receipts == nil {
		return nil, fmt.Errorf("%w: receipt %q", utils.ErrNotFound, referenceID)
	}
	return s.receipts.Get(ctx, referenceID)
}

// AddProduct creates a product and appends it to the store. Names must be
// unique because the API addresses products by name.
func (s *InventoryService) AddProduct(req *AddProductRequest) (product.Snapshot, error) {
	def := models.CatalogProduct{
		Name:     req.Name,
		Kind:     req.Kind,
		Price:    req.Price,
		Quantity: req.Quantity,
		IsActive: true,
	}
	if req.Active != nil {
		def.IsActive = *req.Active
	}
	if req.Kind == string(product.KindLimited) {
		def.MaxPerOrder.Int64, def.MaxPerOrder.Valid = int64(req.MaxPerOrder), true
	}
	if req.Promotion != nil {
		def.PromotionKind.String, def.PromotionKind.Valid = req.Promotion.Kind, true
		def.PromotionName.String, def.PromotionName.Valid = req.Promotion.Name, true
		def.PromotionPercent = decimal.NewNullDecimal(req.Promotion.Percent)
	}

	p, err := BuildProduct(def)
	if err != nil {
		return product.Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.Lookup(req.Name); err == nil {
		return product.Snapshot{}, fmt.Errorf("%w: product %q already exists", utils.ErrInvalidArgument, req.Name)
	}
	s.store.AddProduct(p)

	log.Info().Str("product", p.Name()).Str("kind", string(p.Kind())).Msg("Product added")
	return p.Snapshot(), nil
}

// RemoveProduct removes the product with the given name.
func (s *InventoryService) RemoveProduct(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, err := s.store.Lookup(name)
	if err != nil {
		return err
	}
	if err := s.store.RemoveProduct(p); err != nil {
		return err
	}
	log.Info().Str("product", name).Msg("Product removed")
	return nil
}

// SetQuantity replaces a product's stock count.
func (s *InventoryService) SetQuantity(name string, quantity int) (product.Snapshot, error) {
	return s.mutate(name, func(p product.Product) error {
		return p.SetQuantity(quantity)
	})
}

// SetActive activates or deactivates a product.
func (s *InventoryService) SetActive(name string, active bool) (product.Snapshot, error) {
	return s.mutate(name, func(p product.Product) error {
		if active {
			p.Activate()
		} else {
			p.Deactivate()
		}
		return nil
	})
}

// SetPromotion attaches a promotion, replacing any existing one.
func (s *InventoryService) SetPromotion(name string, req *PromotionRequest) (product.Snapshot, error) {
	promo, err := promotion.New(promotion.Kind(req.Kind), req.Name, req.Percent)
	if err != nil {
		return product.Snapshot{}, err
	}
	return s.mutate(name, func(p product.Product) error {
		return p.SetPromotion(promo)
	})
}

// RemovePromotion clears a product's promotion.
func (s *InventoryService) RemovePromotion(name string) (product.Snapshot, error) {
	return s.mutate(name, func(p product.Product) error {
		p.RemovePromotion()
		return nil
	})
}

// mutate applies fn to the named product under the lock and reports a
// transition to inactive.
func (s *InventoryService) mutate(name string, fn func(p product.Product) error) (product.Snapshot, error) {
	s.mu.Lock()
	p, err := s.store.Lookup(name)
	if err != nil {
		s.mu.Unlock()
		return product.Snapshot{}, err
	}
	wasActive := p.IsActive()
	err = fn(p)
	snap := p.Snapshot()
	s.mu.Unlock()

	if err != nil {
		return product.Snapshot{}, err
	}
	if wasActive && !snap.Active {
		s.notifier.NotifyProductDeactivated(name)
	}
	log.Info().Str("product", name).Bool("active", snap.Active).Msg("Product updated")
	return snap, nil
}

func snapshots(products []product.Product) []product.Snapshot {
	out := make([]product.Snapshot, 0, len(products))
	for _, p := range products {
		out = append(out, p.Snapshot())
	}
	return out
}

// IsClientError reports whether err is a validation failure the caller
// can correct, as opposed to an infrastructure failure.
func IsClientError(err error) bool {
	for _, target := range []error{
		utils.ErrInvalidArgument,
		utils.ErrInvalidQuantity,
		utils.ErrInsufficientStock,
		utils.ErrLimitExceeded,
		utils.ErrNotFound,
		utils.ErrDuplicateReferenceID,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
