package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/devvitrinefrutal-del/vitrine-api/cart"
	"github.com/devvitrinefrutal-del/vitrine-api/models"
	"github.com/devvitrinefrutal-del/vitrine-api/notify"
	"go.uber.org/zap"
)

var (
	ErrUnauthenticated  = errors.New("checkout requires an authenticated session")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrAddressRequired  = errors.New("delivery orders require an address")
	ErrCheckoutInFlight = errors.New("checkout already in progress for this session")
)

// PixDiscountRate is applied to the displayed total when paying with PIX.
// The persisted order total stays undiscounted; whether the discount should
// reach the order record is a pending product decision.
const PixDiscountRate = 0.05

// Gateway is the slice of the remote gateway the pipeline writes through.
type Gateway interface {
	StoreByID(ctx context.Context, id string) (*models.Store, error)
	CreateOrder(ctx context.Context, order *models.Order) error
	DecrementStock(ctx context.Context, productID string, quantity int) error
}

// StockMirror receives confirmed stock changes so reads reflect them
// without a refetch.
type StockMirror interface {
	ApplyStockDelta(productID string, delta int)
}

type Input struct {
	DeliveryMethod models.DeliveryMethod `json:"deliveryMethod" binding:"required"`
	Address        string                `json:"address"`
	PaymentMethod  models.PaymentMethod  `json:"paymentMethod" binding:"required"`
	CustomerName   string                `json:"customerName"`
	CustomerPhone  string                `json:"customerPhone"`
	Observation    string                `json:"observation"`
	ChangeFor      float64               `json:"changeFor"`
}

// Quote is the money breakdown for a cart + delivery/payment choice.
// DisplayTotal carries the PIX discount; Total is what gets persisted.
type Quote struct {
	Subtotal     float64 `json:"subtotal"`
	DeliveryFee  float64 `json:"deliveryFee"`
	Total        float64 `json:"total"`
	DisplayTotal float64 `json:"displayTotal"`
}

type Result struct {
	Order       *models.Order `json:"order"`
	Quote       Quote         `json:"quote"`
	WhatsAppURL string        `json:"whatsappUrl"`
}

// Pipeline turns a cart plus delivery/payment choices into a persisted
// order and the matching inventory adjustment. The order insert is the
// commit point: nothing before it has side effects, and nothing after it
// can undo it.
type Pipeline struct {
	gateway  Gateway
	mirror   StockMirror
	notifier notify.DigestNotifier
	logger   *zap.Logger

	mu        sync.Mutex
	finishing map[string]struct{}
}

func NewPipeline(gateway Gateway, mirror StockMirror, notifier notify.DigestNotifier, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		gateway:   gateway,
		mirror:    mirror,
		notifier:  notifier,
		logger:    logger,
		finishing: make(map[string]struct{}),
	}
}

// Finishing reports whether a checkout is in flight for the session.
// Callers must not re-submit while it is true.
func (p *Pipeline) Finishing(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, busy := p.finishing[sessionID]
	return busy
}

func (p *Pipeline) begin(sessionID string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, busy := p.finishing[sessionID]; busy {
		return false
	}
	p.finishing[sessionID] = struct{}{}
	return true
}

func (p *Pipeline) end(sessionID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.finishing, sessionID)
}

// ComputeQuote derives the money breakdown. The delivery fee applies only
// to delivery orders; the PIX discount only ever touches DisplayTotal.
func ComputeQuote(subtotal float64, store *models.Store, method models.DeliveryMethod, payment models.PaymentMethod) Quote {
	quote := Quote{Subtotal: subtotal}
	if method == models.DeliveryMethodDelivery {
		quote.DeliveryFee = store.DeliveryFee
	}
	quote.Total = quote.Subtotal + quote.DeliveryFee
	quote.DisplayTotal = quote.Total
	if payment == models.PaymentMethodPix {
		quote.DisplayTotal = quote.Total * (1 - PixDiscountRate)
	}
	return quote
}

// Finish runs the checkout. Failure before or at the order insert leaves
// the cart and all stock untouched; after the insert the order stands even
// if some stock decrements fail (logged, reconciled manually).
func (p *Pipeline) Finish(ctx context.Context, sessionID string, engine *cart.Engine, actor *models.Actor, input Input) (*Result, error) {
	if !p.begin(sessionID) {
		return nil, ErrCheckoutInFlight
	}
	defer p.end(sessionID)

	if actor == nil {
		return nil, ErrUnauthenticated
	}
	if engine.Len() == 0 {
		return nil, ErrEmptyCart
	}
	if input.DeliveryMethod == models.DeliveryMethodDelivery && input.Address == "" {
		return nil, ErrAddressRequired
	}

	store, err := p.gateway.StoreByID(ctx, engine.OriginStoreID())
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	lines := engine.Lines()
	quote := ComputeQuote(engine.Total(), store, input.DeliveryMethod, input.PaymentMethod)

	items := make(models.OrderItems, len(lines))
	for i, line := range lines {
		items[i] = models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		}
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = actor.Name
	}

	order := &models.Order{
		StoreID:         store.ID,
		ClientID:        actor.ID,
		CustomerName:    customerName,
		CustomerPhone:   input.CustomerPhone,
		CustomerAddress: input.Address,
		DeliveryMethod:  input.DeliveryMethod,
		DeliveryFee:     quote.DeliveryFee,
		Total:           quote.Total,
		Items:           items,
		PaymentMethod:   input.PaymentMethod,
		Observation:     observationWithChange(input),
	}

	// Commit point. On failure the cart keeps its lines and no stock has
	// been touched, so the same checkout is safe to retry.
	if err := p.gateway.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// Best-effort, per line. A failed decrement leaves inventory overstated
	// until manual reconciliation; it never rolls back the order.
	for _, line := range lines {
		if err := p.gateway.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			p.logger.Warn("stock decrement failed after order commit",
				zap.String("order_id", order.ID),
				zap.String("product_id", line.ProductID),
				zap.Int("quantity", line.Quantity),
				zap.Error(err),
			)
			continue
		}
		if p.mirror != nil {
			p.mirror.ApplyStockDelta(line.ProductID, -line.Quantity)
		}
	}

	if err := engine.Clear(ctx); err != nil {
		p.logger.Warn("failed to clear cart snapshot after checkout",
			zap.String("order_id", order.ID), zap.Error(err))
	}

	if p.notifier != nil {
		if err := p.notifier.OrderPlaced(ctx, *store, order); err != nil {
			p.logger.Warn("order digest notification failed",
				zap.String("order_id", order.ID), zap.Error(err))
		}
	}

	return &Result{
		Order:       order,
		Quote:       quote,
		WhatsAppURL: notify.HandoffURL(store.Phone, order),
	}, nil
}

func observationWithChange(input Input) string {
	if input.PaymentMethod == models.PaymentMethodCash && input.ChangeFor > 0 {
		change := fmt.Sprintf("Troco para R$ %.2f", input.ChangeFor)
		if input.Observation == "" {
			return change
		}
		return input.Observation + " | " + change
	}
	return input.Observation
}
