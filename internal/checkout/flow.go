package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/simplete/storefront/internal/cart"
	"github.com/simplete/storefront/internal/domain"
)

// DefaultConfirmDisplay is how long the success banner stays up before
// the flow reverts to idle.
const DefaultConfirmDisplay = 3 * time.Second

var (
	// ErrNotAuthenticated rejects checkout without a session identity.
	ErrNotAuthenticated = errors.New("checkout requires an authenticated session")

	// ErrSubmitInFlight rejects a submit while one is already running.
	ErrSubmitInFlight = errors.New("a checkout is already in flight")

	// ErrEmptyCart rejects checkout of an empty cart.
	ErrEmptyCart = errors.New("cart is empty, nothing to checkout")

	errIllegalTransition = errors.New("illegal checkout status transition")
)

type orderPlacer interface {
	PlaceOrder(ctx context.Context, draft domain.OrderDraft) error
}

type identitySource interface {
	UserID() string
}

// Flow drives the checkout state machine:
// Idle -> Submitting -> {Succeeded, Failed} -> Idle.
// At most one submission is in flight at a time. On success the cart
// is cleared; on failure it is left untouched so the user can retry.
type Flow struct {
	mu     sync.Mutex
	status Status
	timer  *time.Timer

	orders  orderPlacer
	cart    *cart.Store
	session identitySource
	log     *zap.Logger

	confirmDisplay time.Duration
	now            func() time.Time
}

// Option configures a Flow.
type Option func(*Flow)

// WithConfirmDisplay overrides how long Succeeded is displayed before
// reverting to Idle.
func WithConfirmDisplay(d time.Duration) Option {
	return func(f *Flow) { f.confirmDisplay = d }
}

// WithClock overrides the time source used for order dates.
func WithClock(now func() time.Time) Option {
	return func(f *Flow) { f.now = now }
}

// NewFlow creates an idle checkout flow.
func NewFlow(orders orderPlacer, cartStore *cart.Store, session identitySource, log *zap.Logger, opts ...Option) *Flow {
	f := &Flow{
		status:         StatusIdle,
		orders:         orders,
		cart:           cartStore,
		session:        session,
		log:            log,
		confirmDisplay: DefaultConfirmDisplay,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Status returns the current flow state.
func (f *Flow) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Submit converts the cart into an order. Guards run before any
// network call: no identity, an in-flight submission, and an empty
// cart are all rejected locally.
func (f *Flow) Submit(ctx context.Context) error {
	userID := f.session.UserID()

	f.mu.Lock()
	switch f.status {
	case StatusSubmitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	case StatusSucceeded:
		// A new checkout during the confirmation window collapses the
		// banner early.
		if f.timer != nil {
			f.timer.Stop()
		}
		_ = f.transitionLocked(StatusIdle)
	case StatusFailed:
		// Retrying counts as acknowledging the previous failure.
		_ = f.transitionLocked(StatusIdle)
	}
	if userID == "" {
		f.mu.Unlock()
		return ErrNotAuthenticated
	}
	items := f.cart.Items()
	if len(items) == 0 {
		f.mu.Unlock()
		return ErrEmptyCart
	}
	if err := f.transitionLocked(StatusSubmitting); err != nil {
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	draft := BuildOrder(userID, f.now().UTC(), items)

	if err := f.orders.PlaceOrder(ctx, draft); err != nil {
		f.mu.Lock()
		defer f.mu.Unlock()
		// Cart stays intact for a retry.
		_ = f.transitionLocked(StatusFailed)
		f.log.Warn("order submission failed", zap.Error(err))
		return fmt.Errorf("failed to place order: %w", err)
	}

	f.cart.Clear()

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.transitionLocked(StatusSucceeded); err != nil {
		return err
	}
	f.log.Info("order placed",
		zap.String("user_id", userID),
		zap.Int("items", len(items)))

	// Cosmetic: drop the confirmation banner after the display window.
	f.timer = time.AfterFunc(f.confirmDisplay, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		if f.status == StatusSucceeded {
			_ = f.transitionLocked(StatusIdle)
		}
	})
	return nil
}

// Acknowledge moves a failed flow back to idle once the user has seen
// the error. A no-op in any other state.
func (f *Flow) Acknowledge() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.status == StatusFailed {
		_ = f.transitionLocked(StatusIdle)
	}
}

// Close stops any pending display timer.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.timer != nil {
		f.timer.Stop()
	}
}

func (f *Flow) transitionLocked(to Status) error {
	if !CanTransitionTo(f.status, to) {
		return fmt.Errorf("%w: %s -> %s", errIllegalTransition, f.status, to)
	}
	f.status = to
	return nil
}

// BuildOrder is the pure payload construction: given an identity, a
// timestamp and the cart lines, produce the order submission payload.
func BuildOrder(userID string, at time.Time, items []domain.LineItem) domain.OrderDraft {
	orderItems := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return domain.OrderDraft{
		OrderDate: at,
		UserID:    userID,
		Items:     orderItems,
	}
}
