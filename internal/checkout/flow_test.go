package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/simplete/storefront/internal/cart"
	"github.com/simplete/storefront/internal/domain"
)

type placerMock struct {
	mu      sync.Mutex
	drafts  []domain.OrderDraft
	err     error
	release chan struct{} // when non-nil, PlaceOrder blocks until closed
}

func (p *placerMock) PlaceOrder(ctx context.Context, draft domain.OrderDraft) error {
	p.mu.Lock()
	p.drafts = append(p.drafts, draft)
	release := p.release
	p.mu.Unlock()

	if release != nil {
		<-release
	}
	return p.err
}

func (p *placerMock) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.drafts)
}

type identityMock struct {
	userID string
}

func (i identityMock) UserID() string { return i.userID }

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	s := cart.New()
	a := domain.Product{ID: 1, Name: "A", Price: decimal.RequireFromString("10.00")}
	b := domain.Product{ID: 2, Name: "B", Price: decimal.RequireFromString("5.00")}
	s.Add(a)
	s.Add(a)
	s.Add(b)
	return s
}

func TestFlow_Submit_RequiresIdentity(t *testing.T) {
	placer := &placerMock{}
	flow := NewFlow(placer, filledCart(t), identityMock{}, zap.NewNop())

	err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, placer.calls())
	assert.Equal(t, StatusIdle, flow.Status())
}

func TestFlow_Submit_RejectsEmptyCart(t *testing.T) {
	placer := &placerMock{}
	flow := NewFlow(placer, cart.New(), identityMock{userID: "u-1"}, zap.NewNop())

	err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, placer.calls())
}

func TestFlow_Submit_Success_ClearsCartAndBuildsPayload(t *testing.T) {
	placer := &placerMock{}
	cartStore := filledCart(t)
	at := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)
	flow := NewFlow(placer, cartStore, identityMock{userID: "u-1"}, zap.NewNop(),
		WithClock(func() time.Time { return at }),
		WithConfirmDisplay(10*time.Millisecond))
	defer flow.Close()

	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, StatusSucceeded, flow.Status())
	assert.Equal(t, 0, cartStore.Count())

	require.Equal(t, 1, placer.calls())
	draft := placer.drafts[0]
	assert.Equal(t, "u-1", draft.UserID)
	assert.Equal(t, at, draft.OrderDate)
	require.Len(t, draft.Items, 2)
	assert.Equal(t, int64(1), draft.Items[0].ProductID)
	assert.Equal(t, 2, draft.Items[0].Quantity)
	assert.True(t, draft.Items[0].UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, int64(2), draft.Items[1].ProductID)
	assert.Equal(t, 1, draft.Items[1].Quantity)

	// The confirmation banner reverts to idle on its own.
	require.Eventually(t, func() bool {
		return flow.Status() == StatusIdle
	}, time.Second, 5*time.Millisecond)
}

func TestFlow_Submit_WhileSubmitting_IsRejectedWithoutSecondCall(t *testing.T) {
	placer := &placerMock{release: make(chan struct{})}
	flow := NewFlow(placer, filledCart(t), identityMock{userID: "u-1"}, zap.NewNop())
	defer flow.Close()

	done := make(chan error, 1)
	go func() {
		done <- flow.Submit(context.Background())
	}()

	require.Eventually(t, func() bool {
		return flow.Status() == StatusSubmitting
	}, time.Second, time.Millisecond)

	err := flow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(placer.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, placer.calls())
}

func TestFlow_Submit_Failure_LeavesCartForRetry(t *testing.T) {
	placer := &placerMock{err: errors.New("boom")}
	cartStore := filledCart(t)
	flow := NewFlow(placer, cartStore, identityMock{userID: "u-1"}, zap.NewNop())

	err := flow.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, StatusFailed, flow.Status())
	assert.Equal(t, 2, cartStore.Count())

	// Once the user is notified the flow goes back to idle and a
	// retry can run.
	flow.Acknowledge()
	assert.Equal(t, StatusIdle, flow.Status())

	placer.err = nil
	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, 0, cartStore.Count())
}

func TestFlow_Submit_DuringConfirmationBanner_CollapsesAndProceeds(t *testing.T) {
	placer := &placerMock{}
	cartStore := filledCart(t)
	flow := NewFlow(placer, cartStore, identityMock{userID: "u-1"}, zap.NewNop(),
		WithConfirmDisplay(time.Hour))
	defer flow.Close()

	require.NoError(t, flow.Submit(context.Background()))
	require.Equal(t, StatusSucceeded, flow.Status())

	// The user fills the cart again while the banner is still up.
	cartStore.Add(domain.Product{ID: 3, Name: "C", Price: decimal.RequireFromString("7.00")})

	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, StatusSucceeded, flow.Status())
	assert.Equal(t, 2, placer.calls())
	assert.Equal(t, 0, cartStore.Count())
}

func TestFlow_Submit_AfterFailure_RetriesWithoutAcknowledge(t *testing.T) {
	placer := &placerMock{err: errors.New("boom")}
	cartStore := filledCart(t)
	flow := NewFlow(placer, cartStore, identityMock{userID: "u-1"}, zap.NewNop())
	defer flow.Close()

	require.Error(t, flow.Submit(context.Background()))
	require.Equal(t, StatusFailed, flow.Status())

	placer.err = nil
	require.NoError(t, flow.Submit(context.Background()))
	assert.Equal(t, 0, cartStore.Count())
}

func TestFlow_Acknowledge_NoopOutsideFailed(t *testing.T) {
	flow := NewFlow(&placerMock{}, cart.New(), identityMock{}, zap.NewNop())
	flow.Acknowledge()
	assert.Equal(t, StatusIdle, flow.Status())
}

func TestBuildOrder_IsPure(t *testing.T) {
	items := []domain.LineItem{
		{ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("10.00")},
		{ProductID: 2, Quantity: 1, UnitPrice: decimal.RequireFromString("5.00")},
	}
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first := BuildOrder("u-1", at, items)
	second := BuildOrder("u-1", at, items)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.OrderDate, second.OrderDate)
	require.Len(t, first.Items, 2)
	assert.Equal(t, first.Items, second.Items)
}
