package fetch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_CompletesAndProjectsResult(t *testing.T) {
	f := New[[]string](nil)

	f.Fetch(context.Background(), func(ctx context.Context) ([]string, error) {
		return []string{"a", "b"}, nil
	})

	require.Eventually(t, func() bool {
		return !f.Result().Loading && f.Result().Data != nil
	}, time.Second, time.Millisecond)

	res := f.Result()
	assert.NoError(t, res.Err)
	assert.Equal(t, []string{"a", "b"}, res.Data)
}

func TestFetcher_ProjectsError(t *testing.T) {
	f := New[int](nil)
	boom := errors.New("boom")

	f.Fetch(context.Background(), func(ctx context.Context) (int, error) {
		return 0, boom
	})

	require.Eventually(t, func() bool {
		return f.Result().Err != nil
	}, time.Second, time.Millisecond)
	assert.ErrorIs(t, f.Result().Err, boom)
}

func TestFetcher_LoadingWhileInFlight(t *testing.T) {
	f := New[int](nil)
	release := make(chan struct{})

	f.Fetch(context.Background(), func(ctx context.Context) (int, error) {
		<-release
		return 1, nil
	})

	assert.True(t, f.Result().Loading)
	close(release)

	require.Eventually(t, func() bool {
		return !f.Result().Loading
	}, time.Second, time.Millisecond)
}

func TestFetcher_StaleResultIsDiscarded(t *testing.T) {
	f := New[string](nil)
	firstRelease := make(chan struct{})
	firstCancelled := make(chan struct{})

	// Slow first request.
	f.Fetch(context.Background(), func(ctx context.Context) (string, error) {
		go func() {
			<-ctx.Done()
			close(firstCancelled)
		}()
		<-firstRelease
		return "stale", nil
	})

	// Newer request for the same logical query supersedes it.
	f.Fetch(context.Background(), func(ctx context.Context) (string, error) {
		return "fresh", nil
	})

	// The superseded request's context is cancelled best-effort.
	select {
	case <-firstCancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded request was not cancelled")
	}

	require.Eventually(t, func() bool {
		return f.Result().Data == "fresh"
	}, time.Second, time.Millisecond)

	// Let the slow one finish; its result must not overwrite.
	close(firstRelease)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, "fresh", f.Result().Data)
}

func TestFetcher_OnUpdateObservesTransitions(t *testing.T) {
	updates := make(chan Result[int], 4)
	f := New[int](func(r Result[int]) { updates <- r })

	f.Fetch(context.Background(), func(ctx context.Context) (int, error) {
		return 7, nil
	})

	first := <-updates
	assert.True(t, first.Loading)

	select {
	case second := <-updates:
		assert.False(t, second.Loading)
		assert.Equal(t, 7, second.Data)
	case <-time.After(time.Second):
		t.Fatal("completion update never arrived")
	}
}

func TestFetcher_Cancel(t *testing.T) {
	f := New[int](nil)
	cancelled := make(chan struct{})

	f.Fetch(context.Background(), func(ctx context.Context) (int, error) {
		<-ctx.Done()
		close(cancelled)
		return 0, ctx.Err()
	})
	f.Cancel()

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("cancel did not propagate")
	}
	assert.False(t, f.Result().Loading)
}
