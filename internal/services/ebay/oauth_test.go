package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"storesync/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeFetcher) Token(ctx context.Context) (*oauth2.Token, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &oauth2.Token{
		AccessToken: fmt.Sprintf("token-%d", f.calls),
		Expiry:      time.Now().Add(2 * time.Hour),
	}, nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestAccessTokenFetchesLazily(t *testing.T) {
	f := &fakeFetcher{}
	s := NewSession(f, logger.NewNop())

	tok, err := s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)

	tok, err = s.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", tok)
	assert.Equal(t, 1, f.Calls())
}

func TestRefreshIfCurrentSkipsWhenAlreadyRotated(t *testing.T) {
	f := &fakeFetcher{}
	s := NewSession(f, logger.NewNop())
	ctx := context.Background()

	stale, err := s.AccessToken(ctx)
	require.NoError(t, err)

	fresh, err := s.RefreshIfCurrent(ctx, stale, "test")
	require.NoError(t, err)
	assert.Equal(t, "token-2", fresh)

	again, err := s.RefreshIfCurrent(ctx, stale, "test")
	require.NoError(t, err)
	assert.Equal(t, "token-2", again)
	assert.Equal(t, 2, f.Calls())
}

func TestConcurrentRefreshesCollapse(t *testing.T) {
	f := &fakeFetcher{}
	s := NewSession(f, logger.NewNop())
	ctx := context.Background()

	stale, err := s.AccessToken(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.RefreshIfCurrent(ctx, stale, "test")
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, f.Calls())
}

func TestRefreshError(t *testing.T) {
	f := &fakeFetcher{err: errors.New("boom")}
	s := NewSession(f, logger.NewNop())

	_, err := s.AccessToken(context.Background())
	assert.ErrorContains(t, err, "boom")
}

func TestRunStopsOnCancel(t *testing.T) {
	f := &fakeFetcher{}
	s := NewSession(f, logger.NewNop())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return f.Calls() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop after cancel")
	}
}
