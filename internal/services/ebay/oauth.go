package ebay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storesync/internal/config"
	"storesync/internal/logger"
	"storesync/internal/metrics"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenFetcher obtains a fresh application token. clientcredentials.Config
// satisfies it.
type TokenFetcher interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// NewTokenFetcher exchanges the app/cert id pair for an application-scoped
// token using the client credentials grant.
func NewTokenFetcher(cfg config.EbayConfig) TokenFetcher {
	return &clientcredentials.Config{
		ClientID:     cfg.AppID,
		ClientSecret: cfg.CertID,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
		AuthStyle:    oauth2.AuthStyleInHeader,
	}
}

// Session owns the process-wide application token. Reads and refreshes are
// serialized on mu; RefreshIfCurrent only fetches when the caller's token is
// still the current one, so concurrent failure handlers refresh once.
type Session struct {
	mu      sync.Mutex
	fetcher TokenFetcher
	logger  *logger.Logger
	token   string
	expiry  time.Time
}

func NewSession(fetcher TokenFetcher, logger *logger.Logger) *Session {
	return &Session{
		fetcher: fetcher,
		logger:  logger,
	}
}

// AccessToken returns the current token, fetching one synchronously when
// none is held yet.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}
	return s.fetchLocked(ctx, "missing")
}

// Refresh unconditionally replaces the current token.
func (s *Session) Refresh(ctx context.Context, reason string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.fetchLocked(ctx, reason)
}

// RefreshIfCurrent replaces the token only if stale is still the held
// token. Otherwise the newer token is returned without a network call.
func (s *Session) RefreshIfCurrent(ctx context.Context, stale, reason string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.token != stale {
		return s.token, nil
	}
	return s.fetchLocked(ctx, reason)
}

func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiry
}

func (s *Session) fetchLocked(ctx context.Context, reason string) (string, error) {
	tok, err := s.fetcher.Token(ctx)
	if err != nil {
		metrics.TokenRefreshes.WithLabelValues(reason, "error").Inc()
		return "", fmt.Errorf("failed to refresh application token: %w", err)
	}
	if tok == nil || tok.AccessToken == "" {
		metrics.TokenRefreshes.WithLabelValues(reason, "error").Inc()
		return "", errors.New("token endpoint returned an empty access token")
	}

	s.token = tok.AccessToken
	s.expiry = tok.Expiry
	metrics.TokenRefreshes.WithLabelValues(reason, "ok").Inc()
	s.logger.Info("Application token refreshed (reason: %s, expires: %s)", reason, tok.Expiry.Format(time.RFC3339))
	return s.token, nil
}

// Run refreshes the token every interval until ctx is cancelled.
func (s *Session) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Token refresher stopped")
			return
		case <-ticker.C:
			if _, err := s.Refresh(ctx, "scheduled"); err != nil {
				s.logger.Error("Scheduled token refresh failed: %v", err)
			}
		}
	}
}
