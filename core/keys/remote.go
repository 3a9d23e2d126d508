package keys

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// Remote is a Source backed by an HTTP key endpoint.
// Lookups are served from the last fetched chain; call Refresh before opening packages.
type Remote struct {
	cfg     Config
	client  *resty.Client
	limiter *rate.Limiter
	logger  *zap.Logger

	mu      sync.RWMutex
	chain   *Static
	fetched time.Time
	sf      singleflight.Group
}

// NewRemote creates a remote key source.
func NewRemote(cfg Config, logger *zap.Logger) *Remote {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 15
	}

	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 500 * time.Millisecond
	retryClient.RetryWaitMax = 5 * time.Second
	retryClient.Logger = nil

	// Retries on 5xx and connection errors happen in the retryablehttp round tripper.
	client := resty.NewWithClient(retryClient.StandardClient()).
		SetTimeout(time.Duration(timeout)*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "pak-index/1.0")

	limiter := rate.NewLimiter(rate.Inf, 0)
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}

	return &Remote{
		cfg:     cfg,
		client:  client,
		limiter: limiter,
		logger:  logger,
	}
}

// isFresh reports whether the cached chain is within its TTL.
func (r *Remote) isFresh() bool {
	if r.chain == nil || r.cfg.CacheTTLSeconds <= 0 {
		return false
	}
	return time.Since(r.fetched) <= time.Duration(r.cfg.CacheTTLSeconds)*time.Second
}

// Refresh fetches the chain unless the cached one is still fresh.
func (r *Remote) Refresh(ctx context.Context) error {
	r.mu.RLock()
	fresh := r.isFresh()
	r.mu.RUnlock()
	if fresh {
		return nil
	}

	_, err, _ := r.sf.Do(r.cfg.URL, func() (interface{}, error) {
		r.mu.RLock()
		fresh := r.isFresh()
		r.mu.RUnlock()
		if fresh {
			return nil, nil
		}

		chain, err := r.fetch(ctx)
		if err != nil {
			return nil, err
		}

		r.mu.Lock()
		r.chain = chain
		r.fetched = time.Now()
		r.mu.Unlock()

		r.logger.Info("Key chain fetched",
			zap.String("url", r.cfg.URL),
			zap.Int("dynamic_keys", chain.Len()),
		)
		return nil, nil
	})
	return err
}

func (r *Remote) fetch(ctx context.Context) (*Static, error) {
	if r.cfg.URL == "" {
		return nil, fmt.Errorf("key endpoint is not configured")
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit error: %w", err)
	}

	var chain Chain
	resp, err := r.client.R().
		SetContext(ctx).
		SetResult(&chain).
		Get(r.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch key chain: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch key chain: unexpected status %d", resp.StatusCode())
	}
	if chain.MainKey == "" {
		chain.MainKey = r.cfg.MainKey
	}
	return NewStatic(chain), nil
}

// Lookup returns the dynamic key of a container from the last fetched chain.
func (r *Remote) Lookup(containerID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.chain == nil {
		return "", false
	}
	return r.chain.Lookup(containerID)
}

// Default returns the fetched main key, or the configured one when none was fetched.
func (r *Remote) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.chain == nil || r.chain.Default() == "" {
		return r.cfg.MainKey
	}
	return r.chain.Default()
}
