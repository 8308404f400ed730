package sts

import (
	"context"
	"time"

	"github.com/karlseguin/ccache"
	"github.com/sirupsen/logrus"
	l "github.com/usi-samples/usi-client-go/logger"
)

// CachingProvider reuses a token until skew before its expiry.
type CachingProvider struct {
	next  TokenProvider
	key   string
	skew  time.Duration
	cache *ccache.Cache
	now   func() time.Time
}

var _ TokenProvider = &CachingProvider{}

// NewCachingProvider caches tokens from next under key, normally the alias
// and the relying party.
func NewCachingProvider(next TokenProvider, key string, skew time.Duration) *CachingProvider {
	return &CachingProvider{
		next:  next,
		key:   key,
		skew:  skew,
		cache: ccache.New(ccache.Configure().MaxSize(16).ItemsToPrune(1)),
		now:   time.Now,
	}
}

func (p *CachingProvider) GetToken(ctx context.Context, lifetimeMinutes int) (*SecurityToken, error) {
	now := p.now()

	item := p.cache.Get(p.key)
	if item != nil && !item.Expired() {
		tok := item.Value().(*SecurityToken)
		if !tok.Expired(now.Add(p.skew)) {
			l.Log.WithFields(logrus.Fields{"key": p.key, "expires": tok.Expires}).Debug("using cached security token")
			return tok, nil
		}
	}

	tok, err := p.next.GetToken(ctx, lifetimeMinutes)
	if err != nil {
		return nil, err
	}

	if ttl := tok.Remaining(now) - p.skew; ttl > 0 {
		p.cache.Set(p.key, tok, ttl)
	}

	return tok, nil
}

// Forget drops the cached token.
func (p *CachingProvider) Forget() {
	p.cache.Delete(p.key)
}
