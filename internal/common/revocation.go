package common

import (
	"context"
	"time"

	"pilotconnect/internal/constants"
)

// CacheRevocationList remembers revoked token ids until the token would have expired
type CacheRevocationList struct {
	cache CacheInterface
}

func NewCacheRevocationList(cache CacheInterface) *CacheRevocationList {
	return &CacheRevocationList{cache: cache}
}

func (l *CacheRevocationList) Revoke(_ context.Context, tokenID string, until time.Time) error {
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	l.cache.Set(string(constants.CachePrefixRevokedToken)+tokenID, true, ttl)
	return nil
}

func (l *CacheRevocationList) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	_, found := l.cache.Get(string(constants.CachePrefixRevokedToken) + tokenID)
	return found, nil
}
