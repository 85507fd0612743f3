package stardust

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// statusCache holds short-lived moderator state (tier, enrollment) so hot
// command paths skip the database. Writes go through the service, which
// updates the cache in the same call, so a short TTL is enough to cover
// out-of-band changes.
type statusCache struct {
	tiers    *expirable.LRU[string, int]
	enrolled *expirable.LRU[string, bool]
}

func newStatusCache(size int, ttl time.Duration) *statusCache {
	return &statusCache{
		tiers:    expirable.NewLRU[string, int](size, nil, ttl),
		enrolled: expirable.NewLRU[string, bool](size, nil, ttl),
	}
}

func cacheKey(guildID, userID string) string {
	return guildID + ":" + userID
}

func (c *statusCache) GetTier(guildID, userID string) (int, bool) {
	return c.tiers.Get(cacheKey(guildID, userID))
}

func (c *statusCache) SetTier(guildID, userID string, tierLevel int) {
	c.tiers.Add(cacheKey(guildID, userID), tierLevel)
}

func (c *statusCache) GetEnrolled(guildID, userID string) (bool, bool) {
	return c.enrolled.Get(cacheKey(guildID, userID))
}

func (c *statusCache) SetEnrolled(guildID, userID string, active bool) {
	c.enrolled.Add(cacheKey(guildID, userID), active)
}
