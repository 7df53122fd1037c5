package service

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/guttosm/cryptorec/internal/domain/models"
)

// rangeCache memoizes the all-time normalized ranges for one store version.
// Concurrent misses for the same version share a single computation.
type rangeCache struct {
	mu      sync.Mutex
	valid   bool
	version uint64
	results []models.NormalizedRange

	group singleflight.Group
}

// get returns the cached results for version, computing them on a miss.
// A computed result is only kept if the store version is unchanged after
// computing, so content written mid-computation is never cached under an
// older version.
func (c *rangeCache) get(version uint64, compute func() ([]models.NormalizedRange, error), current func() (uint64, error)) ([]models.NormalizedRange, error) {
	c.mu.Lock()
	if c.valid && c.version == version {
		out := clone(c.results)
		c.mu.Unlock()
		return out, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(strconv.FormatUint(version, 10), func() (interface{}, error) {
		res, err := compute()
		if err != nil {
			return nil, err
		}
		after, err := current()
		if err == nil && after == version {
			c.mu.Lock()
			c.valid, c.version, c.results = true, version, res
			c.mu.Unlock()
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]models.NormalizedRange)), nil
}

func clone(in []models.NormalizedRange) []models.NormalizedRange {
	out := make([]models.NormalizedRange, len(in))
	copy(out, in)
	return out
}
