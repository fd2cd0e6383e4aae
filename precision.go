package hll

import (
	"sync"

	"github.com/pkg/errors"
)

const (
	minPrecision = 4
	maxPrecision = 18
)

// precisionConstants holds the values derived from a precision b that are
// expensive enough to be worth computing once and reusing: the number of
// registers, the alpha*m^2 constant, the small/mid-range correction
// threshold, and the sparse-to-dense promotion threshold.
type precisionConstants struct {
	b               int
	m               int
	alphaMM         float64
	threshold       float64
	sparseThreshold int
}

var (
	precisionCacheLock sync.RWMutex
	precisionCache     = make(map[int]*precisionConstants)
)

// lookupPrecision validates b and returns its memoized constants,
// computing and caching them on first use.  It is the sole entry point by
// which New and FromBytes accept a precision.
func lookupPrecision(b int) (*precisionConstants, error) {
	if b < minPrecision || b > maxPrecision {
		return nil, errors.Wrapf(ErrInvalidPrecision, "got %d", b)
	}

	precisionCacheLock.RLock()
	c := precisionCache[b]
	precisionCacheLock.RUnlock()

	if c != nil {
		return c, nil
	}

	m := 1 << uint(b)

	c = &precisionConstants{
		b:               b,
		m:               m,
		alphaMM:         alphaMM(m),
		threshold:       5 * float64(m),
		sparseThreshold: m / 4,
	}

	precisionCacheLock.Lock()
	precisionCache[b] = c
	precisionCacheLock.Unlock()

	return c, nil
}

// alphaMM computes alpha * m^2 using the standard m >= 128 Flajolet-Fusy-
// Gandouet-Meunier approximation, applied uniformly across the whole
// precision range.
func alphaMM(m int) float64 {
	fm := float64(m)
	return (0.7213 / (1.0 + 1.079/fm)) * fm * fm
}

// maxRho returns the largest register value reachable for precision b:
// rho ranges over [0, 64-b+1].
func maxRho(b int) byte {
	return byte(64 - b + 1)
}
