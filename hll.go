package hll

import (
	"math"
	"unicode/utf8"
)

// mode is the tag that records which store is currently active.  An
// Estimator transitions from Sparse to Dense exactly once, and never back.
type mode int

const (
	modeSparse mode = iota
	modeDense
)

// Estimator is a HyperLogLog cardinality estimator.  It holds a precision
// b, a mode tag, and exactly one of a sparse or dense register store.  The
// zero value is not usable; construct one with New.
//
// Estimator is not safe for concurrent use: callers desiring concurrent
// access must synchronize externally or shard by key.
type Estimator struct {
	precision *precisionConstants
	mode      mode
	sparse    sparseStore
	dense     denseStore
}

// New creates an empty Estimator in Sparse mode at the given precision.
// It returns ErrInvalidPrecision if b is outside [4, 18].
func New(b int) (*Estimator, error) {
	c, err := lookupPrecision(b)
	if err != nil {
		return nil, err
	}

	return &Estimator{
		precision: c,
		mode:      modeSparse,
		sparse:    make(sparseStore),
	}, nil
}

// Precision returns the precision b this Estimator was constructed with.
func (e *Estimator) Precision() int {
	return e.precision.b
}

// Add hashes item with MurmurHash64A, applies the RegisterRule, and
// updates the active store.  If the update pushes a Sparse store over its
// threshold, the Estimator promotes to Dense.
func (e *Estimator) Add(item []byte) {
	hash := MurmurHash64A(item, 0)
	index := registerIndex(hash, e.precision.b)
	rho := registerRho(hash, e.precision.b)

	switch e.mode {
	case modeSparse:
		if e.sparse.add(e.precision, index, rho) {
			e.promote()
		}
	case modeDense:
		e.dense.update(index, rho)
	}
}

// AddString is the textual convenience wrapper for Add: it validates s is
// valid UTF-8, returning ErrInvalidItem if not, then hashes its bytes.
// Add itself never performs this validation: the canonical input is
// bytes, and only textual convenience APIs are responsible for the UTF-8
// contract.
func (e *Estimator) AddString(s string) error {
	if !utf8.ValidString(s) {
		return ErrInvalidItem
	}
	e.Add([]byte(s))
	return nil
}

// Estimate computes the current cardinality estimate: a raw estimate from
// the harmonic sum of all registers, a small/mid-range bias correction,
// and a linear-counting override for small cardinalities.
func (e *Estimator) Estimate() float64 {
	var z float64
	var v int

	switch e.mode {
	case modeSparse:
		z = e.sparse.harmonic(e.precision)
		v = e.sparse.countZeros(e.precision)
	case modeDense:
		z = e.dense.harmonic()
		v = e.dense.countZeros()
	}

	raw := e.precision.alphaMM / z

	estimate := raw
	if raw <= e.precision.threshold {
		estimate -= biasEstimate(raw, e.precision.b)
		if estimate < 0 {
			estimate = 0
		}
	}

	if v > 0 {
		m := float64(e.precision.m)
		linear := m * math.Log(m/float64(v))
		if linear <= e.precision.threshold {
			return linear
		}
	}

	return estimate
}

// Merge unions other into e in place and returns e. It returns
// ErrIncompatiblePrecision if the two Estimators were built with
// different precision; no other error is possible.
func (e *Estimator) Merge(other *Estimator) (*Estimator, error) {
	if e.precision.b != other.precision.b {
		return nil, ErrIncompatiblePrecision
	}

	switch {
	case e.mode == modeDense && other.mode == modeDense:
		e.dense.union(other.dense)

	case e.mode == modeDense && other.mode == modeSparse:
		for idx, rho := range other.sparse {
			e.dense.update(idx, rho)
		}

	case e.mode == modeSparse && other.mode == modeDense:
		e.promote()
		e.dense.union(other.dense)

	case e.mode == modeSparse && other.mode == modeSparse:
		e.sparse.mergeFrom(other.sparse)
		if len(e.sparse) > e.precision.sparseThreshold {
			e.promote()
		}
	}

	return e, nil
}

// promote converts a Sparse Estimator to Dense in place.  It is
// irreversible: an Estimator never transitions back to Sparse.
func (e *Estimator) promote() {
	e.dense = e.sparse.promote(e.precision)
	e.sparse = nil
	e.mode = modeDense
}
