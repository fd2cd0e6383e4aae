// Package hll implements a HyperLogLog cardinality estimator.
//
// An Estimator tracks the approximate number of distinct items added to
// it using memory sub-linear in the true cardinality.  It starts in a
// compact Sparse representation and promotes itself to a bit-packed Dense
// representation once the sparse map grows past a precision-dependent
// threshold; the transition is one-way and invisible to callers beyond
// its effect on memory use and Estimate's error bounds.
//
// Estimators with equal precision can be merged losslessly with Merge,
// and serialize to a compact, self-describing binary Envelope (and its
// Base64 wrapper) suitable for storage in an external key-value or
// relational store.
//
// Estimator is not safe for concurrent use.  It performs no I/O, stores
// no original items, and supports no deletion.
package hll
