package hll

import "sort"

// sparseStore is the compact representation: a mapping from register index
// to the maximum rho observed at that index.  Every stored value is > 0;
// an absent key is an implicit rho of 0.  Indices are bounded to [0, m)
// and m never exceeds 2^18, so a plain int key is sufficient.
type sparseStore map[int]byte

// add upserts (index, rho) with max-rho semantics and reports whether the
// store is now over its sparse threshold, signaling the Estimator should
// promote to dense.
func (s sparseStore) add(c *precisionConstants, index int, rho byte) (overCapacity bool) {
	if existing := s[index]; rho > existing {
		s[index] = rho
	}
	return len(s) > c.sparseThreshold
}

// get returns the stored rho for index, or 0 if absent.
func (s sparseStore) get(index int) byte {
	return s[index]
}

// sortedIndices returns the store's keys in ascending order, needed for
// deterministic serialization and order-stable harmonic summation.
func (s sparseStore) sortedIndices() []int {
	indices := make([]int, 0, len(s))
	for k := range s {
		indices = append(indices, k)
	}
	sort.Ints(indices)
	return indices
}

// harmonic returns Z = sum(2^-rho) over all m registers, with the implicit
// zero registers (m - len(s) of them) each contributing 2^0 = 1.  Summation
// runs over the stored entries in ascending index order so the result is
// bitwise reproducible across runs.
func (s sparseStore) harmonic(c *precisionConstants) float64 {
	sum := float64(c.m - len(s))
	for _, idx := range s.sortedIndices() {
		sum += 1.0 / float64(uint64(1)<<s[idx])
	}
	return sum
}

// countZeros returns V, the number of registers that have never been set.
func (s sparseStore) countZeros(c *precisionConstants) int {
	return c.m - len(s)
}

// serialize packs each (index, rho) entry into b+6 bits, in ascending
// index order.
func (s sparseStore) serialize(c *precisionConstants) ([]byte, error) {
	indices := s.sortedIndices()
	rhos := make([]byte, len(indices))
	for i, idx := range indices {
		rhos[i] = s[idx]
	}
	return packSparseEntries(indices, rhos, c.b)
}

// deserializeSparse is the inverse of serialize: it unpacks n entries of
// b+6 bits each and verifies indices are unique and < m.  n is derived by
// the Envelope from payload_len, since the payload itself carries no count.
func deserializeSparse(data []byte, n int, c *precisionConstants) (sparseStore, error) {
	indices, rhos, err := unpackSparseEntries(data, n, c.b)
	if err != nil {
		return nil, err
	}

	s := make(sparseStore, n)
	for i, idx := range indices {
		if idx < 0 || idx >= c.m {
			return nil, errorf(ErrMalformed, "sparse index %d out of range [0, %d)", idx, c.m)
		}
		if _, dup := s[idx]; dup {
			return nil, errorf(ErrMalformed, "duplicate sparse index %d", idx)
		}
		if rhos[i] == 0 {
			return nil, errorf(ErrMalformed, "sparse entry at index %d has rho 0", idx)
		}
		s[idx] = rhos[i]
	}

	return s, nil
}

// promote allocates a dense store with all of this sparse store's entries
// copied in.  The sparse store itself is discarded by the caller.
func (s sparseStore) promote(c *precisionConstants) denseStore {
	d := newDenseStore(c)
	for idx, rho := range s {
		d.update(idx, rho)
	}
	return d
}

// mergeFrom upserts every entry of other into s with max-rho semantics.
func (s sparseStore) mergeFrom(other sparseStore) {
	for idx, rho := range other {
		if existing := s[idx]; rho > existing {
			s[idx] = rho
		}
	}
}
