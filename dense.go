package hll

// denseStore is the fixed-size representation: exactly m register slots,
// each holding an integer in [0, 63]. Slots are kept one byte each rather
// than 6-bit packed in memory; only the serialized form is bit-packed.
// Byte-addressable slots keep update/get/union simple.
type denseStore []byte

// newDenseStore allocates a dense store with every slot at zero.
func newDenseStore(c *precisionConstants) denseStore {
	return make(denseStore, c.m)
}

// update sets slot[index] to the larger of its current value and rho.
func (d denseStore) update(index int, rho byte) {
	if rho > d[index] {
		d[index] = rho
	}
}

// get returns the value at slot index.
func (d denseStore) get(index int) byte {
	return d[index]
}

// harmonic returns Z = sum(2^-slot[i]) over all slots, summed in ascending
// index order (the slice is already ordered by index) so the result is
// bitwise reproducible across runs.
func (d denseStore) harmonic() float64 {
	sum := float64(0)
	for _, v := range d {
		sum += 1.0 / float64(uint64(1)<<v)
	}
	return sum
}

// countZeros returns V, the number of slots that are still zero.
func (d denseStore) countZeros() int {
	v := 0
	for _, val := range d {
		if val == 0 {
			v++
		}
	}
	return v
}

// serialize bit-packs all m slots at 6 bits each, producing exactly
// ceil(6m/8) bytes.
func (d denseStore) serialize() ([]byte, error) {
	values := make([]uint64, len(d))
	for i, v := range d {
		values[i] = uint64(v)
	}
	return pack(values, 6)
}

// deserializeDense unpacks m slots at 6 bits each, rejecting any value
// greater than 63.
func deserializeDense(data []byte, c *precisionConstants) (denseStore, error) {
	values, err := unpack(data, c.m, 6)
	if err != nil {
		return nil, err
	}

	d := make(denseStore, c.m)
	for i, v := range values {
		if v > 63 {
			return nil, errorf(ErrMalformed, "dense slot %d has value %d, want <= 63", i, v)
		}
		d[i] = byte(v)
	}

	return d, nil
}

// union merges other into d in place with max-per-slot semantics.
func (d denseStore) union(other denseStore) {
	for i, v := range other {
		if v > d[i] {
			d[i] = v
		}
	}
}
