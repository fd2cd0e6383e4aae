package hll

import (
	"github.com/pkg/errors"
)

// pack writes each value in values into a little-endian bit stream: value
// i occupies bit positions [i*w, i*w+w).  The returned slice is exactly
// ceil(len(values)*w / 8) bytes.  It rejects widths outside [1, 64] and
// values that do not fit in w bits.
func pack(values []uint64, w int) ([]byte, error) {
	if w < 1 || w > 64 {
		return nil, errors.Errorf("hll: bit width %d out of range [1, 64]", w)
	}

	if len(values) == 0 {
		return []byte{}, nil
	}

	limit := uint64(1) << uint(w)
	for i, v := range values {
		if w < 64 && v >= limit {
			return nil, errors.Errorf("hll: value %d at index %d does not fit in %d bits", v, i, w)
		}
	}

	out := make([]byte, divideBy8RoundUp(len(values)*w))

	bitAddr := 0
	for _, v := range values {
		writeBitsLE(out, bitAddr, v, w)
		bitAddr += w
	}

	return out, nil
}

// unpack is the inverse of pack: it reads n values of width w bits each
// from the little-endian bit stream in data.  Trailing bytes beyond what n
// values require are tolerated.
func unpack(data []byte, n, w int) ([]uint64, error) {
	if w < 1 || w > 64 {
		return nil, errors.Errorf("hll: bit width %d out of range [1, 64]", w)
	}

	needed := divideBy8RoundUp(n * w)
	if len(data) < needed {
		return nil, errors.Wrapf(ErrMalformed, "need %d bytes to unpack %d values at %d bits, got %d", needed, n, w, len(data))
	}

	values := make([]uint64, n)
	bitAddr := 0
	for i := 0; i < n; i++ {
		values[i] = readBitsLE(data, bitAddr, w)
		bitAddr += w
	}

	return values, nil
}

// divideBy8RoundUp returns ceil(i / 8).
func divideBy8RoundUp(i int) int {
	result := i >> 3
	if remainder := i & 0x7; remainder > 0 {
		result++
	}
	return result
}

// readBitsLE reads nBits starting at the given 0-indexed bit address from a
// little-endian bit stream and returns them as the LSBs of a uint64.  Bit
// address 0 is the least significant bit of byte 0, bit address 8 is the
// least significant bit of byte 1, and so on.
func readBitsLE(data []byte, addr, nBits int) uint64 {
	idx := addr >> 3
	pos := addr & 0x7

	var value uint64
	shift := uint(0)
	remaining := nBits

	for remaining > 0 {
		available := 8 - pos
		take := available
		if take > remaining {
			take = remaining
		}

		mask := byte((1<<uint(take))-1) << uint(pos)
		bits := (data[idx] & mask) >> uint(pos)

		value |= uint64(bits) << shift

		shift += uint(take)
		remaining -= take
		pos += take
		if pos == 8 {
			idx++
			pos = 0
		}
	}

	return value
}

// writeBitsLE writes the nBits least significant bits of value to the given
// 0-indexed bit address in a little-endian bit stream, per the same
// addressing scheme as readBitsLE.
func writeBitsLE(data []byte, addr int, value uint64, nBits int) {
	idx := addr >> 3
	pos := addr & 0x7

	remaining := nBits
	for remaining > 0 {
		available := 8 - pos
		take := available
		if take > remaining {
			take = remaining
		}

		chunk := byte(value) & byte((1<<uint(take))-1)
		mask := byte((1<<uint(take))-1) << uint(pos)

		data[idx] = (data[idx] &^ mask) | (chunk << uint(pos))

		value >>= uint(take)
		remaining -= take
		pos += take
		if pos == 8 {
			idx++
			pos = 0
		}
	}
}

// packSparseEntries packs a set of (index, rho) pairs, each occupying b+6
// bits little-endian with rho in the low 6 bits and index in the high b
// bits, concatenated in the order given.
func packSparseEntries(indices []int, rhos []byte, b int) ([]byte, error) {
	w := b + 6
	values := make([]uint64, len(indices))
	for i := range indices {
		values[i] = (uint64(indices[i]) << 6) | uint64(rhos[i])
	}
	return pack(values, w)
}

// unpackSparseEntries is the inverse of packSparseEntries.  n is derived by
// the caller from the byte length (the Envelope carries payload_len).
func unpackSparseEntries(data []byte, n, b int) (indices []int, rhos []byte, err error) {
	w := b + 6
	values, err := unpack(data, n, w)
	if err != nil {
		return nil, nil, err
	}

	indices = make([]int, n)
	rhos = make([]byte, n)
	for i, v := range values {
		indices[i] = int(v >> 6)
		rhos[i] = byte(v & 0x3f)
	}

	return indices, rhos, nil
}
