package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack_RoundTrip(t *testing.T) {
	widths := []int{1, 2, 3, 5, 6, 7, 8, 9, 13, 16, 31, 32, 63, 64}

	for _, w := range widths {
		limit := uint64(1) << uint(w)
		if w == 64 {
			limit = 0 // unrepresentable as a shift; handled below
		}

		values := make([]uint64, 37)
		for i := range values {
			var v uint64
			if w == 64 {
				v = uint64(i) * 0x0123456789abcdef
			} else {
				v = (uint64(i) * 2654435761) % limit
			}
			values[i] = v
		}

		packed, err := pack(values, w)
		require.NoError(t, err, "width %d", w)

		expectedLen := divideBy8RoundUp(len(values) * w)
		assert.Equal(t, expectedLen, len(packed), "width %d", w)

		unpacked, err := unpack(packed, len(values), w)
		require.NoError(t, err, "width %d", w)
		assert.Equal(t, values, unpacked, "width %d", w)
	}
}

func TestPack_EmptyInput(t *testing.T) {
	out, err := pack(nil, 6)
	require.NoError(t, err)
	assert.Equal(t, []byte{}, out)
}

func TestPack_RejectsOutOfRangeValue(t *testing.T) {
	_, err := pack([]uint64{64}, 6)
	assert.Error(t, err)
}

func TestPack_RejectsBadWidth(t *testing.T) {
	_, err := pack([]uint64{0}, 0)
	assert.Error(t, err)

	_, err = pack([]uint64{0}, 65)
	assert.Error(t, err)
}

func TestUnpack_RejectsTruncatedInput(t *testing.T) {
	_, err := unpack([]byte{0x00}, 10, 6)
	assert.Error(t, err)
}

func TestUnpack_ToleratesTrailingBytes(t *testing.T) {
	packed, err := pack([]uint64{1, 2, 3}, 6)
	require.NoError(t, err)

	padded := append(append([]byte{}, packed...), 0xFF, 0xFF, 0xFF)
	values, err := unpack(padded, 3, 6)
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, values)
}

func TestSparseEntryPack_RoundTrip(t *testing.T) {
	b := 14
	indices := []int{0, 1, 5, 100, 16383}
	rhos := []byte{1, 61, 7, 30, 1}

	packed, err := packSparseEntries(indices, rhos, b)
	require.NoError(t, err)

	gotIdx, gotRho, err := unpackSparseEntries(packed, len(indices), b)
	require.NoError(t, err)
	assert.Equal(t, indices, gotIdx)
	assert.Equal(t, rhos, gotRho)
}

func TestDivideBy8RoundUp(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 7: 1, 8: 1, 9: 2, 48: 6, 49: 7}
	for in, want := range cases {
		assert.Equal(t, want, divideBy8RoundUp(in), "input %d", in)
	}
}
