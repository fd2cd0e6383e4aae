package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDenseStore_UpdateMaxSemantics(t *testing.T) {
	c, err := lookupPrecision(4)
	require.NoError(t, err)

	d := newDenseStore(c)
	d.update(2, 5)
	assert.Equal(t, byte(5), d.get(2))

	d.update(2, 3)
	assert.Equal(t, byte(5), d.get(2), "lower rho must not overwrite")

	d.update(2, 9)
	assert.Equal(t, byte(9), d.get(2))
}

func TestDenseStore_NewIsAllZero(t *testing.T) {
	c, err := lookupPrecision(10)
	require.NoError(t, err)

	d := newDenseStore(c)
	require.Len(t, d, c.m)
	for i := range d {
		assert.Equal(t, byte(0), d[i])
	}
}

func TestDenseStore_HarmonicSumsInversePowersOfTwo(t *testing.T) {
	c, err := lookupPrecision(4) // m=16
	require.NoError(t, err)

	d := newDenseStore(c)
	d.update(0, 1) // contributes 0.5
	d.update(1, 2) // contributes 0.25

	want := 14.0 + 0.5 + 0.25
	assert.InDelta(t, want, d.harmonic(), 1e-9)
}

func TestDenseStore_CountZeros(t *testing.T) {
	c, err := lookupPrecision(4)
	require.NoError(t, err)

	d := newDenseStore(c)
	d.update(0, 1)
	d.update(1, 1)

	assert.Equal(t, c.m-2, d.countZeros())
}

func TestDenseStore_SerializeDeserializeRoundTrip(t *testing.T) {
	c, err := lookupPrecision(8) // m=256
	require.NoError(t, err)

	d := newDenseStore(c)
	for i := 0; i < c.m; i++ {
		d.update(i, byte((i*7+1)%62)+1)
	}

	packed, err := d.serialize()
	require.NoError(t, err)
	assert.Len(t, packed, divideBy8RoundUp(6*c.m))

	got, err := deserializeDense(packed, c)
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDeserializeDense_AcceptsMaxValidValue(t *testing.T) {
	c, err := lookupPrecision(4)
	require.NoError(t, err)

	values := make([]uint64, c.m)
	values[0] = 63
	packed, err := pack(values, 6)
	require.NoError(t, err)

	got, err := deserializeDense(packed, c)
	require.NoError(t, err)
	assert.Equal(t, byte(63), got.get(0))
}

func TestDeserializeDense_RejectsWrongSlotCount(t *testing.T) {
	c, err := lookupPrecision(8) // m=256, needs 192 bytes
	require.NoError(t, err)

	_, err = deserializeDense(make([]byte, 10), c)
	assert.Error(t, err)
}

func TestDenseStore_Union(t *testing.T) {
	c, err := lookupPrecision(4)
	require.NoError(t, err)

	a := newDenseStore(c)
	a.update(0, 5)
	a.update(1, 2)

	b := newDenseStore(c)
	b.update(0, 3)
	b.update(1, 9)
	b.update(2, 7)

	a.union(b)

	assert.Equal(t, byte(5), a.get(0))
	assert.Equal(t, byte(9), a.get(1))
	assert.Equal(t, byte(7), a.get(2))
}
