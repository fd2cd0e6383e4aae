package hll

import (
	"encoding/binary"
	"math/bits"

	"github.com/spaolacci/murmur3"
)

// registerIndex extracts the register index (the high b bits of hash).
func registerIndex(hash uint64, b int) int {
	return int(hash >> uint(64-b))
}

// registerRho computes rho = clz64(tail) + 1, where tail is the hash with
// its high b bits shifted out (the low b bits of the shift are zero
// padding).  A non-degenerate tail never produces a clz beyond 64-b-1
// (the padding zeros are only reached once every real tail bit is also
// zero), so rho ∈ [1, 64-b] in the ordinary case.
//
// In the pathological case that rho reaches the hard ceiling of 64 (the
// tail, padding included, was entirely zero), registerRho falls back to a
// deterministic rehash extension: it occurs with probability 2^-(64-b) and
// is purely defensive, so it is not subject to the bit-exact
// reproducibility that binds MurmurHash64A itself. murmur3.Sum64 drives
// the extension instead of a second MurmurHash64A call.
func registerRho(hash uint64, b int) byte {
	tail := hash << uint(b)

	rho := clz64(tail) + 1
	if rho < 64 {
		return clampRho(rho, b)
	}

	safety := 64 - b
	for {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], tail)
		tail = murmur3.Sum64(buf[:])

		rho += clz64(tail) + 1
		safety--

		if rho < 64 || safety <= 0 {
			break
		}
	}

	return clampRho(rho, b)
}

// clz64 counts the leading zero bits of a 64-bit word; clz64(0) = 64.
func clz64(x uint64) int {
	return bits.LeadingZeros64(x)
}

// clampRho caps rho at 64-b+1, the top of the register range, and further
// at 63 so it always fits the 6-bit slot width used by both SparseStore and
// DenseStore.  It does not raise values below 1.
func clampRho(rho int, b int) byte {
	if ceiling := int(maxRho(b)); rho > ceiling {
		rho = ceiling
	}
	if rho > 63 {
		rho = 63
	}
	return byte(rho)
}
