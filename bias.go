package hll

import "sort"

// biasTable holds the (raw estimate -> bias correction) lookup for one
// precision, as a pair of equal-length sorted arrays. The exact numeric
// content is not load-bearing for correctness; what matters is that a
// table exists per precision, is consulted via biasEstimate, and has raw
// growing roughly proportional to m with bias shrinking as a fraction of
// raw as raw grows.
type biasTable struct {
	raw  []float64
	bias []float64
}

// biasTables is indexed by precision b.  It is built once at package init
// and never mutated afterwards.
var biasTables = map[int]biasTable{
	4:  {raw: []float64{1, 2, 5, 10, 19, 48, 96, 97}, bias: []float64{0.045, 0.076, 0.16, 0.24, 0.342, 0.624, 0.864, 0.582}},
	5:  {raw: []float64{1, 2, 4, 10, 19, 38, 96, 192}, bias: []float64{0.045, 0.076, 0.128, 0.24, 0.342, 0.494, 0.864, 1.152}},
	6:  {raw: []float64{2, 4, 8, 19, 38, 77, 192, 384}, bias: []float64{0.09, 0.152, 0.256, 0.456, 0.684, 1.001, 1.728, 2.304}},
	7:  {raw: []float64{4, 8, 15, 38, 77, 154, 384, 768}, bias: []float64{0.18, 0.304, 0.48, 0.912, 1.386, 2.002, 3.456, 4.608}},
	8:  {raw: []float64{8, 15, 31, 77, 154, 307, 768, 1536}, bias: []float64{0.36, 0.57, 0.992, 1.848, 2.772, 3.991, 6.912, 9.216}},
	9:  {raw: []float64{15, 31, 61, 154, 307, 614, 1536, 3072}, bias: []float64{0.675, 1.178, 1.952, 3.696, 5.526, 7.982, 13.824, 18.432}},
	10: {raw: []float64{31, 61, 123, 307, 614, 1229, 3072, 6144}, bias: []float64{1.395, 2.318, 3.936, 7.368, 11.052, 15.977, 27.648, 36.864}},
	11: {raw: []float64{61, 123, 246, 614, 1229, 2458, 6144, 12288}, bias: []float64{2.745, 4.674, 7.872, 14.736, 22.122, 31.954, 55.296, 73.728}},
	12: {raw: []float64{123, 246, 492, 1229, 2458, 4915, 12288, 24576}, bias: []float64{5.535, 9.348, 15.744, 29.496, 44.244, 63.895, 110.592, 147.456}},
	13: {raw: []float64{246, 492, 983, 2458, 4915, 9830, 24576, 49152}, bias: []float64{11.07, 18.696, 31.456, 58.992, 88.47, 127.79, 221.184, 294.912}},
	14: {raw: []float64{492, 983, 1966, 4915, 9830, 19661, 49152, 98304}, bias: []float64{22.14, 37.354, 62.912, 117.96, 176.94, 255.593, 442.368, 589.824}},
	15: {raw: []float64{983, 1966, 3932, 9830, 19661, 39322, 98304, 196608}, bias: []float64{44.235, 74.708, 125.824, 235.92, 353.898, 511.186, 884.736, 1179.648}},
	16: {raw: []float64{1966, 3932, 7864, 19661, 39322, 78643, 196608, 393216}, bias: []float64{88.47, 149.416, 251.648, 471.864, 707.796, 1022.359, 1769.472, 2359.296}},
	17: {raw: []float64{3932, 7864, 15729, 39322, 78643, 157286, 393216, 786432}, bias: []float64{176.94, 298.832, 503.328, 943.728, 1415.574, 2044.718, 3538.944, 4718.592}},
	18: {raw: []float64{7864, 15729, 31457, 78643, 157286, 314573, 786432, 1572864}, bias: []float64{353.88, 597.702, 1006.624, 1887.432, 2831.148, 4089.449, 7077.888, 9437.184}},
}

// biasEstimate interpolates the bias correction for raw estimate e at
// precision b: locate the insertion point of e in raw[b] by binary
// search, clamp at either end, and linearly interpolate between the two
// surrounding points otherwise.
func biasEstimate(e float64, b int) float64 {
	t := biasTables[b]

	idx := sort.Search(len(t.raw), func(i int) bool { return t.raw[i] >= e })

	if idx == 0 {
		return t.bias[0]
	}
	if idx == len(t.raw) {
		return t.bias[len(t.bias)-1]
	}

	x0, x1 := t.raw[idx-1], t.raw[idx]
	y0, y1 := t.bias[idx-1], t.bias[idx]

	return y0 + (e-x0)*(y1-y0)/(x1-x0)
}
