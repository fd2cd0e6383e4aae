package hll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBiasEstimate_ClampsBelowRange(t *testing.T) {
	t14 := biasTables[14]
	got := biasEstimate(0, 14)
	assert.Equal(t, t14.bias[0], got)
}

func TestBiasEstimate_ClampsAboveRange(t *testing.T) {
	t14 := biasTables[14]
	got := biasEstimate(1e9, 14)
	assert.Equal(t, t14.bias[len(t14.bias)-1], got)
}

func TestBiasEstimate_ExactPointsReturnInterpolatedValue(t *testing.T) {
	t14 := biasTables[14]
	for i, raw := range t14.raw {
		got := biasEstimate(raw, 14)
		assert.InDelta(t, t14.bias[i], got, 1e-9)
	}
}

func TestBiasEstimate_InterpolatesBetweenPoints(t *testing.T) {
	t14 := biasTables[14]
	mid := (t14.raw[0] + t14.raw[1]) / 2
	got := biasEstimate(mid, 14)

	assert.Greater(t, got, t14.bias[0])
	assert.Less(t, got, t14.bias[1])
}

func TestBiasTables_CoverEveryPrecision(t *testing.T) {
	for b := 4; b <= 18; b++ {
		table, ok := biasTables[b]
		if !ok {
			t.Fatalf("no bias table for precision %d", b)
		}
		if len(table.raw) != len(table.bias) || len(table.raw) == 0 {
			t.Fatalf("precision %d: malformed table shape", b)
		}
		for i := 1; i < len(table.raw); i++ {
			if table.raw[i] <= table.raw[i-1] {
				t.Fatalf("precision %d: raw[%d] not strictly increasing", b, i)
			}
		}
	}
}
