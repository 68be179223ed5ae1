package colorf

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	// Dyadic values keep every operation exact in float32.
	a := RGB{0.25, 0.5, 0.75}
	b := RGB{0.125, 0.125, 0.25}

	assert.Equal(t, RGB{0.375, 0.625, 1}, a.Add(b))
	assert.Equal(t, RGB{0.5, 1, 1.5}, a.Scale(2))
	assert.Equal(t, a.Add(b.Scale(0.5)), a.MAdd(0.5, b))
	assert.Equal(t, RGB{0.03125, 0.0625, 0.1875}, a.Mul(b))
}

func TestComplement(t *testing.T) {
	c := RGB{0.25, 0.5, 1}.Complement()
	assert.InDelta(t, 0.75, c.R, 1e-6)
	assert.InDelta(t, 0.5, c.G, 1e-6)
	assert.InDelta(t, 0, c.B, 1e-6)

	assert.Equal(t, White, Black.Complement())
}

func TestLuminance(t *testing.T) {
	tests := []struct {
		name string
		c    RGB
		want float32
	}{
		{"black", Black, 0},
		{"white", White, 1},
		{"red", RGB{1, 0, 0}, 0.299},
		{"green", RGB{0, 1, 0}, 0.587},
		{"blue", RGB{0, 0, 1}, 0.114},
		{"mid gray", RGB{0.5, 0.5, 0.5}, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.c.Luminance(), 1e-6)
		})
	}
}

func TestClamp01(t *testing.T) {
	c := RGB{-0.5, 0.5, 1.5}.Clamp01()
	assert.Equal(t, RGB{0, 0.5, 1}, c)
}
