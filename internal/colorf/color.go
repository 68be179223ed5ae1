package colorf

// RGB is a linear-light color triplet. Channels are not clamped by the
// arithmetic methods; callers clamp before quantizing to bytes.
type RGB struct {
	R, G, B float32
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{1, 1, 1}
)

func (c RGB) Add(o RGB) RGB {
	return RGB{c.R + o.R, c.G + o.G, c.B + o.B}
}

func (c RGB) Scale(k float32) RGB {
	return RGB{c.R * k, c.G * k, c.B * k}
}

// MAdd returns c + k*o, the accumulate step of a weighted blend.
func (c RGB) MAdd(k float32, o RGB) RGB {
	return RGB{c.R + k*o.R, c.G + k*o.G, c.B + k*o.B}
}

func (c RGB) Mul(o RGB) RGB {
	return RGB{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Complement returns 1-c per channel.
func (c RGB) Complement() RGB {
	return RGB{1 - c.R, 1 - c.G, 1 - c.B}
}

// Luminance returns the perceptual brightness of the color using the
// standard 0.299/0.587/0.114 weights.
func (c RGB) Luminance() float32 {
	return 0.299*c.R + 0.587*c.G + 0.114*c.B
}

// Clamp01 limits every channel to [0, 1].
func (c RGB) Clamp01() RGB {
	return RGB{clamp01(c.R), clamp01(c.G), clamp01(c.B)}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
