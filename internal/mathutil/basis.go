package mathutil

import "github.com/chewxy/math32"

// OrthoNormalBasis is a right-handed tangent frame. W is the surface
// normal, U and V span the tangent plane.
type OrthoNormalBasis struct {
	U, V, W Vec3
}

// MakeBasisFromW builds a frame around a normal. The tangent axes are
// chosen by zeroing the smallest component of w, so the frame is stable
// under small perturbations of the normal.
func MakeBasisFromW(w Vec3) OrthoNormalBasis {
	var b OrthoNormalBasis
	b.W = w.Normalize()
	ax := math32.Abs(b.W[0])
	ay := math32.Abs(b.W[1])
	az := math32.Abs(b.W[2])
	switch {
	case ax < ay && ax < az:
		b.V = Vec3{0, b.W[2], -b.W[1]}
	case ay < az:
		b.V = Vec3{b.W[2], 0, -b.W[0]}
	default:
		b.V = Vec3{b.W[1], -b.W[0], 0}
	}
	b.V = b.V.Normalize()
	b.U = b.V.Cross(b.W)
	return b
}

// MakeBasisFromWV builds a frame around a normal with v as a tangent hint;
// the V axis is projected to stay orthogonal to w.
func MakeBasisFromWV(w, v Vec3) OrthoNormalBasis {
	var b OrthoNormalBasis
	b.W = w.Normalize()
	b.U = v.Cross(b.W).Normalize()
	b.V = b.W.Cross(b.U)
	return b
}

// Transform maps a vector expressed in the frame into world space.
func (b OrthoNormalBasis) Transform(v Vec3) Vec3 {
	return b.U.Scale(v[0]).Add(b.V.Scale(v[1])).Add(b.W.Scale(v[2]))
}

// Untransform projects a world-space vector onto the frame axes.
func (b OrthoNormalBasis) Untransform(v Vec3) Vec3 {
	return Vec3{b.U.Dot(v), b.V.Dot(v), b.W.Dot(v)}
}
