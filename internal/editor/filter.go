package editor

import "image"

// colorMatrix is a 5x4 color transformation matrix stored in row-major
// order as [R, G, B, A, translate] for each output channel:
//
//	R' = m[0]*R + m[1]*G + m[2]*B + m[3]*A + m[4]
//	G' = m[5]*R + m[6]*G + m[7]*B + m[8]*A + m[9]
//	B' = m[10]*R + m[11]*G + m[12]*B + m[13]*A + m[14]
//	A' = m[15]*R + m[16]*G + m[17]*B + m[18]*A + m[19]
//
// Components are in the range [0, 255]; translation values (indices 4, 9,
// 14, 19) are added after multiplication. Every filter here leaves the
// alpha row at identity.
type colorMatrix [20]float64

// Luminance coefficients, ITU-R BT.709.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

func identityMatrix() colorMatrix {
	return colorMatrix{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// compose returns the matrix that applies inner first, then m.
func (m colorMatrix) compose(inner colorMatrix) colorMatrix {
	var out colorMatrix
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[row*5+k] * inner[k*5+col]
			}
			out[row*5+col] = sum
		}
		// Translation column: m's linear part applied to inner's
		// translation, plus m's own translation.
		t := m[row*5+4]
		for k := 0; k < 4; k++ {
			t += m[row*5+k] * inner[k*5+4]
		}
		out[row*5+4] = t
	}
	return out
}

func (m colorMatrix) isIdentity() bool {
	return m == identityMatrix()
}

// lerpMatrix interpolates entry-wise between a and b. Since the matrices
// are affine maps, interpolating the entries interpolates the outputs.
func lerpMatrix(a, b colorMatrix, t float64) colorMatrix {
	var out colorMatrix
	for i := range out {
		out[i] = a[i] + (b[i]-a[i])*t
	}
	return out
}

// brightnessMatrix scales RGB by k. k=1 is identity.
func brightnessMatrix(k float64) colorMatrix {
	return colorMatrix{
		k, 0, 0, 0, 0,
		0, k, 0, 0, 0,
		0, 0, k, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// contrastMatrix scales RGB around the mid-gray point: c' = (c-127.5)*k + 127.5.
// k=1 is identity, k=0 collapses to uniform gray.
func contrastMatrix(k float64) colorMatrix {
	t := 127.5 * (1 - k)
	return colorMatrix{
		k, 0, 0, 0, t,
		0, k, 0, 0, t,
		0, 0, k, 0, t,
		0, 0, 0, 1, 0,
	}
}

// saturateMatrix adjusts saturation with the SVG saturate matrix built on
// the BT.709 luminance coefficients. k=1 is identity, k=0 is grayscale.
func saturateMatrix(k float64) colorMatrix {
	inv := 1 - k
	r := lumR * inv
	g := lumG * inv
	b := lumB * inv
	return colorMatrix{
		r + k, g, b, 0, 0,
		r, g + k, b, 0, 0,
		r, g, b + k, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// grayscaleMatrix interpolates between identity (t=0) and the full BT.709
// grayscale projection (t=1).
func grayscaleMatrix(t float64) colorMatrix {
	full := colorMatrix{
		lumR, lumG, lumB, 0, 0,
		lumR, lumG, lumB, 0, 0,
		lumR, lumG, lumB, 0, 0,
		0, 0, 0, 1, 0,
	}
	return lerpMatrix(identityMatrix(), full, t)
}

// sepiaMatrix interpolates between identity (t=0) and the standard sepia
// tone matrix (t=1).
func sepiaMatrix(t float64) colorMatrix {
	full := colorMatrix{
		0.393, 0.769, 0.189, 0, 0,
		0.349, 0.686, 0.168, 0, 0,
		0.272, 0.534, 0.131, 0, 0,
		0, 0, 0, 1, 0,
	}
	return lerpMatrix(identityMatrix(), full, t)
}

// Matrix composes the five adjustments into a single transform in their
// fixed application order: brightness, contrast, saturate, grayscale,
// sepia. The order is not user-reorderable. When every adjustment is at
// its default the composition is the identity matrix, which the renderer
// skips outright.
func (f FilterState) Matrix() colorMatrix {
	m := brightnessMatrix(f.Brightness / 100)
	m = contrastMatrix(f.Contrast / 100).compose(m)
	m = saturateMatrix(f.Saturate / 100).compose(m)
	m = grayscaleMatrix(f.Grayscale / 100).compose(m)
	m = sepiaMatrix(f.Sepia / 100).compose(m)
	return m
}

// ApplyFilters applies the composed filter matrix to buf in place, as a
// single pass over the pixels. Straight (non-premultiplied) RGBA input is
// expected; output components are clamped to [0, 255].
func ApplyFilters(buf *image.NRGBA, f FilterState) {
	m := f.Matrix()
	if m.isIdentity() {
		return
	}

	bounds := buf.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		ofs := buf.PixOffset(bounds.Min.X, y)
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := buf.Pix[ofs : ofs+4 : ofs+4]
			r := float64(px[0])
			g := float64(px[1])
			b := float64(px[2])
			a := float64(px[3])

			px[0] = clamp255(m[0]*r + m[1]*g + m[2]*b + m[3]*a + m[4])
			px[1] = clamp255(m[5]*r + m[6]*g + m[7]*b + m[8]*a + m[9])
			px[2] = clamp255(m[10]*r + m[11]*g + m[12]*b + m[13]*a + m[14])
			px[3] = clamp255(m[15]*r + m[16]*g + m[17]*b + m[18]*a + m[19])
			ofs += 4
		}
	}
}

func clamp255(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
