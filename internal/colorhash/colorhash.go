// Package colorhash maps strings to stable colors.
//
// The label is hashed with SHA-256 and the digest, read as one big integer,
// picks a hue, a saturation and a lightness in turn. The same label always
// yields the same color.
package colorhash

import (
	"crypto/sha256"
	"image/color"
	"math"
	"math/big"
)

var (
	saturations = []float64{0.35, 0.5, 0.65}
	lightnesses = []float64{0.35, 0.5, 0.65}
)

// HSL returns hue in [0, 359), saturation and lightness in [0, 1].
func HSL(label string) (h, s, l float64) {
	sum := sha256.Sum256([]byte(label))
	n := new(big.Int).SetBytes(sum[:])
	m := new(big.Int)

	// hue is taken modulo 359 but the hash is then divided by 360
	h = float64(m.Mod(n, big.NewInt(359)).Int64())
	n.Quo(n, big.NewInt(360))

	n.DivMod(n, big.NewInt(int64(len(saturations))), m)
	s = saturations[m.Int64()]

	n.DivMod(n, big.NewInt(int64(len(lightnesses))), m)
	l = lightnesses[m.Int64()]
	return h, s, l
}

// RGB returns the label's color.
func RGB(label string) color.RGBA {
	h, s, l := HSL(label)
	return hslToRGB(h, s, l)
}

func hslToRGB(h, s, l float64) color.RGBA {
	h /= 360
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	var out [3]uint8
	for i, c := range []float64{h + 1.0/3, h, h - 1.0/3} {
		if c < 0 {
			c++
		} else if c > 1 {
			c--
		}
		switch {
		case c < 1.0/6:
			c = p + (q-p)*6*c
		case c < 0.5:
			c = q
		case c < 2.0/3:
			c = p + (q-p)*6*(2.0/3-c)
		default:
			c = p
		}
		out[i] = uint8(math.RoundToEven(c * 255))
	}
	return color.RGBA{R: out[0], G: out[1], B: out[2], A: 255}
}
