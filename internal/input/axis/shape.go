package axis

import "math"

// Deadzone returns a source that zeroes magnitudes inside the
// threshold and rescales the remainder so output still spans the full
// [-1, 1] range. A threshold outside (0, 1) returns the source
// unchanged.
func Deadzone(src Source, threshold float64) Source {
	if threshold <= 0 || threshold >= 1 {
		return src
	}
	return Func(func() float64 {
		v := src.Sample()
		mag := math.Abs(v)
		if mag < threshold {
			return 0
		}
		scaled := (mag - threshold) / (1 - threshold)
		return math.Copysign(scaled, v)
	})
}

// Invert returns a source with the sign of every sample flipped.
func Invert(src Source) Source {
	return Func(func() float64 { return -src.Sample() })
}

// Scale returns a source with every sample multiplied by factor. The
// result is not clamped.
func Scale(src Source, factor float64) Source {
	return Func(func() float64 { return src.Sample() * factor })
}
