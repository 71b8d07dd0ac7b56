package smooth

import "math"

// Union stores the (smooth) minimum of d1 and d2 in d1.
func Union(d1, d2 []float64, k float64) {
	if k == 0 {
		for i, b := range d2[:len(d1)] {
			d1[i] = math.Min(d1[i], b)
		}
		return
	}
	for i, b := range d2[:len(d1)] {
		d1[i] = poly(d1[i], b, k)
	}
}

// Intersection stores the (smooth) maximum of d1 and d2 in d1.
func Intersection(d1, d2 []float64, k float64) {
	if k == 0 {
		for i, b := range d2[:len(d1)] {
			d1[i] = math.Max(d1[i], b)
		}
		return
	}
	for i, b := range d2[:len(d1)] {
		d1[i] = -poly(-d1[i], -b, k)
	}
}

// Difference stores the (smooth) maximum of d1 and -d2 in d1, which
// carves the second field out of the first.
func Difference(d1, d2 []float64, k float64) {
	if k == 0 {
		for i, b := range d2[:len(d1)] {
			d1[i] = math.Max(d1[i], -b)
		}
		return
	}
	for i, b := range d2[:len(d1)] {
		d1[i] = -poly(-d1[i], b, k)
	}
}

// Blend stores the linear interpolation k*d2 + (1-k)*d1 in d1.
func Blend(d1, d2 []float64, k float64) {
	for i, b := range d2[:len(d1)] {
		d1[i] = k*b + (1-k)*d1[i]
	}
}

// Reduce stores fn(d1[i], d2[i]) in d1.
func Reduce(d1, d2 []float64, fn MinFunc) {
	for i, b := range d2[:len(d1)] {
		d1[i] = fn(d1[i], b)
	}
}

// Negate flips the sign of every distance, swapping inside and outside.
func Negate(d []float64) {
	for i := range d {
		d[i] = -d[i]
	}
}

// Dilate grows the surface outward by r.
func Dilate(d []float64, r float64) {
	for i := range d {
		d[i] -= r
	}
}

// Erode shrinks the surface inward by r.
func Erode(d []float64, r float64) {
	for i := range d {
		d[i] += r
	}
}

// Shell turns the surface into a hollow wall of the given thickness
// centered on the original boundary.
func Shell(d []float64, thickness float64) {
	half := thickness / 2
	for i := range d {
		d[i] = math.Abs(d[i]) - half
	}
}
