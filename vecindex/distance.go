package vecindex

import "math"

// l2SquaredDistance computes squared Euclidean distance. The square root
// is skipped because it doesn't change ranking order; this matches the
// convention of flat L2 index families.
func l2SquaredDistance(a, b []float32) float32 {
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(sum)
}

// cosineDistance computes 1 minus cosine similarity. A zero-magnitude
// vector on either side yields the maximum distance of 1.
func cosineDistance(a, b []float32) float32 {
	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])
		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}
	if na2 == 0 || nb2 == 0 {
		return 1
	}
	return float32(1 - dot/(math.Sqrt(na2)*math.Sqrt(nb2)))
}
