package formulas

// TrailingSum computes, for each position i, the sum of values over the last
// window entries ending at i. When fewer than window entries precede i the
// sum covers whatever history exists, so the output always has one entry per
// input (minimum window of one).
func TrailingSum(values []float64, window int) []float64 {
	if len(values) == 0 || window < 1 {
		return []float64{}
	}

	out := make([]float64, len(values))
	var running float64
	for i, v := range values {
		running += v
		if i >= window {
			running -= values[i-window]
		}
		out[i] = running
	}
	return out
}
