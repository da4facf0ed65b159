package arrivals

// SampleRange is the number of distinct values a 16-bit sensor sample can take
const SampleRange = 1 << 16

// Select maps a sensor sample onto one of pairCount equal-width buckets.
// The result is always in [0, pairCount-1] for pairCount >= 1. When
// pairCount does not divide 65536 the last bucket is slightly narrower.
func Select(sample uint16, pairCount int) int {
	return int(sample) * pairCount / SampleRange
}
