package utils

// ShrinkSliceIfWastedCapacity returns a copy of s with a capacity divided by divider if
// the length of s is small compared to its capacity, s is returned otherwise.
// Slices whose capacity is less than minShrinkableLength are never shrunk.
func ShrinkSliceIfWastedCapacity[T any](s []T, minShrinkableLength int, divider int) []T {
	if divider <= 1 || cap(s) < minShrinkableLength || len(s) > cap(s)/(2*divider) {
		return s
	}

	shrunk := make([]T, len(s), cap(s)/divider)
	copy(shrunk, s)
	return shrunk
}
