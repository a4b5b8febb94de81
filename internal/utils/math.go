package utils

import (
	"golang.org/x/exp/constraints"
)

// InRange returns true if start <= v < end.
func InRange[T constraints.Integer](v, start, end T) bool {
	return v >= start && v < end
}
