package arbor

import (
	"os"

	"golang.org/x/exp/constraints"
)

// MaybeCreateDir creates dir and its parents if they are missing.
func MaybeCreateDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0775)
}

// Clamp current value between low and high
func Clamp[T constraints.Ordered](cur, low, high T) T {
	if low > high {
		low, high = high, low
	}
	if cur < low {
		return low
	}
	if cur > high {
		return high
	}
	return cur
}
