package mathx

import "golang.org/x/exp/constraints"

// Rescale maps x in [0,from] to [0,to] with a 64-bit intermediate.
// x above from saturates at to; from==0 yields 0.
func Rescale[T constraints.Unsigned](x, from, to T) T {
	if from == 0 {
		return 0
	}
	if x > from {
		x = from
	}
	return T(uint64(x) * uint64(to) / uint64(from))
}
