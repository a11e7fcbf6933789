// Package randutil derives the random generators used by the simulator.
// Every generator is a PCG stream so that a single seed reproduces a whole
// simulation run, including the per-worker streams.
package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	return fromUint64(uint64(seed))
}

// NewUnseeded returns a generator seeded from the runtime's entropy source.
// Runs using it are not reproducible.
func NewUnseeded() *rand.Rand {
	return fromUint64(rand.Uint64())
}

// Split derives n independent generators from parent. Drawing the child seeds
// consumes n values from parent, so the same parent state always produces
// the same children in the same order.
func Split(parent *rand.Rand, n int) []*rand.Rand {
	children := make([]*rand.Rand, n)
	for i := range children {
		children[i] = fromUint64(parent.Uint64())
	}
	return children
}

func fromUint64(u uint64) *rand.Rand {
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
