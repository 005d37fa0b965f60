package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic
// seeding. A simulation owns exactly one RNG, seeded once at reset; every
// stochastic draw of a run flows through it in sequence, so a fixed seed
// reproduces the run bit for bit.
type RNG struct {
	src *rand.PCG
	r   *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	src := rand.NewPCG(uint64(seed), 0)
	return &RNG{src: src, r: rand.New(src)}
}

// Float64 returns a uniform draw from [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a uniform draw from [0, n).
func (r *RNG) IntN(n int) int { return r.r.IntN(n) }

// Bernoulli reports whether a uniform draw falls below p.
func (r *RNG) Bernoulli(p float64) bool { return r.r.Float64() < p }

// Shuffle pseudo-randomizes the order of n elements via swap.
func (r *RNG) Shuffle(n int, swap func(i, j int)) { r.r.Shuffle(n, swap) }

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// DistSource adapts the PCG stream to the Uint64/Seed source interface
// gonum's distribution samplers expect. Seed is a no-op: the stream is
// seeded exactly once at construction, and reseeding mid-run would break
// run reproducibility.
type DistSource struct {
	src *rand.PCG
}

// Uint64 draws from the shared stream.
func (s DistSource) Uint64() uint64 { return s.src.Uint64() }

// Seed is ignored; the stream keeps its construction-time seed.
func (s DistSource) Seed(uint64) {}

// Src exposes the shared stream in the form distribution samplers (gonum's
// distuv) accept, without forking the state.
func (r *RNG) Src() DistSource { return DistSource{src: r.src} }
