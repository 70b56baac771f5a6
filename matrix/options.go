// Package matrix: functional configuration for random generation and
// factorization. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Design goals:
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
//   - Options fields are unexported; public APIs consume ...Option.
package matrix

import (
	"math"
	"math/rand"
)

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultRollback keeps the fail-fast contract: a failed factorization
	// leaves the matrix partially overwritten.
	DefaultRollback = false

	// DefaultSymmetryCheck disables the O(n²) symmetry scan before Cholesky;
	// the factorization only ever reads the lower triangle.
	DefaultSymmetryCheck = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicRandNil        = "matrix: WithRand: source must be non-nil"
	panicSymmetryEpsBad = "matrix: WithSymmetryCheck: eps must be finite, non-negative"
)

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	rnd *rand.Rand // nil ⇒ process-wide math/rand source

	rollback      bool    // DefaultRollback
	symmetryCheck bool    // DefaultSymmetryCheck
	symmetryEps   float64 // tolerance used when symmetryCheck is on
}

// WithRand makes Random and GeneratePositiveDefinite draw from r instead of
// the process-wide math/rand source.
//
// Panics when r is nil.
//
// AI-Hints:
//   - rand.New(rand.NewSource(seed)) gives reproducible fixtures and benches.
//   - *rand.Rand is not goroutine-safe; do not share one across goroutines.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic(panicRandNil)
	}

	return func(o *Options) { o.rnd = r }
}

// WithRollback makes Cholesky snapshot its input and restore it when the
// factorization fails with ErrNotPositiveDefinite.
// Costs one extra r*c copy per call.
func WithRollback() Option {
	return func(o *Options) { o.rollback = true }
}

// WithSymmetryCheck makes Cholesky verify |A[i,j]-A[j,i]| ≤ eps before any
// mutation and fail with ErrAsymmetry otherwise.
//
// Panics when eps is NaN, ±Inf or negative.
func WithSymmetryCheck(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicSymmetryEpsBad)
	}

	return func(o *Options) {
		o.symmetryCheck = true
		o.symmetryEps = eps
	}
}

// defaultOptions returns the zero-config baseline.
func defaultOptions() Options {
	return Options{
		rollback:      DefaultRollback,
		symmetryCheck: DefaultSymmetryCheck,
	}
}

// gatherOptions applies user options over the defaults in order; later options win.
// Nil options are skipped.
func gatherOptions(user ...Option) Options {
	o := defaultOptions()
	for _, fn := range user {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}

// float64 draws one uniform value in [0,1) from the configured source.
func (o *Options) float64() float64 {
	if o.rnd != nil {
		return o.rnd.Float64()
	}

	return rand.Float64()
}
