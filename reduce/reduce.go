// Package reduce defines the collective-reduction contract the hierarchy
// operators rendezvous on.  Every process in the group must enter the same
// reduction in the same call, or the program deadlocks; the transport
// (e.g. MPI) is supplied by the caller, and reductions are blocking with no
// timeout.
package reduce

// Reducer combines one local value per process into the same global value
// on every process.  All methods block until the whole group has
// contributed.
type Reducer interface {
	// SumInt sums integer contributions across the group.
	SumInt(local int) int
	// SumFloat64 sums real contributions across the group.
	SumFloat64(local float64) float64
	// SumComplex128 sums complex contributions across the group.
	SumComplex128(local complex128) complex128
	// MaxFloat64 takes the maximum of real contributions across the group.
	MaxFloat64(local float64) float64
}

// SingleProcess is the identity group: one process, every reduction returns
// its own contribution.  It is the default for serial runs and tests.
type SingleProcess struct{}

// SumInt returns local unchanged.
func (SingleProcess) SumInt(local int) int { return local }

// SumFloat64 returns local unchanged.
func (SingleProcess) SumFloat64(local float64) float64 { return local }

// SumComplex128 returns local unchanged.
func (SingleProcess) SumComplex128(local complex128) complex128 { return local }

// MaxFloat64 returns local unchanged.
func (SingleProcess) MaxFloat64(local float64) float64 { return local }
