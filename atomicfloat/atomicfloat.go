// Package atomicfloat provides a lock-free, compare-and-swap float64,
// adapted from the teacher's atomic_float package. There it guarded a
// shared value-function matrix cell; here it guards the one genuinely
// concurrent scalar in this repository — the evolution loop's running
// best-fitness gauge, written by concurrent evaluation workers and read
// by the telemetry layer.
package atomicfloat

import (
	"math"
	"sync/atomic"
	"unsafe"
)

// Float64 encapsulates a float64 for non-locking atomic operations.
type Float64 struct {
	val float64
}

// New builds a Float64 initialized to val.
func New(val float64) *Float64 {
	return &Float64{val: val}
}

// Read atomically loads the current value.
func (af *Float64) Read() float64 {
	bits := atomic.LoadUint64((*uint64)(unsafe.Pointer(&af.val)))
	return math.Float64frombits(bits)
}

// Set atomically stores newVal, returning true on success. If the value
// changed between Read and the compare-and-swap, succeeded is false and
// the caller decides whether to retry — this type never retries for
// them, since an unconditional retry loop is logically wrong whenever
// the pointee's change was itself meaningful (another worker's update
// should not be silently overwritten).
func (af *Float64) Set(newVal float64) (succeeded bool) {
	old := af.Read()
	return atomic.CompareAndSwapUint64(
		(*uint64)(unsafe.Pointer(&af.val)),
		math.Float64bits(old),
		math.Float64bits(newVal))
}

// RaiseTo atomically sets the value to candidate if candidate is
// greater, retrying under contention until either the swap succeeds or
// the current value is already >= candidate. Unlike Set, a retry loop
// here is correct: every competing writer is also trying to raise the
// same running maximum, so re-reading and re-comparing never discards a
// meaningful update — it only ever re-applies the same "keep the max"
// rule against whatever the latest value turned out to be.
func (af *Float64) RaiseTo(candidate float64) {
	for {
		cur := af.Read()
		if candidate <= cur {
			return
		}
		if atomic.CompareAndSwapUint64(
			(*uint64)(unsafe.Pointer(&af.val)),
			math.Float64bits(cur),
			math.Float64bits(candidate)) {
			return
		}
	}
}
