/*
Package random provides RandomnessSource implementations for the logic
modules.

Seeded derives values from the committed call height, the caller and the
number of values already drawn within the call. The invocation ID is not
mixed in, so committees of committed calls can be recomputed from the call
log. Sequence replays fixed values and is meant for tests. Secure reads the
operating system entropy source and is never reproducible.
*/
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/reviewnet/reviewnet-contract/interop"
)

// Seeded derives pseudo-random values from the call data: committed call
// height, caller and the draw counter of the call. Values are public to
// anyone who knows the call log.
type Seeded struct{}

// GetRandom implements interop.RandomnessSource.
func (Seeded) GetRandom(ic *interop.Context) uint64 {
	buf := make([]byte, 0, 4+20+4)
	buf = binary.LittleEndian.AppendUint32(buf, ic.Height)
	buf = append(buf, ic.Caller.BytesBE()...)
	buf = binary.LittleEndian.AppendUint32(buf, ic.Draw())

	h := hash.Sha256(buf)

	return binary.LittleEndian.Uint64(h[:8])
}

// Sequence returns its values one by one, starting over after the last one.
// Empty Sequence always returns 0.
type Sequence struct {
	mtx    sync.Mutex
	values []uint64
	next   int
}

// NewSequence returns Sequence of the given values.
func NewSequence(values ...uint64) *Sequence {
	return &Sequence{values: values}
}

// GetRandom implements interop.RandomnessSource.
func (x *Sequence) GetRandom(*interop.Context) uint64 {
	x.mtx.Lock()
	defer x.mtx.Unlock()

	if len(x.values) == 0 {
		return 0
	}

	v := x.values[x.next]
	x.next = (x.next + 1) % len(x.values)

	return v
}

// Secure reads values from crypto/rand.
type Secure struct{}

// GetRandom implements interop.RandomnessSource.
func (Secure) GetRandom(*interop.Context) uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		panic("read random value: " + err.Error()) // aborts the call
	}

	return binary.LittleEndian.Uint64(b[:])
}
