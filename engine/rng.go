package engine

// Rand is the random source used for tie-breaks. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	// IntN returns a uniform value in [0, n). n > 0.
	IntN(n int) int
}

// XorShift64 is a seedable value-type Rand. Copying it copies the stream
// position, so a GameState snapshot restores the RNG too.
type XorShift64 struct {
	State uint64
}

// NewXorShift64 seeds the generator. A zero seed is corrected to 1.
func NewXorShift64(seed uint64) XorShift64 {
	if seed == 0 {
		seed = 1 // xorshift can't start at 0
	}
	return XorShift64{State: seed}
}

// Next advances the generator.
func (x *XorShift64) Next() uint64 {
	s := x.State
	s ^= s << 13
	s ^= s >> 7
	s ^= s << 17
	x.State = s
	return s
}

// IntN returns a value in [0, n).
func (x *XorShift64) IntN(n int) int {
	if n <= 0 {
		panic("engine: IntN called with n <= 0")
	}
	return int(x.Next() % uint64(n))
}
